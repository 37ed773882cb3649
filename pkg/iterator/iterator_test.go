package iterator_test

import (
	"errors"
	"iter"
	"testing"

	"github.com/ian-shakespeare/tapevm/pkg/iterator"
	"github.com/stretchr/testify/assert"
)

func pairs(values []int, failAt int) iter.Seq2[int, error] {
	return func(yield func(int, error) bool) {
		for i, v := range values {
			var err error
			if i == failAt {
				err = errors.New("boom")
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

func TestCollectErr(t *testing.T) {
	t.Parallel()

	t.Run("noError", func(t *testing.T) {
		t.Parallel()

		values, err := iterator.CollectErr(pairs([]int{1, 2, 3}, -1))
		assert.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, values)
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		values, err := iterator.CollectErr(pairs([]int{1, 2, 3}, 1))
		assert.EqualError(t, err, "boom")
		assert.Nil(t, values)
	})
}
