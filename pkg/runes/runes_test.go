package runes_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/ian-shakespeare/tapevm/pkg/runes"
	"github.com/stretchr/testify/assert"
)

func TestPeekRunes(t *testing.T) {
	t.Parallel()

	input := []rune("this is a rune string with 41 characters!")

	for i := 1; i <= len(input); i++ {
		name := fmt.Sprintf("peek%dChar", i)
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			part := input[:i]
			s := strings.NewReader(string(input))
			r := runes.NewReader(s)

			char, err := r.PeekRunes(i)
			assert.NoError(t, err)
			assert.Equal(t, string(part), string(char))
		})
	}

	t.Run("multibyte", func(t *testing.T) {
		t.Parallel()

		r := runes.NewReader(strings.NewReader("héllo"))
		char, err := r.PeekRunes(3)
		assert.NoError(t, err)
		assert.Equal(t, "hél", string(char))

		first, _, err := r.ReadRune()
		assert.NoError(t, err)
		assert.Equal(t, 'h', first)
	})

	t.Run("pastEnd", func(t *testing.T) {
		t.Parallel()

		r := runes.NewReader(strings.NewReader("ab"))
		char, err := r.PeekRunes(3)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, "ab", string(char))
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		r := runes.NewReader(strings.NewReader("\xff"))
		_, err := r.PeekRunes(1)
		assert.ErrorIs(t, err, runes.ErrInvalidRune)
	})
}

func TestReadRune(t *testing.T) {
	t.Parallel()

	t.Run("afterPeek", func(t *testing.T) {
		t.Parallel()

		r := runes.NewReader(strings.NewReader("aé"))
		_, err := r.PeekRunes(2)
		assert.NoError(t, err)

		char, size, err := r.ReadRune()
		assert.NoError(t, err)
		assert.Equal(t, 'a', char)
		assert.Equal(t, 1, size)

		char, size, err = r.ReadRune()
		assert.NoError(t, err)
		assert.Equal(t, 'é', char)
		assert.Equal(t, 2, size)

		_, _, err = r.ReadRune()
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("encodedReplacementChar", func(t *testing.T) {
		t.Parallel()

		r := runes.NewReader(strings.NewReader("\uFFFD"))
		char, _, err := r.ReadRune()
		assert.NoError(t, err)
		assert.Equal(t, '\uFFFD', char)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		r := runes.NewReader(strings.NewReader("a\xffb"))
		char, _, err := r.ReadRune()
		assert.NoError(t, err)
		assert.Equal(t, 'a', char)

		_, _, err = r.ReadRune()
		assert.ErrorIs(t, err, runes.ErrInvalidRune)
	})
}

func TestPeekPast(t *testing.T) {
	t.Parallel()

	isSpace := func(r rune) bool {
		return r == ' '
	}

	t.Run("skipsSpaces", func(t *testing.T) {
		t.Parallel()

		r := runes.NewReader(strings.NewReader("   7x"))
		char, err := r.PeekPast(isSpace)
		assert.NoError(t, err)
		assert.Equal(t, '7', char)

		first, _, err := r.ReadRune()
		assert.NoError(t, err)
		assert.Equal(t, ' ', first)
	})

	t.Run("noSkip", func(t *testing.T) {
		t.Parallel()

		r := runes.NewReader(strings.NewReader("x"))
		char, err := r.PeekPast(isSpace)
		assert.NoError(t, err)
		assert.Equal(t, 'x', char)
	})

	t.Run("pastBufferSize", func(t *testing.T) {
		t.Parallel()

		r := runes.NewReader(strings.NewReader(strings.Repeat(" ", 10000) + "7"))
		char, err := r.PeekPast(isSpace)
		assert.NoError(t, err)
		assert.Equal(t, '7', char)

		first, _, err := r.ReadRune()
		assert.NoError(t, err)
		assert.Equal(t, ' ', first)
	})

	t.Run("onlySpaces", func(t *testing.T) {
		t.Parallel()

		r := runes.NewReader(strings.NewReader("    "))
		_, err := r.PeekPast(isSpace)
		assert.ErrorIs(t, err, io.EOF)
	})
}
