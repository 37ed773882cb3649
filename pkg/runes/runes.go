package runes

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"
)

var ErrInvalidRune = errors.New("rune error")

// Reader is a rune reader that can look ahead any distance without
// consuming input. Invalid UTF-8 is reported as ErrInvalidRune.
type Reader struct {
	input *bufio.Reader
	// decoded runes that have been looked at but not yet read
	ahead []rune
}

func NewReader(r io.Reader) *Reader {
	return &Reader{input: bufio.NewReader(r)}
}

func (r *Reader) ReadRune() (rune, int, error) {
	if err := r.fill(1); err != nil {
		return 0, 0, err
	}

	char := r.ahead[0]
	r.ahead = r.ahead[1:]
	return char, utf8.RuneLen(char), nil
}

// PeekRunes returns the next n runes without advancing the reader. If fewer
// than n runes remain, the runes found are returned along with io.EOF.
func (r *Reader) PeekRunes(n int) ([]rune, error) {
	if n < 1 {
		return nil, nil
	}

	err := r.fill(n)
	word := make([]rune, min(n, len(r.ahead)))
	copy(word, r.ahead)
	return word, err
}

// PeekPast returns the first upcoming rune for which skip reports false,
// without advancing the reader. Reaching the end of input returns io.EOF.
func (r *Reader) PeekPast(skip func(rune) bool) (rune, error) {
	for i := 0; ; i++ {
		if err := r.fill(i + 1); err != nil {
			return 0, err
		}
		if !skip(r.ahead[i]) {
			return r.ahead[i], nil
		}
	}
}

func (r *Reader) fill(n int) error {
	for len(r.ahead) < n {
		char, size, err := r.input.ReadRune()
		if err != nil {
			return err
		}
		if char == utf8.RuneError && size == 1 {
			return ErrInvalidRune
		}
		r.ahead = append(r.ahead, char)
	}
	return nil
}
