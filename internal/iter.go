package internal

import (
	"bufio"
	"errors"
	"io"
	"iter"
)

// Runes yields each rune of input along with its rune offset.
// Iteration stops at end of input, or at the first read error, which is
// stored in *err. Invalid UTF-8 is yielded as utf8.RuneError.
func Runes(input io.Reader, err *error) iter.Seq2[int, rune] {
	return func(yield func(offset int, r rune) bool) {
		rr, ok := input.(io.RuneReader)
		if !ok {
			rr = bufio.NewReader(input)
		}

		for offset := 0; ; offset++ {
			r, _, rerr := rr.ReadRune()
			if rerr != nil {
				if !errors.Is(rerr, io.EOF) && err != nil {
					*err = rerr
				}
				return
			}
			if !yield(offset, r) {
				return // Stop if the consumer stops
			}
		}
	}
}
