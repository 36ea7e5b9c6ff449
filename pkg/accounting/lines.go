package accounting

import (
	"bufio"
	"io"
	"iter"
	"os"

	fjerrors "thoreinstein.com/failedjobs/pkg/errors"
)

// maxLineSize bounds a single accounting line. Records carry the full
// qsub option string, so they can be much longer than bufio's default.
const maxLineSize = 1024 * 1024

// Lines yields the lines of the file at path in order, without their line
// terminators. The file is opened on the first pull and closed when the
// sequence is exhausted, fails or the consumer stops early. Errors are
// yielded once as the final element.
func Lines(path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield("", fjerrors.NewScanError(fjerrors.OpOpenInput, path, err))
			return
		}
		defer f.Close()

		for line, err := range ReadLines(f) {
			if err != nil {
				yield("", fjerrors.NewScanError(fjerrors.OpReadInput, path, err))
				return
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}

// ReadLines yields the lines of r in order. The caller owns r.
func ReadLines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for sc.Scan() {
			if !yield(sc.Text(), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield("", err)
		}
	}
}
