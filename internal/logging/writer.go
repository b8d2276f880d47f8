package logging

import (
	"io"

	"go.uber.org/multierr"
)

// FanOutWriter writes every message to all of its writers. A failing
// writer does not stop the others; errors are combined.
type FanOutWriter struct {
	writers []io.Writer
}

func NewFanOutWriter(writers ...io.Writer) *FanOutWriter {
	return &FanOutWriter{
		writers: writers,
	}
}

// Write reports the largest count written by a single writer.
func (w *FanOutWriter) Write(p []byte) (int, error) {
	var (
		maxWritten int
		err        error
	)
	for _, writer := range w.writers {
		n, werr := writer.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
		}
		if n > maxWritten {
			maxWritten = n
		}
	}
	return maxWritten, err
}
