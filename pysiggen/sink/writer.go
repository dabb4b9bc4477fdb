package sink

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
)

// WriterSink streams every file to a single io.Writer, each preceded by a
// "# path" banner line. Used to print generated stubs to stdout.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer

	// Banner controls whether the path banner is written.
	Banner bool
}

// NewWriterSink returns a WriterSink that writes banners.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w, Banner: true}
}

// WriteFile writes content to the underlying writer. Concurrent calls are
// serialized so files never interleave.
func (s *WriterSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := checkWrite(ctx, path); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Banner {
		if _, err := fmt.Fprintf(s.w, "# %s\n", path); err != nil {
			return errors.Wrapf(err, "write %s", path)
		}
	}
	if _, err := s.w.Write(content); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
