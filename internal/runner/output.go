package runner

import (
	"fmt"
	"io"
	"os"
)

// OutputSink receives progress lines from a run.
type OutputSink interface {
	// Write writes a line of output.
	Write(line string) error
	// Close closes the sink.
	Close() error
}

// WriterSink is an OutputSink that writes lines to an io.Writer.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a sink that writes to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write writes a line followed by a newline.
func (s *WriterSink) Write(line string) error {
	_, err := fmt.Fprintln(s.w, line)
	return err
}

// Close closes the sink (no-op for WriterSink).
func (s *WriterSink) Close() error {
	return nil
}

// NewStdioSink creates a new sink that writes to stdout.
func NewStdioSink() *WriterSink {
	return NewWriterSink(os.Stdout)
}

type discardSink struct{}

func (discardSink) Write(string) error { return nil }
func (discardSink) Close() error       { return nil }
