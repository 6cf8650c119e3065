package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// NonBlockingReader provides context-aware input reading that can be interrupted.
type NonBlockingReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewNonBlockingReader creates a new non-blocking reader.
func NewNonBlockingReader(reader io.Reader) *NonBlockingReader {
	if reader == nil {
		panic("reader cannot be nil")
	}
	return &NonBlockingReader{
		reader: bufio.NewReader(reader),
	}
}

// ReadString reads a string until delim, respecting context cancellation.
// The read itself keeps running in the background after a cancellation.
func (r *NonBlockingReader) ReadString(ctx context.Context, delim byte) (string, error) {
	return r.read(ctx, func(br *bufio.Reader) (string, error) {
		return br.ReadString(delim)
	})
}

// ReadLine reads a line, respecting context cancellation. A final line
// without a trailing newline is returned without error.
func (r *NonBlockingReader) ReadLine(ctx context.Context) (string, error) {
	line, err := r.ReadString(ctx, '\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadAll reads until EOF, respecting context cancellation.
func (r *NonBlockingReader) ReadAll(ctx context.Context) (string, error) {
	return r.read(ctx, func(br *bufio.Reader) (string, error) {
		data, err := io.ReadAll(br)
		return string(data), err
	})
}

func (r *NonBlockingReader) read(ctx context.Context, fn func(*bufio.Reader) (string, error)) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := fn(r.reader)
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return res.value, res.err
	}
}

// Confirm writes prompt and reports whether the answer was yes.
func Confirm(ctx context.Context, r *NonBlockingReader, w io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	answer, err := r.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "হ্যাঁ":
		return true, nil
	default:
		return false, nil
	}
}
