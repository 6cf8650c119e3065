package cli

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestInterruptHandlerCancelsOnSignal(t *testing.T) {
	out := &syncBuffer{}
	h := NewInterruptHandler(out)

	ctx, stop := h.HandleInterrupts(context.Background())
	defer stop()

	// Deliver the signal straight to the handler's channel.
	h.signals <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not canceled")
	}

	require.Eventually(t, h.WasInterrupted, time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "Interrupted")
}

func TestInterruptHandlerStop(t *testing.T) {
	h := NewInterruptHandler(nil)
	ctx, stop := h.HandleInterrupts(context.Background())

	stop()
	stop()

	<-ctx.Done()
	assert.False(t, h.WasInterrupted())
}
