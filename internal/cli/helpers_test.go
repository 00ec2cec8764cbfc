package cli

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/wayfinder/internal/logging"
)

func nopLogger() *slog.Logger {
	return logging.NewNop()
}

func bytesReader(s string) io.Reader {
	return strings.NewReader(s)
}

// syncBuffer guards a buffer written by the robot and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf *bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}
