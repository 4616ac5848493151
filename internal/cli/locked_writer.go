package cli

import (
	"io"
	"sync"
)

// lockedWriter serializes writes to an underlying writer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// Write writes to the underlying writer with a mutex guard.
func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// wrapPlayWriters makes stdout and stderr safe to share with the session
// loop, which reports transitions and timeouts from its own goroutine.
// When both name the same writer they share one lock.
func wrapPlayWriters(stdout, stderr io.Writer) (io.Writer, io.Writer) {
	lockedOut := &lockedWriter{w: stdout}
	if stderr == stdout {
		return lockedOut, lockedOut
	}
	return lockedOut, &lockedWriter{w: stderr}
}
