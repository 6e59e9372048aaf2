package display

import (
	"os"
	"sync"
)

// Output is the terminal the program draws on. Every Write is serialized,
// so bytes written from other goroutines (the bell alert) land between
// frames and escape sequences, never inside one. It keeps the *os.File
// methods so Bubble Tea still sees a terminal and reads its size.
type Output struct {
	*os.File
	mu sync.Mutex
}

// NewOutput wraps f.
func NewOutput(f *os.File) *Output {
	return &Output{File: f}
}

// Write writes p in one piece.
func (o *Output) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.File.Write(p)
}

// WriteString writes s in one piece.
func (o *Output) WriteString(s string) (int, error) {
	return o.Write([]byte(s))
}
