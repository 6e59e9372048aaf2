package alert

import (
	"context"
	"io"
	"sync"

	"github.com/hammamikhairi/countdown/internal/domain"
)

// Compile-time interface check.
var _ domain.Alerter = (*Bell)(nil)

// Bell rings the terminal bell by writing BEL to a writer.
type Bell struct {
	mu  sync.Mutex
	out io.Writer
}

// NewBell creates a bell writing to out.
func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

// Alert writes a single BEL character.
func (b *Bell) Alert(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.out, "\a")
	return err
}
