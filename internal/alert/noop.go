package alert

import (
	"context"

	"github.com/hammamikhairi/countdown/internal/domain"
	"github.com/hammamikhairi/countdown/internal/logger"
)

// Compile-time interface check.
var _ domain.Alerter = (*NoOp)(nil)

// NoOp is an alerter that does nothing. Used when sound is disabled or the
// audio device could not be opened.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a silent alerter.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Alert does nothing.
func (n *NoOp) Alert(ctx context.Context) error {
	n.log.Debug("alert no-op: countdown finished silently")
	return nil
}
