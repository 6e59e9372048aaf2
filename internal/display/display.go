// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type owns the Bubble Tea program. The [Model] draws the minutes
// and seconds fields, the time display, a progress ring and bar, and the
// Start/Pause and Reset buttons. Engine ticks are posted into the program
// as messages, so every engine mutation happens on the UI goroutine.
package display

import (
	"context"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/countdown/internal/engine"
	"github.com/hammamikhairi/countdown/internal/input"
	"github.com/hammamikhairi/countdown/internal/logger"
)

// tickMsg carries one scheduler callback into the event loop.
type tickMsg struct {
	id engine.TickID
}

// UI manages the terminal through Bubble Tea.
//
// Create it with [NewUI], pass [UI.Dispatch] to the engine via
// engine.WithDispatch, then call [UI.Run] (blocking).
type UI struct {
	out     *Output
	inputs  *input.Manager
	log     *logger.Logger
	program atomic.Pointer[tea.Program]
	opts    []tea.ProgramOption
}

// NewUI creates the display drawing on stdout. Extra program options are
// passed to Bubble Tea as is.
func NewUI(inputs *input.Manager, log *logger.Logger, opts ...tea.ProgramOption) *UI {
	return &UI{out: NewOutput(os.Stdout), inputs: inputs, log: log, opts: opts}
}

// Output returns the writer the program draws through. Anything else that
// writes to the terminal while the program runs must use it.
func (u *UI) Output() *Output { return u.out }

// Dispatch posts a tick into the running program. Ticks that arrive before
// Run or after quit are dropped. Safe for concurrent use.
func (u *UI) Dispatch(id engine.TickID) {
	if p := u.program.Load(); p != nil {
		p.Send(tickMsg{id: id})
	}
}

// Run starts the Bubble Tea event loop. Blocks until quit or ctx ends.
func (u *UI) Run(ctx context.Context, eng *engine.Engine) error {
	m := NewModel(ctx, eng, u.inputs, u.log)

	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithOutput(u.out),
	}, u.opts...)
	p := tea.NewProgram(m, opts...)
	u.program.Store(p)
	defer u.program.Store(nil)

	_, err := p.Run()
	return err
}

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if p := u.program.Load(); p != nil {
		p.Quit()
	}
}
