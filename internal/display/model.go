package display

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/countdown/internal/engine"
	"github.com/hammamikhairi/countdown/internal/input"
	"github.com/hammamikhairi/countdown/internal/logger"
	"github.com/hammamikhairi/countdown/internal/render"
)

// focus is the control that receives non-global keys.
type focus int

const (
	focusMinutes focus = iota
	focusSeconds
	focusToggle
	focusReset
	focusCount
)

func (f focus) isField() bool { return f == focusMinutes || f == focusSeconds }

// statusDone is shown after the countdown reaches zero.
const statusDone = "Time's up!"

// ringRadius is the ring size in rows.
const ringRadius = 4

// Model is the Bubble Tea model for the widget.
type Model struct {
	ctx     context.Context
	engine  *engine.Engine
	inputs  *input.Manager
	log     *logger.Logger
	keys    keyMap
	help    help.Model
	minutes textinput.Model
	seconds textinput.Model
	bar     progress.Model
	focus   focus
	status  string
	title   string
}

// NewModel builds the widget around an engine and the input manager that
// feeds it.
func NewModel(ctx context.Context, eng *engine.Engine, inputs *input.Manager, log *logger.Logger) Model {
	m := Model{
		ctx:     ctx,
		engine:  eng,
		inputs:  inputs,
		log:     log,
		keys:    newKeyMap(),
		help:    help.New(),
		minutes: newField("min", input.MaxMinutes),
		seconds: newField("sec", input.MaxSeconds),
		bar:     progress.New(progress.WithDefaultGradient()),
	}
	m.minutes.SetValue(inputs.MinutesText())
	m.seconds.SetValue(inputs.SecondsText())
	m.bar.Width = 40
	m.title = render.BaseTitle
	m.setFocus(focusToggle)
	return m
}

func newField(placeholder string, max int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = len(strconv.Itoa(max)) + 1
	ti.Width = ti.CharLimit
	ti.PromptStyle = promptStyle
	ti.TextStyle = fieldStyle
	ti.Cursor.Style = cursorStyle
	return ti
}

// Init sets the initial window title.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.SetWindowTitle(render.BaseTitle))
}

// Update handles keys, ticks and resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		if m.engine.TickFor(msg.id) && m.engine.Snapshot().Finished() {
			m.status = statusDone
			m.log.Info("display: countdown finished")
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		if w := msg.Width - 4; w > 10 {
			m.bar.Width = min(w, 60)
		}

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if cmd, handled := m.handleKey(msg); handled {
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
			break
		}
		cmds = append(cmds, m.updateField(msg))
	}

	if cmd := m.syncTitle(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKey processes the bindings that never reach a field. Reports
// whether the key was consumed.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
		return nil, true
	case key.Matches(msg, m.keys.Reset):
		m.reset()
		return nil, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	case key.Matches(msg, m.keys.Next):
		m.cycleFocus(1)
		return nil, true
	case key.Matches(msg, m.keys.Prev):
		m.cycleFocus(-1)
		return nil, true
	case key.Matches(msg, m.keys.Activate):
		switch m.focus {
		case focusToggle:
			m.toggle()
		case focusReset:
			m.reset()
		}
		return nil, true
	case key.Matches(msg, m.keys.Up):
		m.stepField(1)
		return nil, true
	case key.Matches(msg, m.keys.Down):
		m.stepField(-1)
		return nil, true
	}
	return nil, false
}

func (m *Model) toggle() {
	m.status = ""
	// A zero duration refuses to start; the UI has nothing to report.
	_ = m.engine.Toggle()
	if m.running() && m.focus.isField() {
		m.setFocus(focusToggle)
	}
}

func (m *Model) reset() {
	m.status = ""
	m.engine.Reset()
}

func (m *Model) running() bool {
	return m.engine.Snapshot().Running()
}

// cycleFocus moves focus by dir, skipping the fields while running.
func (m *Model) cycleFocus(dir int) {
	f := m.focus
	for i := 0; i < int(focusCount); i++ {
		f = focus((int(f) + dir + int(focusCount)) % int(focusCount))
		if f.isField() && m.running() {
			continue
		}
		break
	}
	m.setFocus(f)
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.minutes.Blur()
	m.seconds.Blur()
	switch f {
	case focusMinutes:
		m.minutes.Focus()
		m.minutes.CursorEnd()
	case focusSeconds:
		m.seconds.Focus()
		m.seconds.CursorEnd()
	}
}

// stepField nudges the focused field by delta, like the arrows on a
// numeric input.
func (m *Model) stepField(delta int) {
	if !m.focus.isField() || m.running() {
		return
	}
	switch m.focus {
	case focusMinutes:
		m.inputs.StepMinutes(m.ctx, delta)
	case focusSeconds:
		m.inputs.StepSeconds(m.ctx, delta)
	}
	m.afterEdit()
}

// updateField feeds a key to the focused field. Fields are disabled while
// running, so the key is dropped then.
func (m *Model) updateField(msg tea.KeyMsg) tea.Cmd {
	if !m.focus.isField() || m.running() {
		return nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusMinutes:
		before := m.minutes.Value()
		m.minutes, cmd = m.minutes.Update(msg)
		if m.minutes.Value() != before {
			m.inputs.SetMinutes(m.ctx, m.minutes.Value())
			m.afterEdit()
		}
	case focusSeconds:
		before := m.seconds.Value()
		m.seconds, cmd = m.seconds.Update(msg)
		if m.seconds.Value() != before {
			m.inputs.SetSeconds(m.ctx, m.seconds.Value())
			m.afterEdit()
		}
	}
	return cmd
}

// afterEdit writes the clamped values back into the fields and lets the
// engine pick up the new duration.
func (m *Model) afterEdit() {
	m.status = ""
	syncField(&m.minutes, m.inputs.MinutesText())
	syncField(&m.seconds, m.inputs.SecondsText())
	m.engine.InputsChanged()
}

func syncField(ti *textinput.Model, v string) {
	if ti.Value() != v {
		ti.SetValue(v)
		ti.CursorEnd()
	}
}

func (m *Model) syncTitle() tea.Cmd {
	snap := m.engine.Snapshot()
	title := render.Title(snap.Running(), snap.Remaining)
	if title == m.title {
		return nil
	}
	m.title = title
	return tea.SetWindowTitle(title)
}

// View renders the widget.
func (m Model) View() string {
	v := render.Project(m.engine.Snapshot())

	var b strings.Builder
	b.WriteString(titleStyle.Render(render.BaseTitle))
	b.WriteString("\n\n")

	b.WriteString(m.viewField(m.minutes, "min", focusMinutes, v.InputsDisabled))
	b.WriteString("  ")
	b.WriteString(m.viewField(m.seconds, "sec", focusSeconds, v.InputsDisabled))
	b.WriteString("\n\n")

	b.WriteString(viewRing(v))
	b.WriteString("\n")
	b.WriteString("  " + m.bar.ViewAs(v.Progress))
	b.WriteString("\n\n")

	b.WriteString("  " + m.viewButton(v.ToggleLabel, focusToggle))
	b.WriteString("  " + m.viewButton(render.LabelReset, focusReset))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n  " + doneStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n  " + m.help.View(m.keys))
	return b.String()
}

func (m Model) viewField(ti textinput.Model, unit string, f focus, disabled bool) string {
	style := fieldBoxStyle
	switch {
	case disabled:
		style = fieldDisabledStyle
	case m.focus == f:
		style = fieldFocusedStyle
	}
	body := ti.View()
	if disabled {
		body = ti.Value()
	}
	return "  " + style.Render(body) + " " + labelStyle.Render(unit)
}

func (m Model) viewButton(label string, f focus) string {
	if m.focus == f {
		return buttonFocusedStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

// viewRing draws the progress ring with the remaining time in its centre.
func viewRing(v render.View) string {
	lines := render.Ring(v.Progress, ringRadius)
	mid := len(lines) / 2

	timeStyle := timeIdleStyle
	switch {
	case v.Finished:
		timeStyle = timeDoneStyle
	case v.InputsDisabled:
		timeStyle = timeRunStyle
	}

	var b strings.Builder
	for i, l := range lines {
		b.WriteString("  ")
		if i != mid {
			b.WriteString(ringStyle.Render(l))
			b.WriteByte('\n')
			continue
		}
		rs := []rune(l)
		pad := (len(rs) - len([]rune(v.Time))) / 2
		if pad < 1 {
			b.WriteString(ringStyle.Render(l) + " " + timeStyle.Render(v.Time) + "\n")
			continue
		}
		left := string(rs[:pad])
		right := string(rs[pad+len([]rune(v.Time)):])
		b.WriteString(ringStyle.Render(left) + timeStyle.Render(v.Time) + ringStyle.Render(right))
		b.WriteByte('\n')
	}
	return b.String()
}

// ── Styles ───────────────────────────────────────────────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#94a3b8")).
			PaddingLeft(2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	fieldBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1)

	fieldFocusedStyle = fieldBoxStyle.
				BorderForeground(lipgloss.Color("#bae6fd"))

	fieldDisabledStyle = fieldBoxStyle.
				Foreground(lipgloss.Color("#71717a")).
				BorderForeground(lipgloss.Color("#3f3f46"))

	ringStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	timeIdleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#d4d4d8"))

	timeRunStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#fde68a"))

	timeDoneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#fca5a5"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa")).
			Background(lipgloss.Color("#27272a")).
			Padding(0, 2)

	buttonFocusedStyle = buttonStyle.
				Foreground(lipgloss.Color("#18181b")).
				Background(lipgloss.Color("#bae6fd"))
)
