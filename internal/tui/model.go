// Package tui provides the terminal user interface for moments.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/moments/internal/language"
	"github.com/javiermolinar/moments/internal/notify"
	"github.com/javiermolinar/moments/internal/tui/commands"
	"github.com/javiermolinar/moments/internal/tui/theme"
	"github.com/javiermolinar/moments/internal/wordfetch"
)

// statusDuration is how long a toast stays in the footer.
const statusDuration = 3 * time.Second

// WordController is the part of the word fetch controller the TUI drives.
type WordController interface {
	Initialize(languageCode string) error
	RefreshNow()
	State() wordfetch.State
	Updates() <-chan wordfetch.State
}

// Deps holds everything the TUI renders and drives. The caller owns their lifetimes.
type Deps struct {
	Controller    WordController
	Selector      *language.Selector
	Notifications <-chan notify.Notification
	Theme         string
	Logger        *zap.Logger
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	ctrl          WordController
	selector      *language.Selector
	notifications <-chan notify.Notification
	logger        *zap.Logger

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Components
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	// State
	state  wordfetch.State
	cursor int // row under the cursor while the picker is open

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/toast message
	statusErr  bool      // Render statusMsg with the destructive style
	statusTime time.Time // When to clear message

	now       func() time.Time
	clipboard func(string) error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow replaces the clock used to expire status messages.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) {
		if write != nil {
			m.clipboard = write
		}
	}
}

// New creates a new TUI model.
func New(deps Deps, opts ...ModelOption) Model {
	t, err := theme.Load(deps.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle.Bold(true).Padding(0)
	h.Styles.ShortDesc = styles.HelpStyle.Padding(0)
	h.Styles.ShortSeparator = styles.HelpStyle.Padding(0)

	m := Model{
		ctrl:          deps.Controller,
		selector:      deps.Selector,
		notifications: deps.Notifications,
		logger:        logger,
		theme:         t,
		styles:        styles,
		keys:          defaultKeyMap(),
		help:          h,
		spinner:       sp,
		state:         deps.Controller.State(),
		now:           time.Now,
		clipboard:     clipboard.WriteAll,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// Init starts the controller and subscribes to its updates and to toasts.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		commands.Initialize(m.ctrl, m.selector.Selected()),
		commands.WaitForState(m.ctrl.Updates()),
	}
	if m.notifications != nil {
		cmds = append(cmds, commands.WaitForNotification(m.notifications))
	}
	return tea.Batch(cmds...)
}

// Run starts the TUI and blocks until the user quits.
func Run(deps Deps) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
