package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/moments/internal/language"
	"github.com/javiermolinar/moments/internal/tui/commands"
	"github.com/javiermolinar/moments/internal/word"
)

type keyMap struct {
	Refresh key.Binding
	Pick    key.Binding
	Copy    key.Binding
	Quit    key.Binding

	// Picker
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(key.WithKeys("n", "r"), key.WithHelp("n", "new word")),
		Pick:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "language")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:   key.NewBinding(key.WithKeys("backspace", "h", "left"), key.WithHelp("⌫", "back")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

func (k keyMap) normalHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Pick, k.Copy, k.Quit}
}

func (k keyMap) pickerHelp(v language.View) []key.Binding {
	if v == language.ViewLanguages {
		return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Cancel}
	}
	return []key.Binding{k.Up, k.Down, k.Select, k.Cancel}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key press", zap.String("key", msg.String()), zap.Bool("picker", m.selector.IsOpen()))

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.selector.IsOpen() {
		return m.handlePickerKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys while the word card is shown.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		return m, commands.Refresh(m.ctrl)
	case key.Matches(msg, m.keys.Pick):
		m.selector.Open()
		m.cursor = countryIndex(m.selector.Countries(), m.selector.CurrentCountry().Code)
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m, commands.CopyToClipboard(copyText(m.state.Word), m.clipboard)
	}
	return m, nil
}

// handlePickerKeys handles keys while the language picker is open.
func (m Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.selector.Cancel()
		m.cursor = 0
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.pickerLen()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Back):
		if m.selector.View() != language.ViewLanguages {
			return m, nil
		}
		pending, _ := m.selector.Pending()
		if err := m.selector.GoBack(); err != nil {
			return m, errCmd(err)
		}
		m.cursor = countryIndex(m.selector.Countries(), pending.Code)
	case key.Matches(msg, m.keys.Select):
		return m.selectAtCursor()
	}
	return m, nil
}

// selectAtCursor picks the country or language under the cursor. Committing a
// language hands it to the controller, which starts a fetch.
func (m Model) selectAtCursor() (tea.Model, tea.Cmd) {
	switch m.selector.View() {
	case language.ViewCountries:
		countries := m.selector.Countries()
		if m.cursor < 0 || m.cursor >= len(countries) {
			return m, nil
		}
		if err := m.selector.SelectCountry(countries[m.cursor].Code); err != nil {
			return m, errCmd(err)
		}
		if m.selector.View() == language.ViewLanguages {
			m.cursor = max(languageIndex(m.selector.Options(), m.selector.Selected()), 0)
		}
	case language.ViewLanguages:
		options := m.selector.Options()
		if m.cursor < 0 || m.cursor >= len(options) {
			return m, nil
		}
		if err := m.selector.CommitLanguage(options[m.cursor].Code); err != nil {
			return m, errCmd(err)
		}
	}
	return m, nil
}

func (m Model) pickerLen() int {
	if m.selector.View() == language.ViewLanguages {
		return len(m.selector.Options())
	}
	return len(m.selector.Countries())
}

func countryIndex(countries []language.Country, code string) int {
	return max(slices.IndexFunc(countries, func(c language.Country) bool { return c.Code == code }), 0)
}

func languageIndex(options []language.Language, code string) int {
	return slices.IndexFunc(options, func(l language.Language) bool { return l.Code == code })
}

// copyText is the clipboard form of a record: the word, its translation, and meanings.
func copyText(rec *word.Record) string {
	if rec == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(rec.Word)
	if rec.EnglishTranslation != "" {
		b.WriteString(" (" + rec.EnglishTranslation + ")")
	}
	for _, meaning := range rec.Meanings {
		b.WriteString("\n- " + meaning)
	}
	return b.String()
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return commands.ErrMsg{Err: err}
	}
}
