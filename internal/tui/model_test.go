package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/moments/internal/language"
	"github.com/javiermolinar/moments/internal/notify"
	"github.com/javiermolinar/moments/internal/tui/commands"
	"github.com/javiermolinar/moments/internal/word"
	"github.com/javiermolinar/moments/internal/wordfetch"
)

type fakeController struct {
	state       wordfetch.State
	updates     chan wordfetch.State
	initialized []string
	languages   []string
	setErr      error
	refreshes   int
}

func newFakeController() *fakeController {
	return &fakeController{
		state:   wordfetch.State{Status: wordfetch.StatusLoading},
		updates: make(chan wordfetch.State, 1),
	}
}

func (f *fakeController) Initialize(code string) error {
	f.initialized = append(f.initialized, code)
	return nil
}

func (f *fakeController) SetLanguage(code string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.languages = append(f.languages, code)
	return nil
}

func (f *fakeController) RefreshNow()                     { f.refreshes++ }
func (f *fakeController) State() wordfetch.State          { return f.state }
func (f *fakeController) Updates() <-chan wordfetch.State { return f.updates }

type harness struct {
	model  Model
	ctrl   *fakeController
	stream *notify.Stream
	now    time.Time
}

func newHarness(t *testing.T, initial string, opts ...ModelOption) *harness {
	t.Helper()
	h := &harness{
		ctrl:   newFakeController(),
		stream: notify.NewStream(4),
		now:    time.Date(2025, 3, 1, 15, 4, 5, 0, time.UTC),
	}
	t.Cleanup(h.stream.Close)

	sel := language.NewSelector(language.Default(), initial,
		language.WithSetter(h.ctrl),
		language.WithSink(h.stream),
	)
	opts = append([]ModelOption{WithNow(func() time.Time { return h.now })}, opts...)
	h.model = New(Deps{
		Controller:    h.ctrl,
		Selector:      sel,
		Notifications: h.stream.C(),
		Theme:         "mocha",
	}, opts...)
	return h
}

func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	updated, cmd := h.model.Update(msg)
	m, ok := updated.(Model)
	require.True(t, ok, "Update returned %T", updated)
	h.model = m
	return cmd
}

func (h *harness) press(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		if cmd := h.send(t, msg); cmd != nil {
			// Only run commands that return immediately.
			if res := cmd(); res != nil {
				if _, isQuit := res.(tea.QuitMsg); !isQuit {
					h.send(t, res)
				}
			}
		}
	}
}

func useColorProfile(t *testing.T, p termenv.Profile) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(p)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prev)
	})
}

func nextNotification(t *testing.T, s *notify.Stream) notify.Notification {
	t.Helper()
	select {
	case n := <-s.C():
		return n
	case <-time.After(time.Second):
		t.Fatal("no notification")
		return notify.Notification{}
	}
}

func TestNew_UsesControllerState(t *testing.T) {
	h := newHarness(t, "english")
	assert.Equal(t, wordfetch.StatusLoading, h.model.state.Status)
	assert.Equal(t, "mocha", h.model.theme.Name)
	assert.NotNil(t, h.model.Init())
}

func TestPicker_OpenStartsAtCurrentCountry(t *testing.T) {
	h := newHarness(t, "tamil")
	h.press(t, "l")

	require.True(t, h.model.selector.IsOpen())
	assert.Equal(t, language.ViewCountries, h.model.selector.View())
	assert.Equal(t, 5, h.model.cursor, "cursor should start on India")
}

func TestPicker_CommitMultiLanguageCountry(t *testing.T) {
	h := newHarness(t, "english")
	h.press(t, "l", "down", "down", "down", "down", "down", "enter")

	require.Equal(t, language.ViewLanguages, h.model.selector.View())
	assert.Len(t, h.model.selector.Options(), 4)
	assert.Equal(t, 0, h.model.cursor)

	h.press(t, "down", "enter")

	assert.False(t, h.model.selector.IsOpen())
	assert.Equal(t, "tamil", h.model.selector.Selected())
	assert.Equal(t, []string{"tamil"}, h.ctrl.languages)

	n := nextNotification(t, h.stream)
	assert.Equal(t, "Language Changed", n.Title)
	assert.Equal(t, "Selected language: Tamil", n.Description)
}

func TestPicker_SingleLanguageCountryCommitsImmediately(t *testing.T) {
	h := newHarness(t, "english")
	h.press(t, "l", "j", "enter")

	assert.False(t, h.model.selector.IsOpen())
	assert.Equal(t, "french", h.model.selector.Selected())
	assert.Equal(t, []string{"french"}, h.ctrl.languages)
}

func TestPicker_LanguageCursorStartsOnSelection(t *testing.T) {
	h := newHarness(t, "telugu")
	h.press(t, "l", "enter")

	require.Equal(t, language.ViewLanguages, h.model.selector.View())
	assert.Equal(t, 2, h.model.cursor, "cursor should start on Telugu")
}

func TestPicker_BackReturnsToCountry(t *testing.T) {
	h := newHarness(t, "english")
	h.press(t, "l", "down", "down", "down", "down", "down", "enter", "backspace")

	assert.Equal(t, language.ViewCountries, h.model.selector.View())
	_, pending := h.model.selector.Pending()
	assert.False(t, pending)
	assert.Equal(t, 5, h.model.cursor)

	// Back at the country list is a no-op.
	h.press(t, "backspace")
	assert.Equal(t, language.ViewCountries, h.model.selector.View())
}

func TestPicker_EscapeCancels(t *testing.T) {
	h := newHarness(t, "english")
	h.press(t, "l", "k", "j", "esc")

	assert.False(t, h.model.selector.IsOpen())
	assert.Equal(t, "english", h.model.selector.Selected())
	assert.Empty(t, h.ctrl.languages)
}

func TestPicker_CursorClamped(t *testing.T) {
	h := newHarness(t, "english")
	h.press(t, "l", "up")
	assert.Equal(t, 0, h.model.cursor)

	for i := 0; i < 20; i++ {
		h.press(t, "down")
	}
	assert.Equal(t, len(h.model.selector.Countries())-1, h.model.cursor)
}

func TestPicker_SetterFailureShowsError(t *testing.T) {
	h := newHarness(t, "english")
	h.ctrl.setErr = errors.New("closed")
	h.press(t, "l", "j", "enter")

	assert.Equal(t, "english", h.model.selector.Selected())
	assert.True(t, h.model.statusErr)
	assert.Contains(t, h.model.statusMsg, "closed")
}

func TestRefreshKey(t *testing.T) {
	h := newHarness(t, "english")
	h.press(t, "n", "r")
	assert.Equal(t, 2, h.ctrl.refreshes)
}

func TestCopyKey(t *testing.T) {
	var copied string
	h := newHarness(t, "english", WithClipboard(func(s string) error {
		copied = s
		return nil
	}))

	rec := word.Fallback()
	h.model.state = wordfetch.State{Status: wordfetch.StatusSuccess, Word: &rec}
	h.press(t, "y")

	assert.Equal(t, "Eucatastrophe (yoo-kuh-tass-truh-fee)\n- A sudden turn towards good", copied)
	assert.Equal(t, "Copied word to clipboard", h.model.statusMsg)
	assert.False(t, h.model.statusErr)
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t, "english")

	cmd := h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// ctrl+c quits even with the picker open.
	h.press(t, "l")
	cmd = h.send(t, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStateMsgAppliesSnapshot(t *testing.T) {
	h := newHarness(t, "english")
	rec := word.Record{Word: "chat", Language: "french", Meanings: []string{"cat"}}

	cmd := h.send(t, commands.StateMsg{State: wordfetch.State{Status: wordfetch.StatusSuccess, Word: &rec, Seq: 2}})

	assert.Equal(t, wordfetch.StatusSuccess, h.model.state.Status)
	assert.Equal(t, "chat", h.model.state.Word.Word)
	assert.NotNil(t, cmd, "model should keep listening for updates")
}

func TestNotificationStatusLifecycle(t *testing.T) {
	h := newHarness(t, "english")

	h.send(t, commands.NotificationMsg{Notification: notify.Notification{
		Title:       "Error",
		Description: "Could not fetch new word: boom",
		Severity:    notify.SeverityDestructive,
	}})
	assert.Equal(t, "Error: Could not fetch new word: boom", h.model.statusMsg)
	assert.True(t, h.model.statusErr)

	// A clear tick before the deadline leaves a newer toast alone.
	h.now = h.now.Add(time.Second)
	h.send(t, commands.ClearStatusMsg{})
	assert.NotEmpty(t, h.model.statusMsg)

	h.now = h.now.Add(statusDuration)
	h.send(t, commands.ClearStatusMsg{})
	assert.Empty(t, h.model.statusMsg)
	assert.False(t, h.model.statusErr)
}

func TestView_WordCard(t *testing.T) {
	useColorProfile(t, termenv.Ascii)

	h := newHarness(t, "english")
	h.send(t, tea.WindowSizeMsg{Width: 90, Height: 30})
	rec := word.Fallback()
	h.send(t, commands.StateMsg{State: wordfetch.State{
		Status:    wordfetch.StatusSuccess,
		Word:      &rec,
		LastFetch: time.Date(2025, 3, 1, 15, 4, 5, 0, time.UTC),
	}})

	out := ansi.Strip(h.model.View())
	for _, want := range []string{"moments", "English", "Eucatastrophe", "Updated at 3:04:05 PM", "new word", "quit"} {
		assert.Contains(t, out, want)
	}
	assert.Len(t, strings.Split(out, "\n"), 30)
}

func TestView_ErrorStateShowsLastError(t *testing.T) {
	useColorProfile(t, termenv.Ascii)

	h := newHarness(t, "english")
	h.send(t, tea.WindowSizeMsg{Width: 90, Height: 30})
	rec := word.Fallback()
	h.send(t, commands.StateMsg{State: wordfetch.State{
		Status:    wordfetch.StatusError,
		Word:      &rec,
		LastError: "network response was not ok: 500 Internal Server Error",
	}})

	out := ansi.Strip(h.model.View())
	assert.Contains(t, out, "Last fetch failed")
}

func TestView_PickerOverlay(t *testing.T) {
	useColorProfile(t, termenv.Ascii)

	h := newHarness(t, "tamil")
	h.send(t, tea.WindowSizeMsg{Width: 90, Height: 30})
	h.press(t, "l")

	out := ansi.Strip(h.model.View())
	assert.Contains(t, out, "Select Country")
	assert.Contains(t, out, "India")
	assert.Contains(t, out, "4 languages")
	assert.Contains(t, out, "2 languages")

	h.press(t, "enter")
	out = ansi.Strip(h.model.View())
	assert.Contains(t, out, "Languages in India")
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Tamil") && !strings.Contains(line, "moments") {
			assert.Contains(t, line, "✓")
		}
	}
}

func TestView_BeforeWindowSize(t *testing.T) {
	h := newHarness(t, "english")
	assert.Equal(t, "Loading...", h.model.View())
}
