// Package commands provides TUI command constructors and message types.
package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/moments/internal/notify"
	"github.com/javiermolinar/moments/internal/wordfetch"
)

// StateMsg carries a fetch state snapshot published by the controller.
type StateMsg struct {
	State wordfetch.State
}

// UpdatesClosedMsg is sent once the controller's updates channel is closed.
type UpdatesClosedMsg struct{}

// NotificationMsg carries an advisory toast.
type NotificationMsg struct {
	Notification notify.Notification
}

// NotificationsClosedMsg is sent once the notification stream is closed.
type NotificationsClosedMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// Initializer starts fetching for a language.
type Initializer interface {
	Initialize(languageCode string) error
}

// Refresher triggers an out-of-band fetch.
type Refresher interface {
	RefreshNow()
}

// Initialize starts the controller for languageCode.
func Initialize(ctrl Initializer, languageCode string) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.Initialize(languageCode); err != nil {
			return ErrMsg{Err: fmt.Errorf("starting word fetcher: %w", err)}
		}
		return nil
	}
}

// Refresh asks the controller for a new word. The result arrives as a StateMsg.
func Refresh(ctrl Refresher) tea.Cmd {
	return func() tea.Msg {
		ctrl.RefreshNow()
		return nil
	}
}

// WaitForState blocks until the controller publishes a snapshot.
func WaitForState(updates <-chan wordfetch.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-updates
		if !ok {
			return UpdatesClosedMsg{}
		}
		return StateMsg{State: st}
	}
}

// WaitForNotification blocks until the next toast arrives.
func WaitForNotification(notifications <-chan notify.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-notifications
		if !ok {
			return NotificationsClosedMsg{}
		}
		return NotificationMsg{Notification: n}
	}
}

// CopyToClipboard writes text with write and reports the outcome as a status message.
func CopyToClipboard(text string, write func(string) error) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return StatusMsgCmd{Msg: "Nothing to copy"}
		}
		if err := write(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copy failed: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied word to clipboard"}
	}
}
