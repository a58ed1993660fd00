package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/moments/internal/notify"
	"github.com/javiermolinar/moments/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case commands.StateMsg:
		m.state = msg.State
		m.logger.Debug("state applied",
			zap.Stringer("status", msg.State.Status),
			zap.String("language", msg.State.Language),
			zap.Uint64("seq", msg.State.Seq),
		)
		return m, commands.WaitForState(m.ctrl.Updates())

	case commands.UpdatesClosedMsg, commands.NotificationsClosedMsg:
		return m, nil

	case commands.NotificationMsg:
		n := msg.Notification
		text := n.Title
		if n.Description != "" {
			text += ": " + n.Description
		}
		return m.setStatus(text, n.Severity == notify.SeverityDestructive), tea.Batch(
			m.clearStatusAfter(),
			commands.WaitForNotification(m.notifications),
		)

	case commands.ErrMsg:
		m.logger.Warn("tui error", zap.Error(msg.Err))
		return m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true), m.clearStatusAfter()

	case commands.StatusMsgCmd:
		return m.setStatus(msg.Msg, false), m.clearStatusAfter()

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) setStatus(text string, isErr bool) Model {
	m.statusMsg = text
	m.statusErr = isErr
	m.statusTime = m.now().Add(statusDuration)
	return m
}

func (m Model) clearStatusAfter() tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}
