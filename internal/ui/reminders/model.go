// Package reminders is the terminal reminder watcher: it renders the
// poller's current due set and lets the user dismiss reminders.
package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studysync/studysync/internal/keys"
	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/sync"
	"github.com/studysync/studysync/internal/theme"
	"github.com/studysync/studysync/internal/ui"
)

// dismissTimeout bounds a single acknowledge call.
const dismissTimeout = 5 * time.Second

// Poller is the part of sync.Poller the watcher drives.
type Poller interface {
	WaitForDue() tea.Cmd
	Refresh() tea.Cmd
	Dismiss(ctx context.Context, id int64) error
}

// DismissedMsg reports the outcome of a dismiss request.
type DismissedMsg struct {
	ID  int64
	Err error
}

// Model is the watcher view.
type Model struct {
	poller   Poller
	keys     *keys.KeyMap
	help     help.Model
	frame    ui.Frame
	due      []model.Reminder
	cursor   int
	lastPoll time.Time
	status   string
	fresh    int
}

// New creates a watcher over p.
func New(p Poller, k *keys.KeyMap) Model {
	return Model{
		poller: p,
		keys:   k,
		help:   help.New(),
		frame:  ui.NewFrame(80, 24),
		status: "waiting for first poll",
	}
}

// Init subscribes to poll results.
func (m Model) Init() tea.Cmd {
	return m.poller.WaitForDue()
}

// Update handles messages for the watcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.frame = ui.NewFrame(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case sync.DueRemindersMsg:
		m.lastPoll = msg.At
		if msg.Err != nil {
			m.status = "poll failed: " + msg.Err.Error()
		} else {
			m.due = msg.Reminders
			m.fresh = len(msg.Fresh)
			m.status = fmt.Sprintf("%d due", len(m.due))
		}
		m.clampCursor()
		return m, m.poller.WaitForDue()

	case DismissedMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("dismiss %d failed: %v", msg.ID, msg.Err)
			return m, nil
		}
		m.removeDue(msg.ID)
		m.status = fmt.Sprintf("dismissed %d, %d due", msg.ID, len(m.due))
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.due)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Refresh):
		m.status = "refreshing"
		return m, m.poller.Refresh()

	case key.Matches(msg, m.keys.Dismiss):
		if len(m.due) == 0 {
			return m, nil
		}
		return m, m.dismiss(m.due[m.cursor].ID)
	}
	return m, nil
}

func (m Model) dismiss(id int64) tea.Cmd {
	p := m.poller
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dismissTimeout)
		defer cancel()
		return DismissedMsg{ID: id, Err: p.Dismiss(ctx, id)}
	}
}

func (m *Model) removeDue(id int64) {
	kept := make([]model.Reminder, 0, len(m.due))
	for _, r := range m.due {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	m.due = kept
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.due) {
		m.cursor = len(m.due) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the watcher.
func (m Model) View() string {
	status := m.status
	if m.fresh > 0 {
		status = fmt.Sprintf("%s, %d new", status, m.fresh)
	}
	if !m.lastPoll.IsZero() {
		status = fmt.Sprintf("%s · polled %s", status, m.lastPoll.Local().Format("15:04:05"))
	}
	return m.frame.Render(
		m.frame.Header("StudySync reminders", status),
		m.renderList(),
		m.frame.StatusBar(m.help.View(m.keys)),
	)
}

func (m Model) renderList() string {
	if len(m.due) == 0 {
		return theme.HelpStyle.PaddingLeft(2).Render("Nothing due. Polling continues in the background.")
	}

	var b strings.Builder
	for i, r := range m.due {
		line := fmt.Sprintf("%s  %s  %s",
			r.FireAt.Local().Format("Jan 02 15:04"),
			theme.ChannelLabelStyle(string(r.Channel)).Render(string(r.Channel)),
			reminderTitle(r),
		)
		if i == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func reminderTitle(r model.Reminder) string {
	if r.TaskTitle != nil && *r.TaskTitle != "" {
		return *r.TaskTitle
	}
	if r.TaskID != nil {
		return fmt.Sprintf("task #%d", *r.TaskID)
	}
	return "Standalone reminder"
}
