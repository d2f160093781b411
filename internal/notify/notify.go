// Package notify delivers due-reminder notifications to sinks: the process
// log, a styled console banner, and an outbox the browser client drains.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	gosync "sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/theme"
)

// GenericTitle is used for reminders without a task title.
const GenericTitle = "StudySync reminder"

// Sink receives notifications.
type Sink interface {
	Notify(ctx context.Context, n model.Notification) error
}

// FromReminder builds the notification for a due reminder.
func FromReminder(r model.Reminder, now time.Time) model.Notification {
	title := GenericTitle
	if r.TaskTitle != nil && *r.TaskTitle != "" {
		title = "Reminder: " + *r.TaskTitle
	}
	return model.Notification{
		ID:         uuid.NewString(),
		ReminderID: r.ID,
		Channel:    r.Channel,
		Title:      title,
		Body:       fmt.Sprintf("Due at %s", r.FireAt.UTC().Format(time.RFC3339)),
		FireAt:     r.FireAt,
		CreatedAt:  now.UTC(),
	}
}

// Multi fans a notification out to every sink. All sinks are tried; their
// errors are joined.
type Multi []Sink

// Notify implements Sink.
func (m Multi) Notify(ctx context.Context, n model.Notification) error {
	var errs []error
	for _, s := range m {
		if err := s.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// channelSink forwards only notifications on one channel.
type channelSink struct {
	channel model.Channel
	next    Sink
}

// OnlyChannel returns a sink that passes notifications for channel to next
// and drops the rest.
func OnlyChannel(channel model.Channel, next Sink) Sink {
	return channelSink{channel: channel, next: next}
}

func (c channelSink) Notify(ctx context.Context, n model.Notification) error {
	if n.Channel != c.channel {
		return nil
	}
	return c.next.Notify(ctx, n)
}

// LogSink writes one line per notification.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink returns a LogSink writing to logger, or the standard logger
// when logger is nil.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger}
}

// Notify implements Sink.
func (s *LogSink) Notify(_ context.Context, n model.Notification) error {
	s.logger.Printf("[notify] reminder %d (%s): %s - %s", n.ReminderID, n.Channel, n.Title, n.Body)
	return nil
}

// ConsoleSink renders a banner per notification.
type ConsoleSink struct {
	w     io.Writer
	mu    gosync.Mutex
	style lipgloss.Style
}

// NewConsoleSink returns a ConsoleSink writing to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{
		w: w,
		style: theme.BorderStyle.
			BorderForeground(theme.ColorYellow).
			Padding(0, 1),
	}
}

// Notify implements Sink.
func (s *ConsoleSink) Notify(_ context.Context, n model.Notification) error {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorYellow).Render(n.Title)
	body := theme.HelpStyle.Render(n.Body)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.w, s.style.Render(lipgloss.JoinVertical(lipgloss.Left, title, body)))
	return err
}

// DefaultOutboxSize bounds how many undelivered notifications an Outbox keeps.
const DefaultOutboxSize = 100

// Outbox buffers notifications until a client drains them. When full, the
// oldest notification is dropped.
type Outbox struct {
	mu    gosync.Mutex
	items []model.Notification
	size  int
}

// NewOutbox returns an Outbox holding at most size notifications.
func NewOutbox(size int) *Outbox {
	if size <= 0 {
		size = DefaultOutboxSize
	}
	return &Outbox{size: size}
}

// Notify implements Sink.
func (o *Outbox) Notify(_ context.Context, n model.Notification) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items = append(o.items, n)
	if over := len(o.items) - o.size; over > 0 {
		o.items = o.items[over:]
	}
	return nil
}

// Drain returns and clears the buffered notifications, oldest first.
func (o *Outbox) Drain() []model.Notification {
	o.mu.Lock()
	defer o.mu.Unlock()
	items := o.items
	o.items = nil
	if items == nil {
		items = []model.Notification{}
	}
	return items
}
