package model

import "time"

// Channel is how a reminder is surfaced to the user.
type Channel string

const (
	ChannelInApp   Channel = "in_app"
	ChannelBrowser Channel = "browser"
)

// Channels lists every valid reminder channel.
var Channels = []string{string(ChannelInApp), string(ChannelBrowser)}

// ReminderStatus is the lifecycle state of a reminder.
type ReminderStatus string

const (
	ReminderScheduled ReminderStatus = "scheduled"
	ReminderFired     ReminderStatus = "fired"
	ReminderCancelled ReminderStatus = "cancelled"
)

// AckStatuses lists the statuses a reminder may be acknowledged into.
var AckStatuses = []string{string(ReminderFired), string(ReminderCancelled)}

// IsTerminal reports whether no further transitions are allowed.
func (s ReminderStatus) IsTerminal() bool {
	return s == ReminderFired || s == ReminderCancelled
}

// Reminder is a time-based prompt, optionally attached to a task.
// TaskID is advisory: it is not required to reference an existing task.
type Reminder struct {
	ID        int64          `json:"id"`
	TaskID    *int64         `json:"task_id"`
	FireAt    time.Time      `json:"fire_at"`
	Channel   Channel        `json:"channel"`
	Status    ReminderStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`

	// TaskTitle is populated by join queries when the task exists.
	TaskTitle *string `json:"task_title,omitempty"`
}

// IsDue reports whether the reminder is scheduled and fire_at <= now.
func (r Reminder) IsDue(now time.Time) bool {
	return r.Status == ReminderScheduled && !r.FireAt.After(now)
}
