package model

import "time"

// Notification is a delivery of a due reminder to a notification sink.
type Notification struct {
	// ID is unique per delivery.
	ID string `json:"id"`

	// ReminderID links this notification to the reminder that produced it.
	ReminderID int64 `json:"reminder_id"`

	// Channel is the reminder's delivery channel.
	Channel Channel `json:"channel"`

	// Title is the headline ("Reminder: <task>" or a generic title).
	Title string `json:"title"`

	// Body is the human-readable notification text.
	Body string `json:"body"`

	// FireAt is when the reminder was scheduled to fire.
	FireAt time.Time `json:"fire_at"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
