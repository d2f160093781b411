package service

import (
	"context"
	"time"

	"github.com/studysync/studysync/internal/apperr"
	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/store"
	"github.com/studysync/studysync/internal/validate"
)

// ReminderListLimit caps the list-all reminder query.
const ReminderListLimit = 200

// ReminderInput carries the raw fields of a new reminder.
type ReminderInput struct {
	TaskID  any `json:"task_id"`
	FireAt  any `json:"fire_at"`
	Channel any `json:"channel"`
}

func (in *ReminderInput) UnmarshalJSON(data []byte) error {
	return validate.DecodeObject(data, map[string]*any{
		"task_id": &in.TaskID,
		"fire_at": &in.FireAt,
		"channel": &in.Channel,
	})
}

// CreateReminder schedules a reminder. fire_at is required; channel
// defaults to in_app. A null task_id makes a standalone reminder; task_id
// is not checked against existing tasks.
func (s *Service) CreateReminder(ctx context.Context, in ReminderInput) (*model.Reminder, error) {
	var taskID *int64
	if !validate.IsNull(in.TaskID) {
		id, err := validate.RequireID(in.TaskID, "task_id")
		if err != nil {
			return nil, err
		}
		taskID = &id
	}
	fireAt, err := validate.RequireInstant(in.FireAt, "fire_at")
	if err != nil {
		return nil, err
	}
	channel := model.ChannelInApp
	if in.Channel != nil {
		c, err := validate.RequireEnum(in.Channel, model.Channels, "channel")
		if err != nil {
			return nil, err
		}
		channel = model.Channel(c)
	}

	created, err := s.store.CreateReminder(ctx, model.Reminder{
		TaskID:  taskID,
		FireAt:  fireAt,
		Channel: channel,
		Status:  model.ReminderScheduled,
	})
	return created, translate(err)
}

// DueReminders returns scheduled reminders with fire_at <= at, oldest
// first. A zero at means now. Nothing is mutated.
func (s *Service) DueReminders(ctx context.Context, at time.Time) ([]model.Reminder, error) {
	if at.IsZero() {
		at = s.Now()
	}
	scheduled := model.ReminderScheduled
	items, err := s.store.ListReminders(ctx, store.ReminderFilter{
		Status: &scheduled,
		FireAt: store.TimeRange{To: &at},
		Order:  store.OrderFireAtAsc,
	})
	return items, translate(err)
}

// ListReminders returns the most recent reminders by fire_at, capped at
// ReminderListLimit.
func (s *Service) ListReminders(ctx context.Context) ([]model.Reminder, error) {
	items, err := s.store.ListReminders(ctx, store.ReminderFilter{
		Order: store.OrderFireAtDesc,
		Limit: ReminderListLimit,
	})
	return items, translate(err)
}

// AcknowledgeReminder moves a reminder to fired or cancelled. Repeating the
// same acknowledgment succeeds unchanged; switching between terminal
// statuses is a conflict.
func (s *Service) AcknowledgeReminder(ctx context.Context, id int64, status any) (*model.Reminder, error) {
	var target model.ReminderStatus
	if !isBlank(status) {
		st, err := validate.RequireEnum(status, model.AckStatuses, "status")
		if err != nil {
			return nil, err
		}
		target = model.ReminderStatus(st)
	}

	updated, err := s.store.UpdateReminder(ctx, id, func(r *model.Reminder) error {
		if target == "" {
			return &apperr.ValidationError{Reason: "status is required"}
		}
		if r.Status.IsTerminal() && r.Status != target {
			return apperr.Conflict("Reminder", id, "already "+string(r.Status))
		}
		r.Status = target
		return nil
	})
	return updated, translate(err)
}

func isBlank(v any) bool {
	switch s := v.(type) {
	case nil, validate.Null:
		return true
	case string:
		return s == ""
	case *string:
		return s == nil || *s == ""
	default:
		return false
	}
}
