package service

import (
	"context"
	"time"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/store"
	"github.com/studysync/studysync/internal/validate"
)

// TaskInput carries raw task fields. A nil field is absent: on create it
// takes its default, on update it keeps the stored value. A field sent as
// JSON null holds validate.Null, which clears description and due_at and
// is rejected for the other fields.
type TaskInput struct {
	Title       any `json:"title"`
	Description any `json:"description"`
	DueAt       any `json:"due_at"`
	Priority    any `json:"priority"`
	Status      any `json:"status"`
}

func (in *TaskInput) UnmarshalJSON(data []byte) error {
	return validate.DecodeObject(data, map[string]*any{
		"title":       &in.Title,
		"description": &in.Description,
		"due_at":      &in.DueAt,
		"priority":    &in.Priority,
		"status":      &in.Status,
	})
}

// TaskQuery holds the raw list filters. Empty strings are ignored.
type TaskQuery struct {
	Status    string `form:"status"`
	Q         string `form:"q"`
	DueBefore string `form:"due_before"`
	DueAfter  string `form:"due_after"`
}

// taskPatch is a validated TaskInput.
type taskPatch struct {
	title *string

	setDescription bool
	description    *string

	setDueAt bool
	dueAt    *time.Time

	priority *int
	status   *model.Status
}

func (in TaskInput) patch() (taskPatch, error) {
	var p taskPatch

	if in.Title != nil {
		title, err := validate.RequireText(in.Title, "title", 1)
		if err != nil {
			return p, err
		}
		p.title = &title
	}
	if in.Description != nil {
		p.setDescription = true
		p.description = validate.OptionalText(in.Description)
	}
	if in.DueAt != nil {
		due, err := validate.OptionalInstant(in.DueAt, "due_at")
		if err != nil {
			return p, err
		}
		p.setDueAt = true
		p.dueAt = due
	}
	if in.Priority != nil {
		prio, err := validate.RequireInt(in.Priority, "priority", validate.Between(model.PriorityHigh, model.PriorityLow))
		if err != nil {
			return p, err
		}
		p.priority = &prio
	}
	if in.Status != nil {
		status, err := validate.RequireEnum(in.Status, model.Statuses, "status")
		if err != nil {
			return p, err
		}
		st := model.Status(status)
		p.status = &st
	}
	return p, nil
}

func (p taskPatch) apply(t *model.Task) {
	if p.title != nil {
		t.Title = *p.title
	}
	if p.setDescription {
		t.Description = p.description
	}
	if p.setDueAt {
		t.DueAt = p.dueAt
	}
	if p.priority != nil {
		t.Priority = *p.priority
	}
	if p.status != nil {
		t.Status = *p.status
	}
}

// CreateTask validates in and stores a new task. Title is required;
// priority defaults to 2 and status to todo.
func (s *Service) CreateTask(ctx context.Context, in TaskInput) (*model.Task, error) {
	title, err := validate.RequireText(in.Title, "title", 1)
	if err != nil {
		return nil, err
	}
	p, err := in.patch()
	if err != nil {
		return nil, err
	}

	task := model.Task{
		Title:    title,
		Priority: model.DefaultPriority,
		Status:   model.StatusTodo,
	}
	p.apply(&task)

	created, err := s.store.CreateTask(ctx, task)
	return created, translate(err)
}

// GetTask returns a task with its subtasks and linked notes.
func (s *Service) GetTask(ctx context.Context, id int64) (*model.TaskDetail, error) {
	detail, err := s.store.GetTaskDetail(ctx, id)
	return detail, translate(err)
}

// ListTasks returns tasks in planner order: status rank, then due date
// (unset last), then priority, then most recently updated.
func (s *Service) ListTasks(ctx context.Context, q TaskQuery) ([]model.Task, error) {
	filter := store.TaskFilter{Query: q.Q, Order: store.OrderPlanner}

	if q.Status != "" {
		status, err := validate.RequireEnum(q.Status, model.Statuses, "status")
		if err != nil {
			return nil, err
		}
		st := model.Status(status)
		filter.Status = &st
	}
	if q.DueBefore != "" {
		before, err := validate.RequireInstant(q.DueBefore, "due_before")
		if err != nil {
			return nil, err
		}
		filter.Due.To = &before
	}
	if q.DueAfter != "" {
		after, err := validate.RequireInstant(q.DueAfter, "due_after")
		if err != nil {
			return nil, err
		}
		filter.Due.From = &after
	}

	tasks, err := s.store.ListTasks(ctx, filter)
	return tasks, translate(err)
}

// UpdateTask merges the present fields of in into the stored task.
func (s *Service) UpdateTask(ctx context.Context, id int64, in TaskInput) (*model.Task, error) {
	p, err := in.patch()
	if err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateTask(ctx, id, func(t *model.Task) error {
		p.apply(t)
		return nil
	})
	return updated, translate(err)
}

// DeleteTask removes a task together with its subtasks and note links.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	return translate(s.store.DeleteTask(ctx, id))
}
