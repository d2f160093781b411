package service

import (
	"context"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/validate"
)

// SubtaskInput carries raw subtask fields. Nil fields are absent; every
// field is required to be valid when present, so a JSON null is rejected.
type SubtaskInput struct {
	Title     any `json:"title"`
	Status    any `json:"status"`
	SortOrder any `json:"sort_order"`
}

func (in *SubtaskInput) UnmarshalJSON(data []byte) error {
	return validate.DecodeObject(data, map[string]*any{
		"title":      &in.Title,
		"status":     &in.Status,
		"sort_order": &in.SortOrder,
	})
}

type subtaskPatch struct {
	title     *string
	status    *model.Status
	sortOrder *int
}

func (in SubtaskInput) patch() (subtaskPatch, error) {
	var p subtaskPatch
	if in.Title != nil {
		title, err := validate.RequireText(in.Title, "title", 1)
		if err != nil {
			return p, err
		}
		p.title = &title
	}
	if in.Status != nil {
		status, err := validate.RequireEnum(in.Status, model.Statuses, "status")
		if err != nil {
			return p, err
		}
		st := model.Status(status)
		p.status = &st
	}
	if in.SortOrder != nil {
		order, err := validate.RequireInt(in.SortOrder, "sort_order", validate.AtLeast(0))
		if err != nil {
			return p, err
		}
		p.sortOrder = &order
	}
	return p, nil
}

func (p subtaskPatch) apply(st *model.Subtask) {
	if p.title != nil {
		st.Title = *p.title
	}
	if p.status != nil {
		st.Status = *p.status
	}
	if p.sortOrder != nil {
		st.SortOrder = *p.sortOrder
	}
}

// CreateSubtask adds a subtask under an existing task. Status defaults to
// todo and sort_order to 0; sort_order is never renumbered.
func (s *Service) CreateSubtask(ctx context.Context, taskID int64, in SubtaskInput) (*model.Subtask, error) {
	title, err := validate.RequireText(in.Title, "title", 1)
	if err != nil {
		return nil, err
	}
	p, err := in.patch()
	if err != nil {
		return nil, err
	}

	sub := model.Subtask{TaskID: taskID, Title: title, Status: model.StatusTodo}
	p.apply(&sub)

	created, err := s.store.CreateSubtask(ctx, sub)
	return created, translate(err)
}

// UpdateSubtask merges the present fields of in into the stored subtask.
func (s *Service) UpdateSubtask(ctx context.Context, id int64, in SubtaskInput) (*model.Subtask, error) {
	p, err := in.patch()
	if err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateSubtask(ctx, id, func(st *model.Subtask) error {
		p.apply(st)
		return nil
	})
	return updated, translate(err)
}

// DeleteSubtask removes a subtask.
func (s *Service) DeleteSubtask(ctx context.Context, id int64) error {
	return translate(s.store.DeleteSubtask(ctx, id))
}
