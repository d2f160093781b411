package service

import (
	"context"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/store"
	"github.com/studysync/studysync/internal/validate"
)

// NoteInput carries raw note fields. Nil fields are absent; a JSON null
// clears tags and is rejected for title and body.
type NoteInput struct {
	Title any `json:"title"`
	Body  any `json:"body"`
	Tags  any `json:"tags"`
}

func (in *NoteInput) UnmarshalJSON(data []byte) error {
	return validate.DecodeObject(data, map[string]*any{
		"title": &in.Title,
		"body":  &in.Body,
		"tags":  &in.Tags,
	})
}

// NoteQuery holds the raw note list filters.
type NoteQuery struct {
	Q   string `form:"q"`
	Tag string `form:"tag"`
}

type notePatch struct {
	title   *string
	body    *string
	setTags bool
	tags    *string
}

func (in NoteInput) patch() (notePatch, error) {
	var p notePatch
	if in.Title != nil {
		title, err := validate.RequireText(in.Title, "title", 1)
		if err != nil {
			return p, err
		}
		p.title = &title
	}
	if in.Body != nil {
		body, err := validate.RequireText(in.Body, "body", 1)
		if err != nil {
			return p, err
		}
		p.body = &body
	}
	if in.Tags != nil {
		p.setTags = true
		p.tags = validate.OptionalText(in.Tags)
	}
	return p, nil
}

func (p notePatch) apply(n *model.Note) {
	if p.title != nil {
		n.Title = *p.title
	}
	if p.body != nil {
		n.Body = *p.body
	}
	if p.setTags {
		n.Tags = p.tags
	}
}

// CreateNote validates in and stores a new note. Title and body are required.
func (s *Service) CreateNote(ctx context.Context, in NoteInput) (*model.Note, error) {
	title, err := validate.RequireText(in.Title, "title", 1)
	if err != nil {
		return nil, err
	}
	body, err := validate.RequireText(in.Body, "body", 1)
	if err != nil {
		return nil, err
	}

	created, err := s.store.CreateNote(ctx, model.Note{
		Title: title,
		Body:  body,
		Tags:  validate.OptionalText(in.Tags),
	})
	return created, translate(err)
}

// GetNote returns a note with every task linked to it, most recently
// updated first.
func (s *Service) GetNote(ctx context.Context, id int64) (*model.NoteDetail, error) {
	detail, err := s.store.GetNoteDetail(ctx, id)
	return detail, translate(err)
}

// ListNotes returns notes matching q, most recently updated first.
func (s *Service) ListNotes(ctx context.Context, q NoteQuery) ([]model.Note, error) {
	notes, err := s.store.ListNotes(ctx, store.NoteFilter{Query: q.Q, Tag: q.Tag})
	return notes, translate(err)
}

// UpdateNote merges the present fields of in into the stored note.
func (s *Service) UpdateNote(ctx context.Context, id int64, in NoteInput) (*model.Note, error) {
	p, err := in.patch()
	if err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateNote(ctx, id, func(n *model.Note) error {
		p.apply(n)
		return nil
	})
	return updated, translate(err)
}

// DeleteNote removes a note and its links. Linked tasks are kept.
func (s *Service) DeleteNote(ctx context.Context, id int64) error {
	return translate(s.store.DeleteNote(ctx, id))
}

// LinkTaskNote links a task and a note. Both must exist; relinking is a no-op.
func (s *Service) LinkTaskNote(ctx context.Context, taskID, noteID int64) error {
	return translate(s.store.LinkTaskNote(ctx, taskID, noteID))
}

// UnlinkTaskNote removes a link. Neither side needs to exist.
func (s *Service) UnlinkTaskNote(ctx context.Context, taskID, noteID int64) error {
	return translate(s.store.UnlinkTaskNote(ctx, taskID, noteID))
}
