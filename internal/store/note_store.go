package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/studysync/studysync/internal/model"
)

type noteRow struct {
	ID        int64          `db:"id"`
	Title     string         `db:"title"`
	Body      string         `db:"body"`
	Tags      sql.NullString `db:"tags"`
	CreatedAt string         `db:"created_at"`
	UpdatedAt string         `db:"updated_at"`
}

func (r noteRow) toModel() (model.Note, error) {
	createdAt, err := decodeTime(r.CreatedAt)
	if err != nil {
		return model.Note{}, err
	}
	updatedAt, err := decodeTime(r.UpdatedAt)
	if err != nil {
		return model.Note{}, err
	}
	return model.Note{
		ID:        r.ID,
		Title:     r.Title,
		Body:      r.Body,
		Tags:      stringPtr(r.Tags),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func noteRowsToModels(rows []noteRow) ([]model.Note, error) {
	notes := make([]model.Note, 0, len(rows))
	for _, r := range rows {
		n, err := r.toModel()
		if err != nil {
			return nil, fmt.Errorf("decoding note %d: %w", r.ID, err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func noteColumns(prefix string) []string {
	cols := []string{"id", "title", "body", "tags", "created_at", "updated_at"}
	for i, c := range cols {
		cols[i] = prefix + c
	}
	return cols
}

func noteSelect() squirrel.SelectBuilder {
	return squirrel.Select(noteColumns("")...).From("notes")
}

// CreateNote inserts a new note.
func (s *SQLiteStore) CreateNote(ctx context.Context, note model.Note) (*model.Note, error) {
	now := s.stamp()

	var created *model.Note
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO notes (title, body, tags, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			note.Title, note.Body, nullString(note.Tags), now, now,
		)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		created, err = getNote(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}
	return created, nil
}

// GetNote retrieves a single note by ID.
func (s *SQLiteStore) GetNote(ctx context.Context, id int64) (*model.Note, error) {
	note, err := getNote(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("getting note %d: %w", id, err)
	}
	return note, nil
}

func getNote(ctx context.Context, q querier, id int64) (*model.Note, error) {
	var row noteRow
	err := selectOne(ctx, q, &row, noteSelect().Where(squirrel.Eq{"id": id}))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("note", id)
	}
	if err != nil {
		return nil, err
	}
	note, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListNotes retrieves notes matching the filter, most recently updated first.
func (s *SQLiteStore) ListNotes(ctx context.Context, filter NoteFilter) ([]model.Note, error) {
	w := &where{}
	w.contains(filter.Query, "title", "body")
	w.contains(filter.Tag, "tags")

	b := w.apply(noteSelect()).OrderBy("updated_at DESC", "id DESC")

	var rows []noteRow
	if err := selectAll(ctx, s.db, &rows, b); err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	return noteRowsToModels(rows)
}

// UpdateNote applies mutate to the stored note and persists the result.
func (s *SQLiteStore) UpdateNote(
	ctx context.Context,
	id int64,
	mutate func(*model.Note) error,
) (*model.Note, error) {
	var updated *model.Note
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		note, err := getNote(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := mutate(note); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE notes SET title = ?, body = ?, tags = ?, updated_at = ? WHERE id = ?",
			note.Title, note.Body, nullString(note.Tags), s.stamp(), id,
		)
		if err != nil {
			return err
		}
		updated, err = getNote(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating note %d: %w", id, err)
	}
	return updated, nil
}

// DeleteNote removes a note by ID. Cascades to task_notes; linked tasks stay.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id int64) error {
	ok, err := execAffecting(ctx, s.db, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting note %d: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("deleting note %d: %w", id, notFound("note", id))
	}
	return nil
}
