package store

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/studysync/studysync/internal/model"
)

// LinkTaskNote links a task and a note. Both must exist; linking an
// already-linked pair is a no-op.
func (s *SQLiteStore) LinkTaskNote(ctx context.Context, taskID, noteID int64) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := getTask(ctx, tx, taskID); err != nil {
			return err
		}
		if _, err := getNote(ctx, tx, noteID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO task_notes (task_id, note_id) VALUES (?, ?)",
			taskID, noteID,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("linking task %d to note %d: %w", taskID, noteID, err)
	}
	return nil
}

// UnlinkTaskNote removes a link. Removing an absent link is a no-op.
func (s *SQLiteStore) UnlinkTaskNote(ctx context.Context, taskID, noteID int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM task_notes WHERE task_id = ? AND note_id = ?",
		taskID, noteID,
	)
	if err != nil {
		return fmt.Errorf("unlinking task %d from note %d: %w", taskID, noteID, err)
	}
	return nil
}

// ListNotesForTask retrieves all notes linked to a task, most recently
// updated first.
func (s *SQLiteStore) ListNotesForTask(ctx context.Context, taskID int64) ([]model.Note, error) {
	return listNotesForTask(ctx, s.db, taskID)
}

func listNotesForTask(ctx context.Context, q querier, taskID int64) ([]model.Note, error) {
	b := squirrel.Select(noteColumns("n.")...).
		From("notes n").
		InnerJoin("task_notes tn ON tn.note_id = n.id").
		Where(squirrel.Eq{"tn.task_id": taskID}).
		OrderBy("n.updated_at DESC", "n.id DESC")

	var rows []noteRow
	if err := selectAll(ctx, q, &rows, b); err != nil {
		return nil, fmt.Errorf("querying notes for task %d: %w", taskID, err)
	}
	return noteRowsToModels(rows)
}

// ListTasksForNote retrieves all tasks linked to a note, most recently
// updated first.
func (s *SQLiteStore) ListTasksForNote(ctx context.Context, noteID int64) ([]model.Task, error) {
	return listTasksForNote(ctx, s.db, noteID)
}

func listTasksForNote(ctx context.Context, q querier, noteID int64) ([]model.Task, error) {
	b := squirrel.Select(taskColumns("t.")...).
		From("tasks t").
		InnerJoin("task_notes tn ON tn.task_id = t.id").
		Where(squirrel.Eq{"tn.note_id": noteID}).
		OrderBy(taskOrderBy(OrderRecentlyUpdated, "t.")...)

	var rows []taskRow
	if err := selectAll(ctx, q, &rows, b); err != nil {
		return nil, fmt.Errorf("querying tasks for note %d: %w", noteID, err)
	}
	return taskRowsToModels(rows)
}

// GetTaskDetail reads a task, its subtasks and its linked notes in one
// transaction, so the three parts are mutually consistent.
func (s *SQLiteStore) GetTaskDetail(ctx context.Context, id int64) (*model.TaskDetail, error) {
	var detail *model.TaskDetail
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		task, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}
		subtasks, err := listSubtasks(ctx, tx, id)
		if err != nil {
			return err
		}
		notes, err := listNotesForTask(ctx, tx, id)
		if err != nil {
			return err
		}
		detail = &model.TaskDetail{Task: *task, Subtasks: subtasks, Notes: notes}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("getting task detail %d: %w", id, err)
	}
	return detail, nil
}

// GetNoteDetail reads a note and its linked tasks in one transaction.
func (s *SQLiteStore) GetNoteDetail(ctx context.Context, id int64) (*model.NoteDetail, error) {
	var detail *model.NoteDetail
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		note, err := getNote(ctx, tx, id)
		if err != nil {
			return err
		}
		tasks, err := listTasksForNote(ctx, tx, id)
		if err != nil {
			return err
		}
		detail = &model.NoteDetail{Note: *note, Tasks: tasks}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("getting note detail %d: %w", id, err)
	}
	return detail, nil
}
