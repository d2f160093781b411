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

type subtaskRow struct {
	ID        int64  `db:"id"`
	TaskID    int64  `db:"task_id"`
	Title     string `db:"title"`
	Status    string `db:"status"`
	SortOrder int    `db:"sort_order"`
}

func (r subtaskRow) toModel() model.Subtask {
	return model.Subtask{
		ID:        r.ID,
		TaskID:    r.TaskID,
		Title:     r.Title,
		Status:    model.Status(r.Status),
		SortOrder: r.SortOrder,
	}
}

func subtaskSelect() squirrel.SelectBuilder {
	return squirrel.Select("id", "task_id", "title", "status", "sort_order").From("subtasks")
}

// CreateSubtask inserts a subtask under an existing task. A missing parent
// task is reported as not found.
func (s *SQLiteStore) CreateSubtask(ctx context.Context, sub model.Subtask) (*model.Subtask, error) {
	if sub.Status == "" {
		sub.Status = model.StatusTodo
	}

	var created *model.Subtask
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := getTask(ctx, tx, sub.TaskID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `
			INSERT INTO subtasks (task_id, title, status, sort_order)
			VALUES (?, ?, ?, ?)`,
			sub.TaskID, sub.Title, string(sub.Status), sub.SortOrder,
		)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		created, err = getSubtask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating subtask under task %d: %w", sub.TaskID, err)
	}
	return created, nil
}

// GetSubtask retrieves a single subtask by ID.
func (s *SQLiteStore) GetSubtask(ctx context.Context, id int64) (*model.Subtask, error) {
	sub, err := getSubtask(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("getting subtask %d: %w", id, err)
	}
	return sub, nil
}

func getSubtask(ctx context.Context, q querier, id int64) (*model.Subtask, error) {
	var row subtaskRow
	err := selectOne(ctx, q, &row, subtaskSelect().Where(squirrel.Eq{"id": id}))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("subtask", id)
	}
	if err != nil {
		return nil, err
	}
	sub := row.toModel()
	return &sub, nil
}

// ListSubtasks returns all subtasks of a task, ordered by sort_order then id.
func (s *SQLiteStore) ListSubtasks(ctx context.Context, taskID int64) ([]model.Subtask, error) {
	return listSubtasks(ctx, s.db, taskID)
}

func listSubtasks(ctx context.Context, q querier, taskID int64) ([]model.Subtask, error) {
	var rows []subtaskRow
	b := subtaskSelect().
		Where(squirrel.Eq{"task_id": taskID}).
		OrderBy("sort_order ASC", "id ASC")
	if err := selectAll(ctx, q, &rows, b); err != nil {
		return nil, fmt.Errorf("querying subtasks for task %d: %w", taskID, err)
	}

	subs := make([]model.Subtask, 0, len(rows))
	for _, r := range rows {
		subs = append(subs, r.toModel())
	}
	return subs, nil
}

// UpdateSubtask applies mutate to the stored subtask and persists the
// result. The parent task cannot be changed.
func (s *SQLiteStore) UpdateSubtask(
	ctx context.Context,
	id int64,
	mutate func(*model.Subtask) error,
) (*model.Subtask, error) {
	var updated *model.Subtask
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		sub, err := getSubtask(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := mutate(sub); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE subtasks SET title = ?, status = ?, sort_order = ? WHERE id = ?",
			sub.Title, string(sub.Status), sub.SortOrder, id,
		)
		if err != nil {
			return err
		}
		updated, err = getSubtask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating subtask %d: %w", id, err)
	}
	return updated, nil
}

// DeleteSubtask removes a subtask by ID.
func (s *SQLiteStore) DeleteSubtask(ctx context.Context, id int64) error {
	ok, err := execAffecting(ctx, s.db, "DELETE FROM subtasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting subtask %d: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("deleting subtask %d: %w", id, notFound("subtask", id))
	}
	return nil
}
