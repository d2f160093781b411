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

// taskRow is the storage shape of a task.
type taskRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	DueAt       sql.NullString `db:"due_at"`
	Priority    int            `db:"priority"`
	Status      string         `db:"status"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   string         `db:"updated_at"`
}

func (r taskRow) toModel() (model.Task, error) {
	dueAt, err := decodeNullTime(r.DueAt)
	if err != nil {
		return model.Task{}, err
	}
	createdAt, err := decodeTime(r.CreatedAt)
	if err != nil {
		return model.Task{}, err
	}
	updatedAt, err := decodeTime(r.UpdatedAt)
	if err != nil {
		return model.Task{}, err
	}
	return model.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: stringPtr(r.Description),
		DueAt:       dueAt,
		Priority:    r.Priority,
		Status:      model.Status(r.Status),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func taskRowsToModels(rows []taskRow) ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(rows))
	for _, r := range rows {
		t, err := r.toModel()
		if err != nil {
			return nil, fmt.Errorf("decoding task %d: %w", r.ID, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// taskColumns returns the task column list qualified with prefix.
func taskColumns(prefix string) []string {
	cols := []string{"id", "title", "description", "due_at", "priority", "status", "created_at", "updated_at"}
	for i, c := range cols {
		cols[i] = prefix + c
	}
	return cols
}

func taskSelect() squirrel.SelectBuilder {
	return squirrel.Select(taskColumns("")...).From("tasks")
}

// CreateTask inserts a new task. Status and priority default when unset.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	if task.Status == "" {
		task.Status = model.StatusTodo
	}
	if task.Priority == 0 {
		task.Priority = model.DefaultPriority
	}
	now := s.stamp()

	var created *model.Task
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (title, description, due_at, priority, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			task.Title, nullString(task.Description), encodeNullTime(task.DueAt),
			task.Priority, string(task.Status), now, now,
		)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		created, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return created, nil
}

// GetTask retrieves a single task by ID.
func (s *SQLiteStore) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	task, err := getTask(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	return task, nil
}

func getTask(ctx context.Context, q querier, id int64) (*model.Task, error) {
	var row taskRow
	err := selectOne(ctx, q, &row, taskSelect().Where(squirrel.Eq{"id": id}))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("task", id)
	}
	if err != nil {
		return nil, err
	}
	task, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks retrieves tasks matching the filter in the requested order.
func (s *SQLiteStore) ListTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	w := &where{}
	if filter.Status != nil {
		w.eq("status", string(*filter.Status))
	}
	if filter.ExcludeStatus != nil {
		w.notEq("status", string(*filter.ExcludeStatus))
	}
	w.contains(filter.Query, "title", "description")
	w.timeRange("due_at", filter.Due)

	b := w.apply(taskSelect()).OrderBy(taskOrderBy(filter.Order, "")...)
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}

	var rows []taskRow
	if err := selectAll(ctx, s.db, &rows, b); err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	return taskRowsToModels(rows)
}

// UpdateTask applies mutate to the stored task and persists the result.
// ID and created_at are preserved; updated_at is refreshed.
func (s *SQLiteStore) UpdateTask(
	ctx context.Context,
	id int64,
	mutate func(*model.Task) error,
) (*model.Task, error) {
	var updated *model.Task
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		task, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := mutate(task); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE tasks SET
				title = ?, description = ?, due_at = ?, priority = ?, status = ?, updated_at = ?
			WHERE id = ?`,
			task.Title, nullString(task.Description), encodeNullTime(task.DueAt),
			task.Priority, string(task.Status), s.stamp(),
			id,
		)
		if err != nil {
			return err
		}
		updated, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating task %d: %w", id, err)
	}
	return updated, nil
}

// DeleteTask removes a task by ID. Cascades to subtasks and task_notes.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	ok, err := execAffecting(ctx, s.db, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("deleting task %d: %w", id, notFound("task", id))
	}
	return nil
}
