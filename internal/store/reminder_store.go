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

type reminderRow struct {
	ID        int64          `db:"id"`
	TaskID    sql.NullInt64  `db:"task_id"`
	FireAt    string         `db:"fire_at"`
	Channel   string         `db:"channel"`
	Status    string         `db:"status"`
	CreatedAt string         `db:"created_at"`
	TaskTitle sql.NullString `db:"task_title"`
}

func (r reminderRow) toModel() (model.Reminder, error) {
	fireAt, err := decodeTime(r.FireAt)
	if err != nil {
		return model.Reminder{}, err
	}
	createdAt, err := decodeTime(r.CreatedAt)
	if err != nil {
		return model.Reminder{}, err
	}
	rem := model.Reminder{
		ID:        r.ID,
		FireAt:    fireAt,
		Channel:   model.Channel(r.Channel),
		Status:    model.ReminderStatus(r.Status),
		CreatedAt: createdAt,
		TaskTitle: stringPtr(r.TaskTitle),
	}
	if r.TaskID.Valid {
		id := r.TaskID.Int64
		rem.TaskID = &id
	}
	return rem, nil
}

// reminderSelect joins the advisory task reference for its title. Reminders
// whose task is gone come back with a nil TaskTitle.
func reminderSelect() squirrel.SelectBuilder {
	return squirrel.Select(
		"r.id", "r.task_id", "r.fire_at", "r.channel", "r.status", "r.created_at",
		"t.title AS task_title",
	).
		From("reminders r").
		LeftJoin("tasks t ON t.id = r.task_id")
}

// CreateReminder inserts a reminder. Status defaults to scheduled and
// channel to in_app.
func (s *SQLiteStore) CreateReminder(ctx context.Context, r model.Reminder) (*model.Reminder, error) {
	if r.Status == "" {
		r.Status = model.ReminderScheduled
	}
	if r.Channel == "" {
		r.Channel = model.ChannelInApp
	}

	var taskID sql.NullInt64
	if r.TaskID != nil {
		taskID = sql.NullInt64{Int64: *r.TaskID, Valid: true}
	}

	var created *model.Reminder
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO reminders (task_id, fire_at, channel, status, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			taskID, encodeTime(r.FireAt), string(r.Channel), string(r.Status), s.stamp(),
		)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		created, err = getReminder(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating reminder: %w", err)
	}
	return created, nil
}

// GetReminder retrieves a single reminder by ID.
func (s *SQLiteStore) GetReminder(ctx context.Context, id int64) (*model.Reminder, error) {
	r, err := getReminder(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("getting reminder %d: %w", id, err)
	}
	return r, nil
}

func getReminder(ctx context.Context, q querier, id int64) (*model.Reminder, error) {
	var row reminderRow
	err := selectOne(ctx, q, &row, reminderSelect().Where(squirrel.Eq{"r.id": id}))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("reminder", id)
	}
	if err != nil {
		return nil, err
	}
	r, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReminders retrieves reminders matching the filter.
func (s *SQLiteStore) ListReminders(ctx context.Context, filter ReminderFilter) ([]model.Reminder, error) {
	w := &where{}
	if filter.Status != nil {
		w.eq("r.status", string(*filter.Status))
	}
	w.timeRange("r.fire_at", filter.FireAt)

	b := w.apply(reminderSelect())
	if filter.Order == OrderFireAtDesc {
		b = b.OrderBy("r.fire_at DESC", "r.id DESC")
	} else {
		b = b.OrderBy("r.fire_at ASC", "r.id ASC")
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}

	var rows []reminderRow
	if err := selectAll(ctx, s.db, &rows, b); err != nil {
		return nil, fmt.Errorf("querying reminders: %w", err)
	}

	reminders := make([]model.Reminder, 0, len(rows))
	for _, row := range rows {
		r, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("decoding reminder %d: %w", row.ID, err)
		}
		reminders = append(reminders, r)
	}
	return reminders, nil
}

// UpdateReminder applies mutate to the stored reminder and persists its
// status, channel and fire_at.
func (s *SQLiteStore) UpdateReminder(
	ctx context.Context,
	id int64,
	mutate func(*model.Reminder) error,
) (*model.Reminder, error) {
	var updated *model.Reminder
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		r, err := getReminder(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := mutate(r); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE reminders SET fire_at = ?, channel = ?, status = ? WHERE id = ?",
			encodeTime(r.FireAt), string(r.Channel), string(r.Status), id,
		)
		if err != nil {
			return err
		}
		updated, err = getReminder(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating reminder %d: %w", id, err)
	}
	return updated, nil
}
