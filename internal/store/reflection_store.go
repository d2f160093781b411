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

type reflectionRow struct {
	Day          string         `db:"day"`
	Mood         int            `db:"mood"`
	Productivity int            `db:"productivity"`
	Text         sql.NullString `db:"text"`
	CreatedAt    string         `db:"created_at"`
	UpdatedAt    string         `db:"updated_at"`
}

func (r reflectionRow) toModel() (model.Reflection, error) {
	createdAt, err := decodeTime(r.CreatedAt)
	if err != nil {
		return model.Reflection{}, err
	}
	updatedAt, err := decodeTime(r.UpdatedAt)
	if err != nil {
		return model.Reflection{}, err
	}
	return model.Reflection{
		Day:          r.Day,
		Mood:         r.Mood,
		Productivity: r.Productivity,
		Text:         stringPtr(r.Text),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func reflectionSelect() squirrel.SelectBuilder {
	return squirrel.Select("day", "mood", "productivity", "text", "created_at", "updated_at").
		From("reflections")
}

// UpsertReflection inserts the reflection for its day, or replaces mood,
// productivity and text of the existing one. created_at survives a replace.
func (s *SQLiteStore) UpsertReflection(ctx context.Context, r model.Reflection) (*model.Reflection, error) {
	now := s.stamp()

	var stored *model.Reflection
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO reflections (day, mood, productivity, text, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(day) DO UPDATE SET
				mood = excluded.mood,
				productivity = excluded.productivity,
				text = excluded.text,
				updated_at = excluded.updated_at`,
			r.Day, r.Mood, r.Productivity, nullString(r.Text), now, now,
		)
		if err != nil {
			return err
		}
		stored, err = getReflection(ctx, tx, r.Day)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("upserting reflection %s: %w", r.Day, err)
	}
	return stored, nil
}

// GetReflection retrieves the reflection for a day.
func (s *SQLiteStore) GetReflection(ctx context.Context, day string) (*model.Reflection, error) {
	r, err := getReflection(ctx, s.db, day)
	if err != nil {
		return nil, fmt.Errorf("getting reflection %s: %w", day, err)
	}
	return r, nil
}

func getReflection(ctx context.Context, q querier, day string) (*model.Reflection, error) {
	var row reflectionRow
	err := selectOne(ctx, q, &row, reflectionSelect().Where(squirrel.Eq{"day": day}))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("reflection", day)
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

// ListReflections retrieves reflections within the day range, newest first.
func (s *SQLiteStore) ListReflections(ctx context.Context, filter ReflectionFilter) ([]model.Reflection, error) {
	w := &where{}
	var from, to *string
	if filter.From != "" {
		from = &filter.From
	}
	if filter.To != "" {
		to = &filter.To
	}
	w.between("day", from, to, false)

	var rows []reflectionRow
	if err := selectAll(ctx, s.db, &rows, w.apply(reflectionSelect()).OrderBy("day DESC")); err != nil {
		return nil, fmt.Errorf("querying reflections: %w", err)
	}

	reflections := make([]model.Reflection, 0, len(rows))
	for _, row := range rows {
		r, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("decoding reflection %s: %w", row.Day, err)
		}
		reflections = append(reflections, r)
	}
	return reflections, nil
}
