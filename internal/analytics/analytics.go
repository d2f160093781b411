// Package analytics computes the read-only dashboard views: task due-window
// buckets and rolling reflection averages. Everything is recomputed from
// the store on each call.
package analytics

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/studysync/studysync/internal/apperr"
	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/store"
)

const (
	// DueSoonWindow is how far ahead of now a task counts as due soon.
	DueSoonWindow = 48 * time.Hour

	// InProgressLimit caps the in-progress bucket.
	InProgressLimit = 20
)

// SummaryWindows lists the supported reflection summary windows in days.
var SummaryWindows = []int{7, 30}

// Dashboard holds the task buckets at a given instant. Overdue and DueSoon
// never overlap; InProgress may overlap with either.
type Dashboard struct {
	Now        time.Time    `json:"now"`
	Overdue    []model.Task `json:"overdue"`
	DueSoon    []model.Task `json:"dueSoon"`
	InProgress []model.Task `json:"inProgress"`
}

// Engine computes aggregates from a store.
type Engine struct {
	store store.Store
	now   func() time.Time
}

// New creates an Engine backed by st. If now is nil, time.Now is used.
func New(st store.Store, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{store: st, now: now}
}

// Dashboard classifies unfinished tasks against now. A zero now means the
// engine clock.
func (e *Engine) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	if now.IsZero() {
		now = e.now()
	}
	now = now.UTC()
	soon := now.Add(DueSoonWindow)
	done := model.StatusDone
	inProgress := model.StatusInProgress

	overdue, err := e.store.ListTasks(ctx, store.TaskFilter{
		ExcludeStatus: &done,
		Due:           store.TimeRange{To: &now, ExclusiveTo: true},
		Order:         store.OrderDueAsc,
	})
	if err != nil {
		return nil, fmt.Errorf("listing overdue tasks: %w", err)
	}

	dueSoon, err := e.store.ListTasks(ctx, store.TaskFilter{
		ExcludeStatus: &done,
		Due:           store.TimeRange{From: &now, To: &soon},
		Order:         store.OrderDueAsc,
	})
	if err != nil {
		return nil, fmt.Errorf("listing tasks due soon: %w", err)
	}

	active, err := e.store.ListTasks(ctx, store.TaskFilter{
		Status: &inProgress,
		Order:  store.OrderActive,
		Limit:  InProgressLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing in-progress tasks: %w", err)
	}

	return &Dashboard{Now: now, Overdue: overdue, DueSoon: dueSoon, InProgress: active}, nil
}

// ReflectionSummary averages mood and productivity over the trailing
// window of days ending today (inclusive). Averages are nil when no
// reflection falls in the window.
func (e *Engine) ReflectionSummary(ctx context.Context, windowDays int) (*model.ReflectionSummary, error) {
	if !slices.Contains(SummaryWindows, windowDays) {
		return nil, apperr.Invalid("window", "Allowed: 7, 30")
	}

	// Exactly windowDays calendar days; rows dated after today are excluded.
	today := e.now().UTC()
	from := today.AddDate(0, 0, -(windowDays - 1)).Format(model.DayLayout)
	to := today.Format(model.DayLayout)

	rows, err := e.store.ListReflections(ctx, store.ReflectionFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("listing reflections %s..%s: %w", from, to, err)
	}

	summary := &model.ReflectionSummary{WindowDays: windowDays, Count: len(rows)}
	if len(rows) == 0 {
		return summary, nil
	}

	var mood, productivity int
	for _, r := range rows {
		mood += r.Mood
		productivity += r.Productivity
	}
	avgMood := float64(mood) / float64(len(rows))
	avgProductivity := float64(productivity) / float64(len(rows))
	summary.AvgMood = &avgMood
	summary.AvgProductivity = &avgProductivity
	return summary, nil
}
