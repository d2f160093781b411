package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/studysync/internal/analytics"
	"github.com/studysync/studysync/internal/apperr"
	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/store"
	"github.com/studysync/studysync/tests/testutil"
)

var now = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

func seedTask(t *testing.T, s store.Store, title string, status model.Status, due *time.Time) {
	t.Helper()
	_, err := s.CreateTask(context.Background(), model.Task{Title: title, Status: status, DueAt: due})
	require.NoError(t, err)
}

func in(d time.Duration) *time.Time {
	v := now.Add(d)
	return &v
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func TestDashboard_Classification(t *testing.T) {
	s := testutil.NewTestStore(t)
	engine := analytics.New(s, func() time.Time { return now })

	seedTask(t, s, "due 1h ago", model.StatusTodo, in(-time.Hour))
	seedTask(t, s, "due 3h ago", model.StatusInProgress, in(-3*time.Hour))
	seedTask(t, s, "due now", model.StatusTodo, in(0))
	seedTask(t, s, "due in 47h", model.StatusTodo, in(47*time.Hour))
	seedTask(t, s, "due in 48h", model.StatusTodo, in(48*time.Hour))
	seedTask(t, s, "due in 49h", model.StatusTodo, in(49*time.Hour))
	seedTask(t, s, "done late", model.StatusDone, in(-time.Hour))
	seedTask(t, s, "no due", model.StatusInProgress, nil)

	dash, err := engine.Dashboard(context.Background(), time.Time{})
	require.NoError(t, err)

	assert.Equal(t, now, dash.Now)
	assert.Equal(t, []string{"due 3h ago", "due 1h ago"}, titles(dash.Overdue))
	assert.Equal(t, []string{"due now", "due in 47h", "due in 48h"}, titles(dash.DueSoon))
	assert.Equal(t, []string{"due 3h ago", "no due"}, titles(dash.InProgress))
}

func TestDashboard_ExplicitNow(t *testing.T) {
	s := testutil.NewTestStore(t)
	engine := analytics.New(s, func() time.Time { return now })

	seedTask(t, s, "tomorrow", model.StatusTodo, in(24*time.Hour))

	dash, err := engine.Dashboard(context.Background(), now.Add(25*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"tomorrow"}, titles(dash.Overdue))
	assert.Empty(t, dash.DueSoon)
}

func TestDashboard_InProgressCapped(t *testing.T) {
	s := testutil.NewTestStore(t)
	engine := analytics.New(s, func() time.Time { return now })

	for i := 0; i < analytics.InProgressLimit+5; i++ {
		seedTask(t, s, "busy", model.StatusInProgress, nil)
	}

	dash, err := engine.Dashboard(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Len(t, dash.InProgress, analytics.InProgressLimit)
}

func TestReflectionSummary(t *testing.T) {
	s := testutil.NewTestStore(t)
	engine := analytics.New(s, func() time.Time { return now })
	ctx := context.Background()

	t.Run("empty window has nil averages", func(t *testing.T) {
		summary, err := engine.ReflectionSummary(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 7, summary.WindowDays)
		assert.Zero(t, summary.Count)
		assert.Nil(t, summary.AvgMood)
		assert.Nil(t, summary.AvgProductivity)
	})

	for day, scores := range map[string][2]int{
		"2025-05-20": {5, 4}, // today
		"2025-05-14": {3, 2}, // first day of the 7-day window
		"2025-05-13": {1, 1}, // just outside it
		"2025-04-21": {2, 5}, // first day of the 30-day window
		"2025-04-20": {4, 4}, // outside both
		"2025-05-21": {1, 1}, // tomorrow
	} {
		_, err := s.UpsertReflection(ctx, model.Reflection{Day: day, Mood: scores[0], Productivity: scores[1]})
		require.NoError(t, err)
	}

	t.Run("seven days", func(t *testing.T) {
		summary, err := engine.ReflectionSummary(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Count)
		assert.InDelta(t, 4.0, *summary.AvgMood, 1e-9)
		assert.InDelta(t, 3.0, *summary.AvgProductivity, 1e-9)
	})

	t.Run("thirty days", func(t *testing.T) {
		summary, err := engine.ReflectionSummary(ctx, 30)
		require.NoError(t, err)
		assert.Equal(t, 4, summary.Count)
		assert.InDelta(t, 11.0/4, *summary.AvgMood, 1e-9)
		assert.InDelta(t, 12.0/4, *summary.AvgProductivity, 1e-9)
	})

	t.Run("unsupported window", func(t *testing.T) {
		_, err := engine.ReflectionSummary(ctx, 14)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})
}
