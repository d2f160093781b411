package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/store"
	"github.com/studysync/studysync/tests/testutil"
)

var base = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newClockedStore(t *testing.T) (*store.SQLiteStore, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(base)
	return testutil.NewTestStore(t, store.WithClock(clock.Now)), clock
}

func mustCreateTask(t *testing.T, s store.Store, task model.Task) *model.Task {
	t.Helper()
	created, err := s.CreateTask(context.Background(), task)
	require.NoError(t, err)
	return created
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func TestCreateTask_DefaultsAndRoundTrip(t *testing.T) {
	s, _ := newClockedStore(t)
	ctx := context.Background()
	due := base.Add(24 * time.Hour)

	created := mustCreateTask(t, s, model.Task{
		Title:       "Read chapter 4",
		Description: testutil.Ptr("Linear algebra"),
		DueAt:       &due,
	})

	assert.Positive(t, created.ID)
	assert.Equal(t, model.StatusTodo, created.Status)
	assert.Equal(t, model.DefaultPriority, created.Priority)
	assert.Equal(t, base, created.CreatedAt)
	assert.Equal(t, base, created.UpdatedAt)

	got, err := s.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	require.NotNil(t, got.DueAt)
	assert.True(t, due.Equal(*got.DueAt))
	assert.Equal(t, "Linear algebra", *got.Description)
}

func TestGetTask_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetTask(context.Background(), 999)
	require.ErrorIs(t, err, store.ErrNotFound)

	var nf *store.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "task", nf.Entity)
	assert.Equal(t, int64(999), nf.Key)
}

func TestListTasks_PlannerOrder(t *testing.T) {
	s, clock := newClockedStore(t)
	at := func(h int) *time.Time {
		v := base.Add(time.Duration(h) * time.Hour)
		return &v
	}

	mustCreateTask(t, s, model.Task{Title: "done-1h", Status: model.StatusDone, DueAt: at(1)})
	mustCreateTask(t, s, model.Task{Title: "todo-3h", DueAt: at(3)})
	mustCreateTask(t, s, model.Task{Title: "todo-none"})
	mustCreateTask(t, s, model.Task{Title: "progress-2h", Status: model.StatusInProgress, DueAt: at(2)})
	mustCreateTask(t, s, model.Task{Title: "todo-1h-low", Priority: model.PriorityLow, DueAt: at(1)})
	mustCreateTask(t, s, model.Task{Title: "todo-1h-high", Priority: model.PriorityHigh, DueAt: at(1)})
	clock.Advance(time.Minute)
	mustCreateTask(t, s, model.Task{Title: "todo-none-newer"})

	tasks, err := s.ListTasks(context.Background(), store.TaskFilter{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"todo-1h-high",
		"todo-1h-low",
		"todo-3h",
		"todo-none-newer",
		"todo-none",
		"progress-2h",
		"done-1h",
	}, titles(tasks))
}

func TestListTasks_UndatedAfterLatestDate(t *testing.T) {
	s, _ := newClockedStore(t)
	latest := time.Date(9999, 12, 31, 12, 0, 0, 0, time.UTC)

	mustCreateTask(t, s, model.Task{Title: "undated"})
	mustCreateTask(t, s, model.Task{Title: "end of time", DueAt: &latest})

	for _, order := range []store.TaskOrder{store.OrderPlanner, store.OrderActive} {
		tasks, err := s.ListTasks(context.Background(), store.TaskFilter{Order: order})
		require.NoError(t, err)
		assert.Equal(t, []string{"end of time", "undated"}, titles(tasks))
	}
}

func TestListTasks_Filters(t *testing.T) {
	s, _ := newClockedStore(t)
	ctx := context.Background()
	at := func(h int) *time.Time {
		v := base.Add(time.Duration(h) * time.Hour)
		return &v
	}

	mustCreateTask(t, s, model.Task{Title: "Essay draft", Description: testutil.Ptr("History 50%"), DueAt: at(5)})
	mustCreateTask(t, s, model.Task{Title: "Lab report", Status: model.StatusDone, DueAt: at(10)})
	mustCreateTask(t, s, model.Task{Title: "essay outline"})

	t.Run("query is case-insensitive substring", func(t *testing.T) {
		tasks, err := s.ListTasks(ctx, store.TaskFilter{Query: "ESSAY"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Essay draft", "essay outline"}, titles(tasks))
	})

	t.Run("query wildcards are literal", func(t *testing.T) {
		tasks, err := s.ListTasks(ctx, store.TaskFilter{Query: "50%"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Essay draft"}, titles(tasks))

		tasks, err = s.ListTasks(ctx, store.TaskFilter{Query: "_"})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("status", func(t *testing.T) {
		done := model.StatusDone
		tasks, err := s.ListTasks(ctx, store.TaskFilter{Status: &done})
		require.NoError(t, err)
		assert.Equal(t, []string{"Lab report"}, titles(tasks))

		tasks, err = s.ListTasks(ctx, store.TaskFilter{ExcludeStatus: &done})
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("due range excludes unset due dates", func(t *testing.T) {
		tasks, err := s.ListTasks(ctx, store.TaskFilter{Due: store.TimeRange{To: at(5)}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Essay draft"}, titles(tasks))

		tasks, err = s.ListTasks(ctx, store.TaskFilter{Due: store.TimeRange{To: at(5), ExclusiveTo: true}})
		require.NoError(t, err)
		assert.Empty(t, tasks)

		tasks, err = s.ListTasks(ctx, store.TaskFilter{Due: store.TimeRange{From: at(6)}, Order: store.OrderDueAsc})
		require.NoError(t, err)
		assert.Equal(t, []string{"Lab report"}, titles(tasks))
	})

	t.Run("limit", func(t *testing.T) {
		tasks, err := s.ListTasks(ctx, store.TaskFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})
}

func TestUpdateTask_RefreshesUpdatedAt(t *testing.T) {
	s, clock := newClockedStore(t)
	ctx := context.Background()

	created := mustCreateTask(t, s, model.Task{Title: "Flashcards"})
	clock.Advance(time.Hour)

	updated, err := s.UpdateTask(ctx, created.ID, func(task *model.Task) error {
		task.Status = model.StatusInProgress
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "Flashcards", updated.Title)
	assert.Equal(t, model.StatusInProgress, updated.Status)
	assert.Equal(t, base, updated.CreatedAt)
	assert.Equal(t, base.Add(time.Hour), updated.UpdatedAt)
}

func TestUpdateTask_MutateErrorAbortsWrite(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	created := mustCreateTask(t, s, model.Task{Title: "Original"})

	_, err := s.UpdateTask(ctx, created.ID, func(task *model.Task) error {
		task.Title = "Changed"
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	got, err := s.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
}

func TestUpdateTask_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.UpdateTask(context.Background(), 42, func(*model.Task) error { return nil })
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteTask_Cascades(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	task := mustCreateTask(t, s, model.Task{Title: "Project"})
	sub, err := s.CreateSubtask(ctx, model.Subtask{TaskID: task.ID, Title: "Step 1"})
	require.NoError(t, err)
	note, err := s.CreateNote(ctx, model.Note{Title: "Idea", Body: "Use graphs"})
	require.NoError(t, err)
	require.NoError(t, s.LinkTaskNote(ctx, task.ID, note.ID))

	require.NoError(t, s.DeleteTask(ctx, task.ID))

	_, err = s.GetSubtask(ctx, sub.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	tasks, err := s.ListTasksForNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = s.GetNote(ctx, note.ID)
	require.NoError(t, err, "notes outlive unlinked tasks")

	err = s.DeleteTask(ctx, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
