package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/store"
	"github.com/studysync/studysync/tests/testutil"
)

func TestCreateSubtask_RequiresParent(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.CreateSubtask(context.Background(), model.Subtask{TaskID: 7, Title: "Orphan"})
	require.ErrorIs(t, err, store.ErrNotFound)

	var nf *store.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "task", nf.Entity)
}

func TestListSubtasks_SortOrderThenID(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	task := mustCreateTask(t, s, model.Task{Title: "Thesis"})

	for _, sub := range []model.Subtask{
		{TaskID: task.ID, Title: "c", SortOrder: 2},
		{TaskID: task.ID, Title: "a", SortOrder: 0},
		{TaskID: task.ID, Title: "b1", SortOrder: 1},
		{TaskID: task.ID, Title: "b2", SortOrder: 1},
	} {
		_, err := s.CreateSubtask(ctx, sub)
		require.NoError(t, err)
	}

	subs, err := s.ListSubtasks(ctx, task.ID)
	require.NoError(t, err)

	got := make([]string, len(subs))
	for i, sub := range subs {
		got[i] = sub.Title
		assert.Equal(t, model.StatusTodo, sub.Status)
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, got)
}

func TestUpdateAndDeleteSubtask(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	task := mustCreateTask(t, s, model.Task{Title: "Thesis"})

	sub, err := s.CreateSubtask(ctx, model.Subtask{TaskID: task.ID, Title: "Outline"})
	require.NoError(t, err)

	updated, err := s.UpdateSubtask(ctx, sub.ID, func(st *model.Subtask) error {
		st.Status = model.StatusDone
		st.SortOrder = 5
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Outline", updated.Title)
	assert.Equal(t, model.StatusDone, updated.Status)
	assert.Equal(t, 5, updated.SortOrder)
	assert.Equal(t, task.ID, updated.TaskID)

	require.NoError(t, s.DeleteSubtask(ctx, sub.ID))
	require.ErrorIs(t, s.DeleteSubtask(ctx, sub.ID), store.ErrNotFound)
}
