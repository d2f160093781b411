package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/seed"
	"github.com/studysync/studysync/internal/service"
	"github.com/studysync/studysync/tests/testutil"
)

var now = time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)

func TestDefaultFixtures(t *testing.T) {
	fx, err := seed.Default()
	require.NoError(t, err)

	require.Len(t, fx.Tasks, 2)
	assert.Equal(t, "report", fx.Tasks[0].Key)
	require.NotNil(t, fx.Tasks[0].DueIn)
	assert.Equal(t, 120*time.Hour, *fx.Tasks[0].DueIn)
	assert.Len(t, fx.Tasks[0].Subtasks, 5)
	assert.Equal(t, time.Hour, fx.Reminders[0].FireIn)
}

func TestApply(t *testing.T) {
	st := testutil.NewTestStore(t)
	svc := service.New(st, service.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	fx, err := seed.Default()
	require.NoError(t, err)

	sum, err := seed.Apply(ctx, svc, fx)
	require.NoError(t, err)
	assert.Equal(t, seed.Summary{Tasks: 2, Subtasks: 8, Notes: 2, Links: 2, Reflections: 1, Reminders: 2}, sum)

	tasks, err := svc.ListTasks(ctx, service.TaskQuery{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Exam prep: Distributed Systems", tasks[0].Title, "todo ranks before in_progress")
	assert.Equal(t, model.StatusInProgress, tasks[1].Status)
	assert.Equal(t, now.Add(120*time.Hour), *tasks[1].DueAt)

	detail, err := svc.GetTask(ctx, tasks[1].ID)
	require.NoError(t, err)
	require.Len(t, detail.Subtasks, 5)
	assert.Equal(t, "Create outline and word budget", detail.Subtasks[0].Title)
	require.Len(t, detail.Notes, 1)
	assert.Equal(t, "Cost analysis: key assumptions", detail.Notes[0].Title)

	refl, err := svc.GetReflection(ctx, "2025-02-14")
	require.NoError(t, err)
	assert.Equal(t, 4, refl.Mood)

	due, err := svc.DueReminders(ctx, now.Add(90*time.Minute))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "COMP1680 Assignment: Cost analysis report", *due[0].TaskTitle)
}

func TestApply_UnknownTaskKey(t *testing.T) {
	svc := service.New(testutil.NewTestStore(t))

	fx, err := seed.Parse([]byte(`
notes:
  - title: Orphan
    body: text
    tasks: [missing]
`))
	require.NoError(t, err)

	_, err = seed.Apply(context.Background(), svc, fx)
	require.ErrorContains(t, err, `unknown task key "missing"`)
}

func TestApply_InvalidFixtureIsRejected(t *testing.T) {
	svc := service.New(testutil.NewTestStore(t))

	fx, err := seed.Parse([]byte(`
tasks:
  - title: Bad
    priority: 9
`))
	require.NoError(t, err)

	_, err = seed.Apply(context.Background(), svc, fx)
	require.ErrorContains(t, err, "Invalid priority")
}
