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

func TestUpsertReflection_ReplacesByDay(t *testing.T) {
	s, clock := newClockedStore(t)
	ctx := context.Background()

	first, err := s.UpsertReflection(ctx, model.Reflection{Day: "2025-03-10", Mood: 2, Productivity: 3, Text: testutil.Ptr("meh")})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Mood)

	clock.Advance(time.Hour)
	second, err := s.UpsertReflection(ctx, model.Reflection{Day: "2025-03-10", Mood: 5, Productivity: 4})
	require.NoError(t, err)

	assert.Equal(t, 5, second.Mood)
	assert.Equal(t, 4, second.Productivity)
	assert.Nil(t, second.Text)
	assert.Equal(t, base, second.CreatedAt)
	assert.Equal(t, base.Add(time.Hour), second.UpdatedAt)

	all, err := s.ListReflections(ctx, store.ReflectionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 5, all[0].Mood)
}

func TestListReflections_RangeDescending(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, day := range []string{"2025-03-01", "2025-03-05", "2025-03-09", "2025-03-12"} {
		_, err := s.UpsertReflection(ctx, model.Reflection{Day: day, Mood: 3, Productivity: 3})
		require.NoError(t, err)
	}

	days := func(rs []model.Reflection) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.Day
		}
		return out
	}

	got, err := s.ListReflections(ctx, store.ReflectionFilter{From: "2025-03-05", To: "2025-03-09"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-09", "2025-03-05"}, days(got))

	got, err = s.ListReflections(ctx, store.ReflectionFilter{From: "2025-03-06"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-12", "2025-03-09"}, days(got))

	got, err = s.ListReflections(ctx, store.ReflectionFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-12", "2025-03-09", "2025-03-05", "2025-03-01"}, days(got))
}

func TestGetReflection_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetReflection(context.Background(), "2025-01-01")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpsertReflection_SchemaRejectsOutOfRange(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.UpsertReflection(context.Background(), model.Reflection{Day: "2025-03-10", Mood: 9, Productivity: 3})
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
