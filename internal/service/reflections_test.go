package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/studysync/internal/service"
)

func TestUpsertReflection(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.UpsertReflection(ctx, "2025-08-30", service.ReflectionInput{Mood: 2, Productivity: "3", Text: "tired"})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Productivity)

	second, err := svc.UpsertReflection(ctx, "2025-08-30", service.ReflectionInput{Mood: 4, Productivity: 5})
	require.NoError(t, err)
	assert.Equal(t, 4, second.Mood)
	assert.Nil(t, second.Text)

	items, err := svc.ListReflections(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Mood)

	got, err := svc.GetReflection(ctx, "2025-08-30")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Productivity)
}

func TestUpsertReflection_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, tc := range []struct {
		name  string
		day   string
		in    service.ReflectionInput
		field string
	}{
		{"short year", "25-08-30", service.ReflectionInput{Mood: 3, Productivity: 3}, "day"},
		{"impossible date", "2025-02-30", service.ReflectionInput{Mood: 3, Productivity: 3}, "day"},
		{"mood too high", "2025-08-30", service.ReflectionInput{Mood: 6, Productivity: 3}, "mood"},
		{"mood missing", "2025-08-30", service.ReflectionInput{Productivity: 3}, "mood"},
		{"productivity zero", "2025-08-30", service.ReflectionInput{Mood: 3, Productivity: 0}, "productivity"},
		{"productivity fractional", "2025-08-30", service.ReflectionInput{Mood: 3, Productivity: 2.5}, "productivity"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpsertReflection(ctx, tc.day, tc.in)
			requireValidation(t, err, tc.field)
		})
	}
}

func TestListReflections_IgnoresMalformedBounds(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, day := range []string{"2025-08-01", "2025-08-15", "2025-08-31"} {
		_, err := svc.UpsertReflection(ctx, day, service.ReflectionInput{Mood: 3, Productivity: 3})
		require.NoError(t, err)
	}

	items, err := svc.ListReflections(ctx, "2025-08-10", "not-a-date")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2025-08-31", items[0].Day)
	assert.Equal(t, "2025-08-15", items[1].Day)

	items, err = svc.ListReflections(ctx, "2025/08/10", "2025-08-15")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
