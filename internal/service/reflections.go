package service

import (
	"context"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/store"
	"github.com/studysync/studysync/internal/validate"
)

// ReflectionInput carries the raw fields of a daily reflection.
type ReflectionInput struct {
	Mood         any `json:"mood"`
	Productivity any `json:"productivity"`
	Text         any `json:"text"`
}

func (in *ReflectionInput) UnmarshalJSON(data []byte) error {
	return validate.DecodeObject(data, map[string]*any{
		"mood":         &in.Mood,
		"productivity": &in.Productivity,
		"text":         &in.Text,
	})
}

// UpsertReflection writes the reflection for day, replacing any existing one.
func (s *Service) UpsertReflection(ctx context.Context, day string, in ReflectionInput) (*model.Reflection, error) {
	day, err := validate.RequireDay(day, "day")
	if err != nil {
		return nil, err
	}
	score := validate.Between(model.MinScore, model.MaxScore)
	mood, err := validate.RequireInt(in.Mood, "mood", score)
	if err != nil {
		return nil, err
	}
	productivity, err := validate.RequireInt(in.Productivity, "productivity", score)
	if err != nil {
		return nil, err
	}

	stored, err := s.store.UpsertReflection(ctx, model.Reflection{
		Day:          day,
		Mood:         mood,
		Productivity: productivity,
		Text:         validate.OptionalText(in.Text),
	})
	return stored, translate(err)
}

// GetReflection returns the reflection for day.
func (s *Service) GetReflection(ctx context.Context, day string) (*model.Reflection, error) {
	day, err := validate.RequireDay(day, "day")
	if err != nil {
		return nil, err
	}
	r, err := s.store.GetReflection(ctx, day)
	return r, translate(err)
}

// ListReflections returns reflections with from <= day <= to, newest first.
// Malformed bounds are ignored rather than rejected.
func (s *Service) ListReflections(ctx context.Context, from, to string) ([]model.Reflection, error) {
	var filter store.ReflectionFilter
	if validate.IsDay(from) {
		filter.From = from
	}
	if validate.IsDay(to) {
		filter.To = to
	}
	items, err := s.store.ListReflections(ctx, filter)
	return items, translate(err)
}
