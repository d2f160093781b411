// Package service implements the StudySync domain operations on top of a
// store.Store. Every operation validates its raw input first, then performs
// its reads and writes in a single store call where atomicity matters.
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/studysync/studysync/internal/apperr"
	"github.com/studysync/studysync/internal/store"
)

// Service owns the domain rules for tasks, subtasks, notes, links,
// reflections and reminders.
type Service struct {
	store store.Store
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for "now" defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service backed by st.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{store: st, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's current instant in UTC.
func (s *Service) Now() time.Time {
	return s.now().UTC()
}

// translate surfaces the innermost caller-facing error. Store not-found
// errors become apperr.NotFoundError; validation and conflict errors raised
// inside store callbacks lose the store's wrapping.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var (
		v  *apperr.ValidationError
		c  *apperr.ConflictError
		nf *store.NotFoundError
	)
	switch {
	case errors.As(err, &v):
		return v
	case errors.As(err, &c):
		return c
	case errors.As(err, &nf):
		return apperr.NotFound(capitalize(nf.Entity), nf.Key)
	}
	return err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
