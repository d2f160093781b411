package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studysync/studysync/internal/model"
)

// ErrNotFound is matched (via errors.Is) by every error returned for a
// read, update or delete addressed to a row that does not exist.
var ErrNotFound = errors.New("not found")

// NotFoundError identifies the missing row.
type NotFoundError struct {
	Entity string
	Key    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

// Is makes NotFoundError match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(entity string, key any) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// TimeRange bounds a timestamp column. Nil ends are unbounded; both ends
// are inclusive unless ExclusiveTo is set.
type TimeRange struct {
	From        *time.Time
	To          *time.Time
	ExclusiveTo bool
}

// IsZero reports whether the range is unbounded on both ends.
func (r TimeRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

// TaskOrder selects one of the fixed task orderings.
type TaskOrder int

const (
	// OrderPlanner sorts by status rank (todo, in_progress, done), then
	// due_at ascending with unset due dates last, then priority, then most
	// recently updated first.
	OrderPlanner TaskOrder = iota

	// OrderDueAsc sorts by due_at ascending.
	OrderDueAsc

	// OrderActive sorts by due_at ascending with unset due dates last,
	// then most recently updated first.
	OrderActive

	// OrderRecentlyUpdated sorts by updated_at descending.
	OrderRecentlyUpdated
)

// TaskFilter controls filtering, sorting, and limiting for task queries.
type TaskFilter struct {
	Status        *model.Status
	ExcludeStatus *model.Status
	Query         string // substring of title or description
	Due           TimeRange
	Order         TaskOrder
	Limit         int
}

// NoteFilter controls filtering for note queries.
type NoteFilter struct {
	Query string // substring of title or body
	Tag   string // substring of tags
}

// ReflectionFilter bounds reflections by day (inclusive, YYYY-MM-DD).
// Empty ends are unbounded.
type ReflectionFilter struct {
	From string
	To   string
}

// ReminderOrder selects the reminder ordering.
type ReminderOrder int

const (
	OrderFireAtAsc ReminderOrder = iota
	OrderFireAtDesc
)

// ReminderFilter controls filtering, sorting, and limiting for reminders.
type ReminderFilter struct {
	Status *model.ReminderStatus
	FireAt TimeRange
	Order  ReminderOrder
	Limit  int
}

// Store defines the persistence interface for tasks, subtasks, notes,
// task-note links, reflections and reminders.
//
// Update methods run mutate inside a transaction against the current row;
// if mutate returns an error nothing is written and that error is returned
// wrapped. updated_at is always assigned by the store.
type Store interface {
	Ping(ctx context.Context) error

	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	UpdateTask(ctx context.Context, id int64, mutate func(*model.Task) error) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// === Subtasks ===

	CreateSubtask(ctx context.Context, sub model.Subtask) (*model.Subtask, error)
	GetSubtask(ctx context.Context, id int64) (*model.Subtask, error)
	ListSubtasks(ctx context.Context, taskID int64) ([]model.Subtask, error)
	UpdateSubtask(ctx context.Context, id int64, mutate func(*model.Subtask) error) (*model.Subtask, error)
	DeleteSubtask(ctx context.Context, id int64) error

	// === Notes ===

	CreateNote(ctx context.Context, note model.Note) (*model.Note, error)
	GetNote(ctx context.Context, id int64) (*model.Note, error)
	ListNotes(ctx context.Context, filter NoteFilter) ([]model.Note, error)
	UpdateNote(ctx context.Context, id int64, mutate func(*model.Note) error) (*model.Note, error)
	DeleteNote(ctx context.Context, id int64) error

	// === Task <-> Note links ===

	LinkTaskNote(ctx context.Context, taskID, noteID int64) error
	UnlinkTaskNote(ctx context.Context, taskID, noteID int64) error
	ListNotesForTask(ctx context.Context, taskID int64) ([]model.Note, error)
	ListTasksForNote(ctx context.Context, noteID int64) ([]model.Task, error)

	// GetTaskDetail and GetNoteDetail read an entity with its relations
	// from a single snapshot.
	GetTaskDetail(ctx context.Context, id int64) (*model.TaskDetail, error)
	GetNoteDetail(ctx context.Context, id int64) (*model.NoteDetail, error)

	// === Reflections ===

	UpsertReflection(ctx context.Context, r model.Reflection) (*model.Reflection, error)
	GetReflection(ctx context.Context, day string) (*model.Reflection, error)
	ListReflections(ctx context.Context, filter ReflectionFilter) ([]model.Reflection, error)

	// === Reminders ===

	CreateReminder(ctx context.Context, r model.Reminder) (*model.Reminder, error)
	GetReminder(ctx context.Context, id int64) (*model.Reminder, error)
	ListReminders(ctx context.Context, filter ReminderFilter) ([]model.Reminder, error)
	UpdateReminder(ctx context.Context, id int64, mutate func(*model.Reminder) error) (*model.Reminder, error)
}
