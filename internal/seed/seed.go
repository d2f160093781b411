// Package seed loads demo data described by a YAML fixture file.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/service"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the decoded fixture file.
type Fixtures struct {
	Tasks       []TaskFixture       `yaml:"tasks"`
	Notes       []NoteFixture       `yaml:"notes"`
	Reflections []ReflectionFixture `yaml:"reflections"`
	Reminders   []ReminderFixture   `yaml:"reminders"`
}

// TaskFixture describes a task and its subtasks. Key names the task for
// notes and reminders; DueIn is relative to the seed time.
type TaskFixture struct {
	Key         string           `yaml:"key"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	DueIn       *time.Duration   `yaml:"due_in"`
	Priority    int              `yaml:"priority"`
	Status      string           `yaml:"status"`
	Subtasks    []SubtaskFixture `yaml:"subtasks"`
}

// SubtaskFixture describes one step of a TaskFixture.
type SubtaskFixture struct {
	Title     string `yaml:"title"`
	Status    string `yaml:"status"`
	SortOrder int    `yaml:"sort_order"`
}

// NoteFixture describes a note and the task keys it links to.
type NoteFixture struct {
	Title string   `yaml:"title"`
	Body  string   `yaml:"body"`
	Tags  string   `yaml:"tags"`
	Tasks []string `yaml:"tasks"`
}

// ReflectionFixture describes the reflection written DaysAgo days before
// the seed day.
type ReflectionFixture struct {
	DaysAgo      int    `yaml:"days_ago"`
	Mood         int    `yaml:"mood"`
	Productivity int    `yaml:"productivity"`
	Text         string `yaml:"text"`
}

// ReminderFixture describes a reminder for the task keyed Task, or a
// standalone one when Task is empty. FireIn is relative to the seed time.
type ReminderFixture struct {
	Task    string        `yaml:"task"`
	FireIn  time.Duration `yaml:"fire_in"`
	Channel string        `yaml:"channel"`
}

// Summary counts what a seed run created.
type Summary struct {
	Tasks       int
	Subtasks    int
	Notes       int
	Links       int
	Reflections int
	Reminders   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d tasks, %d subtasks, %d notes, %d links, %d reflections, %d reminders",
		s.Tasks, s.Subtasks, s.Notes, s.Links, s.Reflections, s.Reminders)
}

// Parse decodes fixtures from YAML.
func Parse(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	return &fx, nil
}

// Default returns the built-in demo fixtures.
func Default() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

// Apply creates every fixture through the domain operations, so fixtures
// are validated like any other input. Times are relative to svc.Now().
func Apply(ctx context.Context, svc *service.Service, fx *Fixtures) (Summary, error) {
	var sum Summary
	now := svc.Now()
	taskIDs := make(map[string]int64, len(fx.Tasks))

	for _, tf := range fx.Tasks {
		in := service.TaskInput{Title: tf.Title}
		if tf.Description != "" {
			in.Description = tf.Description
		}
		if tf.DueIn != nil {
			in.DueAt = now.Add(*tf.DueIn)
		}
		if tf.Priority != 0 {
			in.Priority = tf.Priority
		}
		if tf.Status != "" {
			in.Status = tf.Status
		}
		task, err := svc.CreateTask(ctx, in)
		if err != nil {
			return sum, fmt.Errorf("seeding task %q: %w", tf.Title, err)
		}
		sum.Tasks++
		if tf.Key != "" {
			taskIDs[tf.Key] = task.ID
		}

		for _, sf := range tf.Subtasks {
			sub := service.SubtaskInput{Title: sf.Title, SortOrder: sf.SortOrder}
			if sf.Status != "" {
				sub.Status = sf.Status
			}
			if _, err := svc.CreateSubtask(ctx, task.ID, sub); err != nil {
				return sum, fmt.Errorf("seeding subtask %q: %w", sf.Title, err)
			}
			sum.Subtasks++
		}
	}

	for _, nf := range fx.Notes {
		note, err := svc.CreateNote(ctx, service.NoteInput{Title: nf.Title, Body: nf.Body, Tags: nf.Tags})
		if err != nil {
			return sum, fmt.Errorf("seeding note %q: %w", nf.Title, err)
		}
		sum.Notes++

		for _, key := range nf.Tasks {
			taskID, ok := taskIDs[key]
			if !ok {
				return sum, fmt.Errorf("note %q links unknown task key %q", nf.Title, key)
			}
			if err := svc.LinkTaskNote(ctx, taskID, note.ID); err != nil {
				return sum, fmt.Errorf("linking note %q to %q: %w", nf.Title, key, err)
			}
			sum.Links++
		}
	}

	for _, rf := range fx.Reflections {
		day := now.AddDate(0, 0, -rf.DaysAgo).Format(model.DayLayout)
		in := service.ReflectionInput{Mood: rf.Mood, Productivity: rf.Productivity}
		if rf.Text != "" {
			in.Text = rf.Text
		}
		if _, err := svc.UpsertReflection(ctx, day, in); err != nil {
			return sum, fmt.Errorf("seeding reflection %s: %w", day, err)
		}
		sum.Reflections++
	}

	for _, rf := range fx.Reminders {
		in := service.ReminderInput{FireAt: now.Add(rf.FireIn)}
		if rf.Task != "" {
			taskID, ok := taskIDs[rf.Task]
			if !ok {
				return sum, fmt.Errorf("reminder links unknown task key %q", rf.Task)
			}
			in.TaskID = taskID
		}
		if rf.Channel != "" {
			in.Channel = rf.Channel
		}
		if _, err := svc.CreateReminder(ctx, in); err != nil {
			return sum, fmt.Errorf("seeding reminder: %w", err)
		}
		sum.Reminders++
	}

	log.Printf("[seed] created %s", sum)
	return sum, nil
}
