package model

import "time"

// Status is the workflow state shared by tasks and subtasks.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid task/subtask status in planner rank order.
var Statuses = []string{
	string(StatusTodo),
	string(StatusInProgress),
	string(StatusDone),
}

// Priority bounds (lower number = higher priority).
const (
	PriorityHigh    = 1
	PriorityMedium  = 2
	PriorityLow     = 3
	DefaultPriority = PriorityMedium
)

// Task is a unit of study work tracked by the planner.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueAt       *time.Time `json:"due_at"`
	Priority    int        `json:"priority"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Subtask is a step within a task.
// Its lifecycle is bound to the parent task (CASCADE delete).
type Subtask struct {
	ID        int64  `json:"id"`
	TaskID    int64  `json:"task_id"`
	Title     string `json:"title"`
	Status    Status `json:"status"`
	SortOrder int    `json:"sort_order"`
}

// TaskDetail is a task together with its subtasks and linked notes.
type TaskDetail struct {
	Task     Task      `json:"item"`
	Subtasks []Subtask `json:"subtasks"`
	Notes    []Note    `json:"notes"`
}
