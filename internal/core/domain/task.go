package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TaskTitleMaxLen       = 255
	TaskDescriptionMaxLen = 255
)

// Task is a unit of work inside a project. CompletedAt is only set while the
// status is "completed"; Complete and Reopen keep the two in sync.
type Task struct {
	ID            int
	Identificator string
	Title         string
	Description   string
	CreatedAt     time.Time
	CompletedAt   *time.Time
	Project       Project
	Status        TaskStatus
}

// NewTask builds a task inside project with the given default status.
func NewTask(project Project, status TaskStatus, title, description string) (Task, error) {
	task := Task{
		Identificator: uuid.New().String(),
		Title:         title,
		Description:   description,
		CreatedAt:     time.Now().UTC(),
		Project:       project,
		Status:        status,
	}

	if err := task.Validate(); err != nil {
		return Task{}, err
	}

	return task, nil
}

// Validate checks every field invariant and returns all violations at once.
func (t *Task) Validate() error {
	verr := &ValidationError{Entity: "task"}

	if t.Title == "" {
		verr.Errors = append(verr.Errors, FieldError{Field: "title", Message: "task title cannot be empty"})
	} else if len(t.Title) > TaskTitleMaxLen {
		verr.Errors = append(verr.Errors, FieldError{Field: "title", Message: fmt.Sprintf("task title must be at most %d characters", TaskTitleMaxLen)})
	}

	if len(t.Description) > TaskDescriptionMaxLen {
		verr.Errors = append(verr.Errors, FieldError{Field: "description", Message: fmt.Sprintf("task description must be at most %d characters", TaskDescriptionMaxLen)})
	}

	if t.Project.Identificator == "" {
		verr.Errors = append(verr.Errors, FieldError{Field: "project", Message: "task must belong to a project"})
	}

	if t.Status.Name == "" {
		verr.Errors = append(verr.Errors, FieldError{Field: "status", Message: "task must have a status"})
	}

	if len(verr.Errors) > 0 {
		return verr
	}

	return nil
}

// Complete moves the task to the completed status. The completion timestamp
// is set only if it is not already set, so completing twice keeps the
// original timestamp.
func (t *Task) Complete(completed TaskStatus) {
	t.Status = completed

	if t.CompletedAt == nil {
		now := time.Now().UTC()
		t.CompletedAt = &now
	}
}

// Reopen moves the task back to the default status and clears the completion
// timestamp.
func (t *Task) Reopen(inProgress TaskStatus) {
	t.Status = inProgress
	t.CompletedAt = nil
}

func (t *Task) IsCompleted() bool {
	return t.Status.Name == StatusCompleted
}

func (t *Task) Equal(other *Task) bool {
	if other == nil {
		return false
	}

	return t.Identificator == other.Identificator
}
