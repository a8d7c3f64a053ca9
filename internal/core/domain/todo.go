package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// To-do status vocabulary. Deletion is a soft status flag, not row removal:
// "deleted" to-dos stay in storage and are filtered out of listings.
const (
	ToDoStatusInProgress = "in progress"
	ToDoStatusCompleted  = "completed"
	ToDoStatusDeleted    = "deleted"
)

// ToDo is a small checklist item under a task.
type ToDo struct {
	ID                int
	Identificator     string
	Title             string
	TaskIdentificator string
	Status            string
	CreatedTime       time.Time
	CompletedTime     *time.Time
}

// NewToDo builds a to-do under taskIdentificator, starting in progress.
func NewToDo(taskIdentificator, title string) (ToDo, error) {
	todo := ToDo{
		Identificator:     uuid.New().String(),
		Title:             title,
		TaskIdentificator: taskIdentificator,
		Status:            ToDoStatusInProgress,
		CreatedTime:       time.Now().UTC(),
	}

	if err := todo.Validate(); err != nil {
		return ToDo{}, err
	}

	return todo, nil
}

func (t *ToDo) Validate() error {
	verr := &ValidationError{Entity: "to_do"}

	if t.Title == "" {
		verr.Errors = append(verr.Errors, FieldError{Field: "title", Message: "to-do title cannot be empty"})
	}

	if t.TaskIdentificator == "" {
		verr.Errors = append(verr.Errors, FieldError{Field: "task", Message: "to-do must belong to a task"})
	}

	switch t.Status {
	case ToDoStatusInProgress, ToDoStatusCompleted, ToDoStatusDeleted:
	default:
		verr.Errors = append(verr.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid status, choose one: %s, %s, %s", ToDoStatusInProgress, ToDoStatusCompleted, ToDoStatusDeleted),
		})
	}

	if len(verr.Errors) > 0 {
		return verr
	}

	return nil
}

// MarkAsCompleted stamps the completion time together with the status.
func (t *ToDo) MarkAsCompleted() {
	t.Status = ToDoStatusCompleted
	now := time.Now().UTC()
	t.CompletedTime = &now
}

// MarkAsInProgress reopens the to-do and clears the completion time.
func (t *ToDo) MarkAsInProgress() {
	t.Status = ToDoStatusInProgress
	t.CompletedTime = nil
}

// MarkAsDeleted soft-deletes the to-do.
func (t *ToDo) MarkAsDeleted() {
	t.Status = ToDoStatusDeleted
}

func (t *ToDo) IsDeleted() bool {
	return t.Status == ToDoStatusDeleted
}

func (t *ToDo) Equal(other *ToDo) bool {
	if other == nil {
		return false
	}

	return t.Identificator == other.Identificator
}
