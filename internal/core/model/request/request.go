package request

import "time"

type Register struct {
	Username string `json:"username" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Project struct {
	Title string `json:"title" validate:"required,max=255"`
	Color string `json:"color" validate:"required,max=255"`
}

type ProjectUpdate struct {
	Title  string `json:"title" validate:"required,max=255"`
	Color  string `json:"color" validate:"required,max=255"`
	Active *bool  `json:"active" validate:"required"`
}

type Task struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=255"`
}

type TaskStatusChange struct {
	Status string `json:"status" validate:"required"`
}

type ToDo struct {
	Title string `json:"title" validate:"required"`
}

type ToDoStateChange struct {
	Status string `json:"status" validate:"required"`
}

type FocusSessionSave struct {
	ProjectID       string    `json:"project_id" validate:"required,uuid"`
	StartedAt       time.Time `json:"started_at" validate:"required"`
	DurationSeconds int       `json:"duration_seconds" validate:"required,gt=0"`
}
