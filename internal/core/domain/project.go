package domain

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	ProjectTitleMaxLen = 255
	ProjectColorMaxLen = 255
)

// Project groups tasks and focus sessions under a single owner.
type Project struct {
	ID                int
	Identificator     string
	UserIdentificator string
	Title             string
	Color             string
	Active            bool
}

// ProjectDetail is the fully loaded project view: the project itself plus
// its tasks and focus sessions.
type ProjectDetail struct {
	Project       Project
	Tasks         []Task
	FocusSessions []FocusSession
}

// NewProject builds a project owned by userIdentificator with a fresh
// identificator and Active defaulting to true.
func NewProject(userIdentificator, title, color string) (Project, error) {
	project := Project{
		Identificator:     uuid.New().String(),
		UserIdentificator: userIdentificator,
		Title:             title,
		Color:             color,
		Active:            true,
	}

	if err := project.Validate(); err != nil {
		return Project{}, err
	}

	return project, nil
}

// Validate checks every field invariant and returns all violations at once.
func (p *Project) Validate() error {
	verr := &ValidationError{Entity: "project"}

	if p.UserIdentificator == "" {
		verr.Errors = append(verr.Errors, FieldError{Field: "user_identificator", Message: "user identificator cannot be empty"})
	} else if _, err := uuid.Parse(p.UserIdentificator); err != nil {
		verr.Errors = append(verr.Errors, FieldError{Field: "user_identificator", Message: "invalid user identificator format"})
	}

	if p.Title == "" {
		verr.Errors = append(verr.Errors, FieldError{Field: "title", Message: "project title cannot be empty"})
	} else if len(p.Title) > ProjectTitleMaxLen {
		verr.Errors = append(verr.Errors, FieldError{Field: "title", Message: fmt.Sprintf("project title must be at most %d characters", ProjectTitleMaxLen)})
	}

	if p.Color == "" {
		verr.Errors = append(verr.Errors, FieldError{Field: "color", Message: "project color cannot be empty"})
	} else if len(p.Color) > ProjectColorMaxLen {
		verr.Errors = append(verr.Errors, FieldError{Field: "color", Message: fmt.Sprintf("project color must be at most %d characters", ProjectColorMaxLen)})
	}

	if len(verr.Errors) > 0 {
		return verr
	}

	return nil
}

// Rename changes title and color, re-validating before the mutation sticks.
func (p *Project) Rename(title, color string) error {
	candidate := *p
	candidate.Title = title
	candidate.Color = color

	if err := candidate.Validate(); err != nil {
		return err
	}

	p.Title = title
	p.Color = color

	return nil
}

func (p *Project) BelongsTo(userIdentificator string) bool {
	return p.UserIdentificator == userIdentificator
}

func (p *Project) Equal(other *Project) bool {
	if other == nil {
		return false
	}

	return p.Identificator == other.Identificator
}
