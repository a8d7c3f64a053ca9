package domain

import "time"

// FocusSession is a timed interval spent concentrating on a project.
// Sessions are append-only: once saved they are never updated, and
// overlapping sessions on the same project are allowed (no overlap
// detection, by current behavior).
type FocusSession struct {
	ID              int64
	Project         Project
	StartedAt       time.Time
	DurationSeconds int
}

// NewFocusSession validates the session before it ever exists in memory.
// A duration of zero or less is rejected.
func NewFocusSession(project Project, startedAt time.Time, durationSeconds int) (FocusSession, error) {
	session := FocusSession{
		Project:         project,
		StartedAt:       startedAt,
		DurationSeconds: durationSeconds,
	}

	if err := session.Validate(); err != nil {
		return FocusSession{}, err
	}

	return session, nil
}

func (s *FocusSession) Validate() error {
	verr := &ValidationError{Entity: "focus_session"}

	if s.Project.Identificator == "" {
		verr.Errors = append(verr.Errors, FieldError{Field: "project", Message: "focus session must belong to a project"})
	}

	if s.StartedAt.IsZero() {
		verr.Errors = append(verr.Errors, FieldError{Field: "started_at", Message: "start time is required"})
	}

	if s.DurationSeconds <= 0 {
		verr.Errors = append(verr.Errors, FieldError{Field: "duration_seconds", Message: "duration must be greater than 0 seconds"})
	}

	if len(verr.Errors) > 0 {
		return verr
	}

	return nil
}

// EndTime is derived: start plus duration.
func (s *FocusSession) EndTime() time.Time {
	return s.StartedAt.Add(time.Duration(s.DurationSeconds) * time.Second)
}

func (s *FocusSession) Equal(other *FocusSession) bool {
	if other == nil {
		return false
	}

	if s.ID != 0 && other.ID != 0 {
		return s.ID == other.ID
	}

	return s.Project.Equal(&other.Project) &&
		s.StartedAt.Equal(other.StartedAt) &&
		s.DurationSeconds == other.DurationSeconds
}

// DailyFocusTotal is one day of aggregated focus time for a user, used by the
// last-365-days home chart.
type DailyFocusTotal struct {
	Day          string `json:"day"`
	TotalSeconds int    `json:"total_seconds"`
}

// ProjectFocusSummary is the per-project time rollup shown on project cards.
type ProjectFocusSummary struct {
	ProjectIdentificator string `json:"project_id"`
	Title                string `json:"title"`
	Color                string `json:"color"`
	TodaySeconds         int    `json:"today_seconds"`
	WeekSeconds          int    `json:"week_seconds"`
	TotalSeconds         int    `json:"total_seconds"`
}
