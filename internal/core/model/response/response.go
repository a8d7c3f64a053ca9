package response

import (
	"fmt"
	"time"

	"focustime/internal/core/domain"
)

// Envelope is the uniform response body: success/message always present,
// exactly one of data and error populated.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Error   *Error `json:"error"`
}

type Error struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Details string `json:"details"`
}

type User struct {
	Identificator string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
}

type Project struct {
	Identificator string `json:"id"`
	Title         string `json:"title"`
	Color         string `json:"color"`
	Active        bool   `json:"active"`
}

type Task struct {
	Identificator string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

type ToDo struct {
	Identificator string     `json:"id"`
	Title         string     `json:"title"`
	Status        string     `json:"status"`
	CreatedTime   time.Time  `json:"created_time"`
	CompletedTime *time.Time `json:"completed_time"`
}

type FocusSession struct {
	ID              int64     `json:"id"`
	ProjectID       string    `json:"project_id"`
	StartedAt       time.Time `json:"started_at"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds int       `json:"duration_seconds"`
}

func FromUser(user domain.User) User {
	return User{
		Identificator: user.Identificator,
		Username:      user.Username,
		Email:         user.Email,
	}
}

func FromProject(project domain.Project) Project {
	return Project{
		Identificator: project.Identificator,
		Title:         project.Title,
		Color:         project.Color,
		Active:        project.Active,
	}
}

func FromProjects(projects []domain.Project) []Project {
	out := make([]Project, 0, len(projects))
	for _, project := range projects {
		out = append(out, FromProject(project))
	}
	return out
}

func FromTask(task domain.Task) Task {
	return Task{
		Identificator: task.Identificator,
		Title:         task.Title,
		Description:   task.Description,
		Status:        task.Status.Name,
		CreatedAt:     task.CreatedAt,
		CompletedAt:   task.CompletedAt,
	}
}

func FromTasks(tasks []domain.Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, FromTask(task))
	}
	return out
}

func FromToDo(todo domain.ToDo) ToDo {
	return ToDo{
		Identificator: todo.Identificator,
		Title:         todo.Title,
		Status:        todo.Status,
		CreatedTime:   todo.CreatedTime,
		CompletedTime: todo.CompletedTime,
	}
}

func FromToDos(todos []domain.ToDo) []ToDo {
	out := make([]ToDo, 0, len(todos))
	for _, todo := range todos {
		out = append(out, FromToDo(todo))
	}
	return out
}

func FromFocusSession(session domain.FocusSession) FocusSession {
	return FocusSession{
		ID:              session.ID,
		ProjectID:       session.Project.Identificator,
		StartedAt:       session.StartedAt,
		EndTime:         session.EndTime(),
		DurationSeconds: session.DurationSeconds,
	}
}

func FromFocusSessions(sessions []domain.FocusSession) []FocusSession {
	out := make([]FocusSession, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, FromFocusSession(session))
	}
	return out
}

// ProjectDetail is the full project view with today's focus time precomputed
// for the detail page header.
type ProjectDetail struct {
	Project                 Project        `json:"project"`
	Tasks                   []Task         `json:"tasks"`
	FocusSessions           []FocusSession `json:"focus_sessions"`
	TodayFocusTotalSeconds  int            `json:"today_focus_total_seconds"`
	TodayFocusTimeFormatted string         `json:"today_focus_time_formatted"`
}

func FromProjectDetail(detail domain.ProjectDetail) ProjectDetail {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	todaySeconds := 0
	for _, session := range detail.FocusSessions {
		if !session.StartedAt.UTC().Before(today) {
			todaySeconds += session.DurationSeconds
		}
	}

	return ProjectDetail{
		Project:                 FromProject(detail.Project),
		Tasks:                   FromTasks(detail.Tasks),
		FocusSessions:           FromFocusSessions(detail.FocusSessions),
		TodayFocusTotalSeconds:  todaySeconds,
		TodayFocusTimeFormatted: FormatHourMinuteSecond(todaySeconds),
	}
}

// ProjectSummary is the project-card rollup with display-ready durations.
type ProjectSummary struct {
	Identificator  string `json:"id"`
	Title          string `json:"title"`
	Color          string `json:"color"`
	TodayTotalTime string `json:"today_total_time"`
	WeekTotalTime  string `json:"week_total_time"`
	TodaySeconds   int    `json:"today_seconds"`
	WeekSeconds    int    `json:"week_seconds"`
	TotalSeconds   int    `json:"total_seconds"`
}

func FromSummaries(summaries []domain.ProjectFocusSummary) []ProjectSummary {
	out := make([]ProjectSummary, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, ProjectSummary{
			Identificator:  summary.ProjectIdentificator,
			Title:          summary.Title,
			Color:          summary.Color,
			TodayTotalTime: FormatHourMinute(summary.TodaySeconds),
			WeekTotalTime:  FormatHourMinute(summary.WeekSeconds),
			TodaySeconds:   summary.TodaySeconds,
			WeekSeconds:    summary.WeekSeconds,
			TotalSeconds:   summary.TotalSeconds,
		})
	}
	return out
}

// FormatHourMinute renders seconds as "02h05m".
func FormatHourMinute(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600 + 30) / 60
	if minutes == 60 {
		hours++
		minutes = 0
	}
	return fmt.Sprintf("%02dh%02dm", hours, minutes)
}

// FormatHourMinuteSecond renders seconds as "02:05:09".
func FormatHourMinuteSecond(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := totalSeconds % 3600 / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
