package domain

// Task status vocabulary. The rows are seeded by migration; the absence of a
// required row at runtime is a fatal configuration error, not a NotFound.
const (
	StatusInProgress = "in progress"
	StatusCompleted  = "completed"
)

// TaskStatus mirrors a row of the task_status table.
type TaskStatus struct {
	ID   int
	Name string
}

// ValidTargetStatus reports whether name is an acceptable target for a status
// transition. "deleted" is deliberately excluded: deletion goes through the
// dedicated to-do operation, never through a status change.
func ValidTargetStatus(name string) bool {
	return name == StatusInProgress || name == StatusCompleted
}

func (s TaskStatus) Equal(other TaskStatus) bool {
	return s.Name == other.Name
}
