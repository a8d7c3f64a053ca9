package factory

import (
	"fmt"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"focustime/internal/core/model/request"
)

// merge folds caller overrides into defaults. Build only honors a single
// overrides map, so the layers are flattened before the call.
func merge(defaults map[string]any, overrides []map[string]any) map[string]any {
	for _, layer := range overrides {
		for field, value := range layer {
			defaults[field] = value
		}
	}
	return defaults
}

// NewRegister fabricates a registration payload that satisfies the password
// policy; customData overrides individual fields.
func NewRegister(customData ...map[string]any) request.Register {
	instance := fab.New(request.Register{})

	suffix := uuid.New().String()[:8]

	defaults := map[string]any{
		"Username": "user_" + suffix,
		"Email":    fmt.Sprintf("user_%s@example.com", suffix),
		"Password": "password1",
	}

	return instance.Build(merge(defaults, customData))
}

func NewProject(customData ...map[string]any) request.Project {
	instance := fab.New(request.Project{})

	defaults := map[string]any{
		"Title": "Project " + uuid.New().String()[:8],
		"Color": "#3fb27f",
	}

	return instance.Build(merge(defaults, customData))
}

func NewTask(customData ...map[string]any) request.Task {
	instance := fab.New(request.Task{})

	defaults := map[string]any{
		"Title":       "Task " + uuid.New().String()[:8],
		"Description": "fabricated task",
	}

	return instance.Build(merge(defaults, customData))
}
