package factory

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestDefaultsApplyWithoutOverrides(t *testing.T) {
	RegisterTestingT(t)

	params := NewRegister()

	Expect(params.Username).To(HavePrefix("user_"))
	Expect(params.Email).To(ContainSubstring("@example.com"))
	Expect(params.Password).To(Equal("password1"))
}

// Caller overrides must win over the generated defaults.
func TestOverridesReplaceDefaults(t *testing.T) {
	RegisterTestingT(t)

	project := NewProject(map[string]any{"Title": "Thesis"})

	Expect(project.Title).To(Equal("Thesis"))
	Expect(project.Color).To(Equal("#3fb27f"))

	params := NewRegister(map[string]any{"Email": "fixed@example.com"})

	Expect(params.Email).To(Equal("fixed@example.com"))
	Expect(params.Password).To(Equal("password1"))

	task := NewTask(map[string]any{"Description": "first draft"})

	Expect(task.Title).To(HavePrefix("Task "))
	Expect(task.Description).To(Equal("first draft"))
}
