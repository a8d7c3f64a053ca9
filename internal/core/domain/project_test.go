package domain

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

const ownerID = "0f8fad5b-d9cb-469f-a165-70867728950e"

func TestNewProjectDefaultsToActive(t *testing.T) {
	RegisterTestingT(t)

	project, err := NewProject(ownerID, "Deep Work", "#3fb27f")

	Expect(err).ToNot(HaveOccurred())
	Expect(project.Active).To(BeTrue())
	Expect(project.Identificator).ToNot(BeEmpty())
	Expect(project.BelongsTo(ownerID)).To(BeTrue())
}

func TestNewProjectIdentificatorsAreUnique(t *testing.T) {
	RegisterTestingT(t)

	a, _ := NewProject(ownerID, "Deep Work", "#3fb27f")
	b, _ := NewProject(ownerID, "Deep Work", "#3fb27f")

	Expect(a.Identificator).ToNot(Equal(b.Identificator))
}

func TestNewProjectValidation(t *testing.T) {
	RegisterTestingT(t)

	_, err := NewProject("not-a-uuid", "", strings.Repeat("c", 300))

	verr, ok := err.(*ValidationError)
	Expect(ok).To(BeTrue())
	Expect(verr.Entity).To(Equal("project"))
	Expect(len(verr.Errors)).To(Equal(3))
}

func TestRenameValidatesBeforeMutating(t *testing.T) {
	RegisterTestingT(t)

	project, _ := NewProject(ownerID, "Deep Work", "#3fb27f")

	err := project.Rename("", "#ffffff")

	Expect(err).To(HaveOccurred())
	Expect(project.Title).To(Equal("Deep Work"))
	Expect(project.Color).To(Equal("#3fb27f"))

	Expect(project.Rename("Deeper Work", "#ffffff")).To(Succeed())
	Expect(project.Title).To(Equal("Deeper Work"))
}
