package domain

import (
	"testing"

	. "github.com/onsi/gomega"
)

const taskID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

func TestNewToDoStartsInProgress(t *testing.T) {
	RegisterTestingT(t)

	todo, err := NewToDo(taskID, "Outline section")

	Expect(err).ToNot(HaveOccurred())
	Expect(todo.Status).To(Equal(ToDoStatusInProgress))
	Expect(todo.CompletedTime).To(BeNil())
	Expect(todo.IsDeleted()).To(BeFalse())
}

func TestToDoTransitionsKeepCompletedTimeConsistent(t *testing.T) {
	RegisterTestingT(t)

	todo, _ := NewToDo(taskID, "Outline section")

	todo.MarkAsCompleted()
	Expect(todo.Status).To(Equal(ToDoStatusCompleted))
	Expect(todo.CompletedTime).ToNot(BeNil())

	todo.MarkAsInProgress()
	Expect(todo.Status).To(Equal(ToDoStatusInProgress))
	Expect(todo.CompletedTime).To(BeNil())
}

func TestToDoSoftDelete(t *testing.T) {
	RegisterTestingT(t)

	todo, _ := NewToDo(taskID, "Outline section")

	todo.MarkAsDeleted()

	Expect(todo.IsDeleted()).To(BeTrue())
	Expect(todo.Validate()).To(Succeed())
}

func TestNewToDoValidation(t *testing.T) {
	RegisterTestingT(t)

	_, err := NewToDo("", "")

	verr, ok := err.(*ValidationError)
	Expect(ok).To(BeTrue())
	Expect(len(verr.Errors)).To(Equal(2))
}
