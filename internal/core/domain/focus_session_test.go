package domain

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestNewFocusSessionRejectsNonPositiveDuration(t *testing.T) {
	RegisterTestingT(t)

	project := testProject()
	started := time.Now().UTC()

	for _, duration := range []int{0, -1, -1500} {
		_, err := NewFocusSession(project, started, duration)

		verr, ok := err.(*ValidationError)
		Expect(ok).To(BeTrue())
		Expect(verr.Entity).To(Equal("focus_session"))
	}
}

func TestFocusSessionEndTime(t *testing.T) {
	RegisterTestingT(t)

	started := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	session, err := NewFocusSession(testProject(), started, 1500)

	Expect(err).ToNot(HaveOccurred())
	Expect(session.EndTime()).To(Equal(started.Add(25 * time.Minute)))
}

func TestFocusSessionRequiresStart(t *testing.T) {
	RegisterTestingT(t)

	_, err := NewFocusSession(testProject(), time.Time{}, 1500)

	Expect(err).To(HaveOccurred())
}
