package domain

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestNewUserHashesCompliantPassword(t *testing.T) {
	RegisterTestingT(t)

	user, err := NewUser("alice", "alice@example.com", "secret123")

	Expect(err).ToNot(HaveOccurred())
	Expect(user.Identificator).ToNot(BeEmpty())
	Expect(user.Active).To(BeTrue())
	Expect(user.PasswordHash).ToNot(Equal("secret123"))
	Expect(user.VerifyPassword("secret123")).To(BeTrue())
	Expect(user.VerifyPassword("secret124")).To(BeFalse())
}

func TestNewUserRejectsWeakPasswords(t *testing.T) {
	RegisterTestingT(t)

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "a1b2c"},
		{"no digit", "abcdefgh"},
		{"no letter", "12345678"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			RegisterTestingT(t)

			_, err := NewUser("alice", "alice@example.com", tc.password)

			Expect(err).To(HaveOccurred())

			verr, ok := err.(*ValidationError)
			Expect(ok).To(BeTrue())
			Expect(verr.Entity).To(Equal("user"))
		})
	}
}

func TestNewUserRejectsMissingFields(t *testing.T) {
	RegisterTestingT(t)

	_, err := NewUser("", "not-an-email", "secret123")

	Expect(err).To(HaveOccurred())

	verr, ok := err.(*ValidationError)
	Expect(ok).To(BeTrue())
	Expect(len(verr.Errors)).To(BeNumerically(">=", 2))
}

func TestUserEqualByIdentificator(t *testing.T) {
	RegisterTestingT(t)

	a, _ := NewUser("alice", "alice@example.com", "secret123")
	b := a
	b.Username = "renamed"

	Expect(a.Equal(&b)).To(BeTrue())
}
