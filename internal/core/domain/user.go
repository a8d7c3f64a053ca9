package domain

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"focustime/internal/core/util"
)

const PasswordMinLen = 6

// User is an account holder. PasswordHash always holds a bcrypt hash; the
// plaintext password only exists inside NewUser, where the strength policy is
// enforced before hashing.
type User struct {
	ID            int
	Identificator string
	Username      string
	Email         string
	PasswordHash  string
	Active        bool
}

// NewUser validates the fields and the plaintext password policy, hashes the
// password and assigns a fresh identificator.
func NewUser(username, email, password string) (User, error) {
	user := User{
		Identificator: uuid.New().String(),
		Username:      username,
		Email:         email,
		Active:        true,
	}

	if err := user.validate(); err != nil {
		return User{}, err
	}

	if err := validatePassword(password); err != nil {
		return User{}, err
	}

	hash, err := util.HashPassword(password)

	if err != nil {
		return User{}, NewDatabaseError("hash password", err)
	}

	user.PasswordHash = hash

	return user, nil
}

func (u *User) validate() error {
	verr := &ValidationError{Entity: "user"}

	if u.Username == "" {
		verr.Errors = append(verr.Errors, FieldError{Field: "username", Message: "username cannot be empty"})
	}

	if u.Email == "" {
		verr.Errors = append(verr.Errors, FieldError{Field: "email", Message: "email cannot be empty"})
	} else if !strings.Contains(u.Email, "@") {
		verr.Errors = append(verr.Errors, FieldError{Field: "email", Message: "invalid email format"})
	}

	if len(verr.Errors) > 0 {
		return verr
	}

	return nil
}

func validatePassword(password string) error {
	verr := &ValidationError{Entity: "user"}

	if len(password) < PasswordMinLen {
		verr.Errors = append(verr.Errors, FieldError{Field: "password", Message: "password must be at least 6 characters long"})
	}

	hasLetter := false
	hasDigit := false

	for _, r := range password {
		if unicode.IsLetter(r) {
			hasLetter = true
		}

		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}

	if !hasLetter {
		verr.Errors = append(verr.Errors, FieldError{Field: "password", Message: "password must contain at least one letter"})
	}

	if !hasDigit {
		verr.Errors = append(verr.Errors, FieldError{Field: "password", Message: "password must contain at least one number"})
	}

	if len(verr.Errors) > 0 {
		return verr
	}

	return nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return util.ComparePassword(password, u.PasswordHash) == nil
}

// Equal compares users by identificator once assigned.
func (u *User) Equal(other *User) bool {
	if other == nil {
		return false
	}

	if u.Identificator != "" && other.Identificator != "" {
		return u.Identificator == other.Identificator
	}

	return u.Username == other.Username && u.Email == other.Email
}
