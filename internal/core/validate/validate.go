// Package validate provides shared validation functions for user input.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxUsernameLength matches the backend's username column.
const MaxUsernameLength = 150

// Required returns a validator that rejects blank input for the named field.
func Required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// Username validates a username before it is sent to the backend.
func Username(name string) error {
	if err := Required("username")(name); err != nil {
		return err
	}
	if utf8.RuneCountInString(name) > MaxUsernameLength {
		return fmt.Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	return nil
}

// Password validates the minimum length the backend accepts at registration.
func Password(pw string) error {
	if utf8.RuneCountInString(pw) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// PostTitle reports whether a post title is present after trimming.
func PostTitle(title string) error {
	return Required("title")(title)
}
