package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/Harshinireddy05/DayntTech/internal/common"
)

// Person is one row of a user's collection.
type Person struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DateOfBirth Date   `json:"dateOfBirth"`
}

// Age is derived on every call and is never stored.
func (p Person) Age(now time.Time) int {
	return p.DateOfBirth.YearsUntil(now)
}

// PersonInput is the raw form/API payload for creating or editing a person.
type PersonInput struct {
	Name        string
	DateOfBirth string
}

// Validate checks that both fields are present and the date is a real
// calendar date. No other rules apply.
func (in PersonInput) Validate() (string, Date, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", Date{}, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	raw := strings.TrimSpace(in.DateOfBirth)
	if raw == "" {
		return "", Date{}, fmt.Errorf("%w: date of birth is required", common.ErrorValidation)
	}
	dob, err := ParseDate(raw)
	if err != nil {
		return "", Date{}, fmt.Errorf("%w: date of birth must be a valid date", common.ErrorValidation)
	}
	return name, dob, nil
}
