// Package validation provides input validation utilities.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"devhub/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword checks password length bounds.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}

// ValidateRegistration validates a registration request and returns every
// field-level failure, not just the first one.
func ValidateRegistration(name, email, password string) []models.FieldError {
	var fields []models.FieldError
	if strings.TrimSpace(name) == "" {
		fields = append(fields, models.FieldError{Field: "name", Message: "Name is required"})
	}
	if err := ValidateEmail(email); err != nil {
		fields = append(fields, models.FieldError{Field: "email", Message: "Please include a valid email"})
	}
	if err := ValidatePassword(password); err != nil {
		fields = append(fields, models.FieldError{Field: "password", Message: err.Error()})
	}
	return fields
}

// SkillList accepts either a JSON array of strings or a single
// comma-separated string. Elements are trimmed, empties dropped, order kept.
type SkillList []string

// UnmarshalJSON implements the dual array/comma-string decoding.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*s = SplitSkills(raw)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("skills must be an array of strings or a comma-separated string")
	}
	*s = normalizeSkills(list)
	return nil
}

// SplitSkills splits a comma-separated skills string into trimmed elements.
func SplitSkills(raw string) []string {
	return normalizeSkills(strings.Split(raw, ","))
}

func normalizeSkills(list []string) []string {
	out := make([]string, 0, len(list))
	for _, skill := range list {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
