package usecase

import (
	"fmt"
	"net/mail"
	"strings"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned when an input fails one or more field rules
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func ValidateCreateLeadInput(input CreateLeadInput) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.WebsiteURL) == "" {
		errors = append(errors, ValidationError{"website_url", "is required"})
	}

	if email := strings.TrimSpace(input.Email); email != "" && !isValidEmail(email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	return errors
}

func ValidateDiscoverInput(input DiscoverLeadsInput) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(input.Query) == "" {
		errors = append(errors, ValidationError{"query", "is required"})
	}

	if input.Limit < 0 {
		errors = append(errors, ValidationError{"limit", "must not be negative"})
	}

	return errors
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
