package catalog

import (
	"net/mail"
	"strings"
)

// NormalizeEmail is the form admin emails are stored and matched in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type AdminInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Normalize validates the input and returns it with a trimmed name and a
// normalised email.
func (in AdminInput) Normalize() (AdminInput, error) {
	out := AdminInput{
		Name:  strings.TrimSpace(in.Name),
		Email: NormalizeEmail(in.Email),
	}
	if out.Email == "" {
		return out, invalid("Email is required.")
	}
	addr, err := mail.ParseAddress(out.Email)
	if err != nil || addr.Address != out.Email {
		return out, invalid("Please enter a valid email address.")
	}
	return out, nil
}

// CanDeleteAdmin refuses to remove the last remaining admin.
func CanDeleteAdmin(remaining int64) error {
	if remaining <= 1 {
		return conflict("At least one admin must remain.")
	}
	return nil
}
