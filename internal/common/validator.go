package common

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	// EmailRX is the basic local@domain.tld shape every stored email must match.
	EmailRX = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type ValidationError struct {
	Errors map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

// Summary joins the field messages into a single sentence ordered by field name,
// e.g. "rating must be between 1 and 5".
func (e ValidationError) Summary() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+" "+e.Errors[field])
	}

	return strings.Join(parts, "; ")
}

type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) CheckStringLength(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// MaxLength reports whether s holds at most max characters.
func (v *Validator) MaxLength(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

func (v *Validator) Matches(s string, rx *regexp.Regexp) bool {
	return rx.MatchString(s)
}

func (v *Validator) Between(n, min, max int) bool {
	return n >= min && n <= max
}

func (v *Validator) PermittedValue(value string, permitted ...string) bool {
	return slices.Contains(permitted, value)
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}

// ValidateEmail checks an already normalised email address.
func ValidateEmail(v *Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(v.MaxLength(email, 255), "email", "must not be more than 255 characters long")
	v.Check(email == "" || v.Matches(email, EmailRX), "email", "must be a valid email address")
}

// NormalizeEmail trims and lowercases an email address before validation and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
