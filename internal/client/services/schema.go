// Package services contains the application services of the jobtracker
// client: the generic resource CRUD used by every list view, its form
// schemas, authentication and the dashboard loader.
package services

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"time"
)

// ErrValidation is returned for a form that must not be sent.
var ErrValidation = errors.New("validation failed")

// FieldKind tells a view how to prompt for a field and how to check it.
type FieldKind int

const (
	KindText FieldKind = iota
	KindTextArea
	KindEmail
	KindPassword
	KindDate
	KindDateTime
	KindURL
	KindSelect
)

// Field describes one form field.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	// Options lists the allowed values of a KindSelect field.
	Options []string
}

// Form holds raw field values keyed by field name.
type Form map[string]string

// Get returns the trimmed value of name.
func (f Form) Get(name string) string {
	return strings.TrimSpace(f[name])
}

// Schema is the ordered field list of a resource form.
type Schema []Field

// Field returns the field called name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldError is a problem with one field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every invalid field of a form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate checks form against the schema: required fields are present and
// non-empty fields have the right shape. Values are otherwise the backend's
// business.
func (s Schema) Validate(form Form) error {
	var ve ValidationError
	for _, f := range s {
		v := form.Get(f.Name)
		if v == "" {
			if f.Required {
				ve.Fields = append(ve.Fields, FieldError{Field: f.Name, Message: "required"})
			}
			continue
		}
		if msg := checkKind(f, v); msg != "" {
			ve.Fields = append(ve.Fields, FieldError{Field: f.Name, Message: msg})
		}
	}
	if len(ve.Fields) > 0 {
		return &ve
	}
	return nil
}

func checkKind(f Field, v string) string {
	switch f.Kind {
	case KindEmail:
		if _, err := mail.ParseAddress(v); err != nil {
			return "not an email address"
		}
	case KindDate:
		if _, err := time.Parse(time.DateOnly, v); err != nil {
			return "expected YYYY-MM-DD"
		}
	case KindDateTime:
		if _, err := time.Parse("2006-01-02T15:04", v); err != nil {
			if _, err := time.Parse(time.DateOnly, v); err != nil {
				return "expected YYYY-MM-DDTHH:MM"
			}
		}
	case KindURL:
		u, err := url.Parse(v)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "not a URL"
		}
	case KindSelect:
		if len(f.Options) > 0 && !slices.Contains(f.Options, v) {
			return "one of " + strings.Join(f.Options, ", ")
		}
	}
	return ""
}

// Body is the request body for form: every schema field, trimmed, empty
// ones included. Keys not in the schema are dropped.
func (s Schema) Body(form Form) map[string]string {
	body := make(map[string]string, len(s))
	for _, f := range s {
		body[f.Name] = form.Get(f.Name)
	}
	return body
}

// WithOptions returns a copy of the schema with the options of field name
// replaced.
func (s Schema) WithOptions(name string, options []string) Schema {
	out := slices.Clone(s)
	for i := range out {
		if out[i].Name == name {
			out[i].Options = options
		}
	}
	return out
}
