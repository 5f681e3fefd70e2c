package collada

import (
	"errors"
	"fmt"
)

// Element writer errors.
var (
	ErrSchemaViolation = errors.New("schema violation")
	ErrInvalidValue    = errors.New("invalid value")
)

// FieldError locates a failure at one field of one element.
type FieldError struct {
	Element string // Element tag, e.g. "orthographic"
	Field   string // Field tag, e.g. "xmag"; may be empty
	Err     error  // ErrSchemaViolation or ErrInvalidValue
	Detail  string
}

// Error formats the element, field and detail.
func (e *FieldError) Error() string {
	loc := "<" + e.Element + ">"
	if e.Field != "" {
		loc += "/<" + e.Field + ">"
	}
	if e.Detail == "" {
		return fmt.Sprintf("collada: %s: %v", loc, e.Err)
	}
	return fmt.Sprintf("collada: %s: %v: %s", loc, e.Err, e.Detail)
}

// Unwrap returns the sentinel error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

func schemaViolation(element, field, detail string) error {
	return &FieldError{Element: element, Field: field, Err: ErrSchemaViolation, Detail: detail}
}

func invalidValue(element, field, detail string) error {
	return &FieldError{Element: element, Field: field, Err: ErrInvalidValue, Detail: detail}
}
