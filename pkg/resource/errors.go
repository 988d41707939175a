package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldMissing matches lookups of a name that is neither derived nor present in the payload.
	ErrFieldMissing = errors.New("field missing")
	// ErrResolutionFailed matches failures of a derived field's resolver.
	ErrResolutionFailed = errors.New("resolution failed")
	// ErrFieldType matches raw values of an unexpected JSON type.
	ErrFieldType = errors.New("unexpected field type")
	// ErrNoSource is returned when a relationship needs a fetch but the record was built without a source.
	ErrNoSource = errors.New("record has no data source")
)

// FieldMissingError reports a lookup of an absent field.
type FieldMissingError struct {
	Record string
	Field  string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("%s: field %q not found", e.Record, e.Field)
}

// Is reports whether target is ErrFieldMissing.
func (e *FieldMissingError) Is(target error) bool {
	return target == ErrFieldMissing
}

// ResolutionError wraps the cause of a failed derived-field resolution.
// The slot stays unresolved, so the next access tries again.
type ResolutionError struct {
	Record string
	Field  string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s.%s: %v", e.Record, e.Field, e.Err)
}

// Is reports whether target is ErrResolutionFailed.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolutionFailed
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func fieldTypeError(record, field, want string, got any) error {
	return fmt.Errorf("%s.%s: %w: want %s, got %T", record, field, ErrFieldType, want, got)
}
