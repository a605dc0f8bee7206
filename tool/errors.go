package tool

import "fmt"

// DefinitionError reports a malformed tool declaration at construction time.
type DefinitionError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
}

func (e *DefinitionError) Error() string {
	if e.Tool == "" {
		return fmt.Sprintf("invalid tool definition: %s", e.Message)
	}
	return fmt.Sprintf("invalid tool definition %q: %s", e.Tool, e.Message)
}

// DuplicateNameError reports a registration attempt colliding with an
// existing registry entry. Registration never silently overwrites.
type DuplicateNameError struct {
	Name string `json:"name"`
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("tool %q is already registered", e.Name)
}

// NotFoundError reports a lookup for an unregistered tool name.
type NotFoundError struct {
	Name string `json:"name"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found", e.Name)
}

// SchemaReason categorizes a schema contract violation.
type SchemaReason string

const (
	// ReasonMissing marks an input lacking a declared field.
	ReasonMissing SchemaReason = "missing"
	// ReasonExtra marks an input carrying an undeclared field.
	ReasonExtra SchemaReason = "extra"
	// ReasonTypeMismatch marks a value violating its declared type tag.
	ReasonTypeMismatch SchemaReason = "type_mismatch"
)

// SchemaError reports an input or output value violating a tool's declared
// schema. Field names the offending slot; Value holds what was supplied.
type SchemaError struct {
	Tool     string       `json:"tool"`
	Reason   SchemaReason `json:"reason"`
	Field    string       `json:"field"`
	Expected Type         `json:"expected,omitempty"`
	Value    any          `json:"value,omitempty"`
}

func (e *SchemaError) Error() string {
	switch e.Reason {
	case ReasonMissing:
		return fmt.Sprintf("tool %q: required field %q is missing", e.Tool, e.Field)
	case ReasonExtra:
		return fmt.Sprintf("tool %q: field %q is not declared in the schema", e.Tool, e.Field)
	default:
		return fmt.Sprintf("tool %q: field %q expected type %s, got %T", e.Tool, e.Field, e.Expected, e.Value)
	}
}

// StageError reports a composition chain stage failing; the chain is aborted
// and no partial output escapes.
type StageError struct {
	Tool  string `json:"tool"`
	Stage int    `json:"stage"`
	Err   error  `json:"-"`
}

func (e *StageError) Error() string {
	return fmt.Sprintf("tool %q: chain stage %d failed: %v", e.Tool, e.Stage, e.Err)
}

// Unwrap exposes the underlying stage failure for errors.Is / errors.As.
func (e *StageError) Unwrap() error { return e.Err }
