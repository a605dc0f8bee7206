// Package tool implements the tool calling subsystem: typed descriptors with
// schema validated arguments, a registry advertising capabilities to model
// providers, and the invocation pipeline that threads a value through a tool's
// composition chain with consistent error handling.
package tool

import (
	"context"
	"fmt"
)

// Type is a primitive type tag used in tool schemas.
type Type string

const (
	// TypeString accepts UTF-8 text values.
	TypeString Type = "string"
	// TypeNumber accepts integer and floating point values.
	TypeNumber Type = "number"
	// TypeBoolean accepts true/false values.
	TypeBoolean Type = "boolean"
)

// Valid reports whether t is one of the known primitive tags.
func (t Type) Valid() bool {
	switch t {
	case TypeString, TypeNumber, TypeBoolean:
		return true
	}
	return false
}

// Matches reports whether a runtime value conforms to the tag. Numbers accept
// both Go numeric types and the float64 produced by JSON decoding.
func (t Type) Matches(v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		switch v.(type) {
		case int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
			return true
		}
		return false
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	}
	return false
}

// Field is one named, typed slot in a tool schema.
type Field struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Schema is an ordered input schema: declaration order is preserved all the
// way to the wire representation shown to the model.
type Schema []Field

// JSONSchema renders the schema as a minimal JSON-Schema object map of the
// shape model providers expect ({"type":"object","properties":...,"required":...}).
func (s Schema) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s))
	required := make([]string, 0, len(s))
	for _, f := range s {
		properties[f.Name] = map[string]any{"type": string(f.Type)}
		required = append(required, f.Name)
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// Stage is one callable in a tool's composition chain. The first stage
// receives the schema-validated input as a map[string]any; every subsequent
// stage receives the prior stage's return value as its sole argument.
type Stage func(ctx context.Context, v any) (any, error)

// Descriptor is an immutable tool definition: name, schemas, description and
// the composition chain implementing it. Construct via NewDescriptor, which
// rejects malformed definitions up front rather than at call time.
type Descriptor struct {
	name        string
	description string
	input       Schema
	output      Field
	chain       []Stage
}

// NewDescriptor validates and builds a tool definition.
//
// Definition rules:
//   - name and description must be non-empty
//   - input must declare at least one field, all names unique, all types valid
//   - output must be a single named field with a valid type
//   - chain must contain at least one non-nil stage
//
// Violations are reported as *DefinitionError; a mis-declared tool never
// reaches the registry.
func NewDescriptor(name, description string, input Schema, output Field, chain ...Stage) (*Descriptor, error) {
	if name == "" {
		return nil, &DefinitionError{Tool: name, Message: "tool name must not be empty"}
	}
	if description == "" {
		return nil, &DefinitionError{Tool: name, Message: "tool description must not be empty"}
	}
	if len(input) == 0 {
		return nil, &DefinitionError{Tool: name, Message: "input schema must declare at least one field"}
	}
	seen := make(map[string]bool, len(input))
	for _, f := range input {
		if f.Name == "" {
			return nil, &DefinitionError{Tool: name, Message: "input schema field name must not be empty"}
		}
		if !f.Type.Valid() {
			return nil, &DefinitionError{Tool: name, Message: fmt.Sprintf("input field %q has unknown type %q", f.Name, f.Type)}
		}
		if seen[f.Name] {
			return nil, &DefinitionError{Tool: name, Message: fmt.Sprintf("input field %q declared twice", f.Name)}
		}
		seen[f.Name] = true
	}
	if output.Name == "" {
		return nil, &DefinitionError{Tool: name, Message: "output schema field name must not be empty"}
	}
	if !output.Type.Valid() {
		return nil, &DefinitionError{Tool: name, Message: fmt.Sprintf("output field %q has unknown type %q", output.Name, output.Type)}
	}
	if len(chain) == 0 {
		return nil, &DefinitionError{Tool: name, Message: "composition chain must contain at least one stage"}
	}
	for i, st := range chain {
		if st == nil {
			return nil, &DefinitionError{Tool: name, Message: fmt.Sprintf("chain stage %d is nil", i)}
		}
	}

	d := &Descriptor{
		name:        name,
		description: description,
		input:       make(Schema, len(input)),
		output:      output,
		chain:       make([]Stage, len(chain)),
	}
	copy(d.input, input)
	copy(d.chain, chain)
	return d, nil
}

// Name returns the unique tool name used in function call declarations and routing.
func (d *Descriptor) Name() string { return d.name }

// Description returns the natural language description exposed to models.
func (d *Descriptor) Description() string { return d.description }

// InputSchema returns a copy of the ordered input schema.
func (d *Descriptor) InputSchema() Schema {
	s := make(Schema, len(d.input))
	copy(s, d.input)
	return s
}

// OutputSchema returns the single output field declaration.
func (d *Descriptor) OutputSchema() Field { return d.output }

// Export returns the wire-facing view of the descriptor used to advertise the
// tool to a model provider.
func (d *Descriptor) Export() Export {
	return Export{
		Name:        d.name,
		Description: d.description,
		Input:       d.InputSchema(),
		Output:      d.output,
	}
}

// Export is the schema advertisement for one tool, in the shape providers
// consume on every completion call.
type Export struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Input       Schema `json:"input_schema"`
	Output      Field  `json:"output_schema"`
}

// Parameters renders the input schema as a JSON-Schema map for provider wire formats.
func (e Export) Parameters() map[string]any { return e.Input.JSONSchema() }
