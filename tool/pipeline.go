package tool

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Invoke validates input against the descriptor's schema, threads it through
// the composition chain and validates the final value against the output
// schema. It never touches the registry or any conversation state: the result
// is a pure function of (descriptor, input) plus whatever external effects the
// chain's stages perform themselves.
//
// Error semantics:
//
//	*SchemaError  -> missing / extra / mistyped input field, or mistyped output
//	*StageError   -> a chain stage returned an error or panicked; no partial
//	                 output is returned
func Invoke(ctx context.Context, d *Descriptor, input map[string]any) (any, error) {
	if err := validateInput(d, input); err != nil {
		return nil, err
	}

	// The first stage consumes the validated input map; each subsequent stage
	// consumes its predecessor's return value.
	validated := make(map[string]any, len(input))
	for k, v := range input {
		validated[k] = v
	}

	var value any = validated
	for i, stage := range d.chain {
		out, err := runStage(ctx, stage, value)
		if err != nil {
			return nil, &StageError{Tool: d.name, Stage: i, Err: err}
		}
		value = out
	}

	if !d.output.Type.Matches(value) {
		return nil, &SchemaError{
			Tool:     d.name,
			Reason:   ReasonTypeMismatch,
			Field:    d.output.Name,
			Expected: d.output.Type,
			Value:    value,
		}
	}
	return value, nil
}

// validateInput checks presence and type of every declared field and rejects
// undeclared extras.
func validateInput(d *Descriptor, input map[string]any) error {
	declared := make(map[string]Type, len(d.input))
	for _, f := range d.input {
		declared[f.Name] = f.Type
		v, ok := input[f.Name]
		if !ok {
			return &SchemaError{Tool: d.name, Reason: ReasonMissing, Field: f.Name, Expected: f.Type}
		}
		if !f.Type.Matches(v) {
			return &SchemaError{Tool: d.name, Reason: ReasonTypeMismatch, Field: f.Name, Expected: f.Type, Value: v}
		}
	}
	for name := range input {
		if _, ok := declared[name]; !ok {
			return &SchemaError{Tool: d.name, Reason: ReasonExtra, Field: name}
		}
	}
	return nil
}

// runStage executes one stage with panic recovery so a misbehaving tool author
// surfaces as a StageError instead of tearing down the session.
func runStage(ctx context.Context, stage Stage, value any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicErr{val: r, stack: debug.Stack()}
		}
	}()
	return stage(ctx, value)
}

type panicErr struct {
	val   any
	stack []byte
}

func (p *panicErr) Error() string { return fmt.Sprintf("panic recovered: %v", p.val) }
