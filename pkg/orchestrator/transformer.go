package orchestrator

import (
	"context"

	"github.com/goliatone/go-taguchi/pkg/design"
)

// Transformer mutates a parsed Definition before validation and array
// selection. Implementations can rename factors, drop levels or pin an array.
type Transformer interface {
	Transform(ctx context.Context, def *design.Definition) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, def *design.Definition) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, def *design.Definition) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, def)
}

// PinArray returns a transformer that requests the named array when the
// definition leaves the choice to auto-selection.
func PinArray(name string) Transformer {
	return TransformerFunc(func(_ context.Context, def *design.Definition) error {
		if def.Array == "" {
			def.Array = name
		}
		return nil
	})
}
