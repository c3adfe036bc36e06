// Package generator provides text generation backends for the career coach.
package generator

import (
	"context"
)

// Generator produces text for a prompt. The coach treats the backend as a
// black box: prompts that require structured output instruct the model to
// return only valid JSON, and the caller is responsible for parsing and
// validating the shape of the result.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// The Func adapter allows plain functions to be used as generators.
type Func func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
