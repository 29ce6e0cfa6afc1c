package ai

import (
	"context"

	"github.com/nao1215/docscore/internal/model"
)

// Supplementer returns a qualitative review of an excerpt for one
// criterion, or nil when no review is available. Implementations must be
// safe for concurrent use and must not retry.
type Supplementer interface {
	Supplement(ctx context.Context, criterion model.Criterion, excerpt string) *model.AIFindings
}

// Nop is a Supplementer that never returns findings.
type Nop struct{}

// Supplement always returns nil.
func (Nop) Supplement(context.Context, model.Criterion, string) *model.AIFindings {
	return nil
}

// SupplementFunc adapts a function to the Supplementer interface.
type SupplementFunc func(ctx context.Context, criterion model.Criterion, excerpt string) *model.AIFindings

// Supplement calls f.
func (f SupplementFunc) Supplement(ctx context.Context, criterion model.Criterion, excerpt string) *model.AIFindings {
	return f(ctx, criterion, excerpt)
}
