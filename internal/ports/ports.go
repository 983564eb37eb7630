package ports

import (
	"context"

	"humanizepro/internal/domain"
)

// TextRewriter turns input text into its humanized form. Implementations are
// selected once at startup by configuration: a model-backed rewriter when a
// credential is present, the deterministic rule-based one otherwise.
type TextRewriter interface {
	Rewrite(ctx context.Context, req domain.HumanizeRequest) (text string, meta *domain.RewriteMetadata, err error)
}

// Humanizer runs one full humanization call and mints a fresh version id.
type Humanizer interface {
	Humanize(ctx context.Context, req domain.HumanizeRequest) (domain.HumanizeResult, error)
}

// DetectionChecker scores text against the configured detectors.
type DetectionChecker interface {
	Check(text string) domain.DetectionReport
}
