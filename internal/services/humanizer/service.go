// Package humanizer orchestrates one humanization call: validate, rewrite,
// mint a version id. It never persists anything itself.
package humanizer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"humanizepro/internal/domain"
	"humanizepro/internal/ports"
	"humanizepro/internal/rewrite"
	"humanizepro/pkg/logger"
)

type Service struct {
	rewriter ports.TextRewriter
	log      *logger.Logger
}

func New(rewriter ports.TextRewriter, log *logger.Logger) *Service {
	return &Service{rewriter: rewriter, log: log}
}

// Humanize rewrites the request text and stamps the result with a fresh
// version id. Fails with the invalid-input kind on empty text and passes
// rewriter errors through unchanged.
func (s *Service) Humanize(ctx context.Context, req domain.HumanizeRequest) (domain.HumanizeResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return domain.HumanizeResult{}, rewrite.NewError(rewrite.KindInvalidInput, nil)
	}
	req.Tone = domain.ParseTone(string(req.Tone))
	req.Intensity = clamp(req.Intensity, 0, 100)

	out, meta, err := s.rewriter.Rewrite(ctx, req)
	if err != nil {
		return domain.HumanizeResult{}, err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		// The rewriter contract already guards this; keep the invariant
		// even against a misbehaving implementation.
		out = req.Text
	}

	result := domain.HumanizeResult{
		OutputText: out,
		VersionID:  uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Metadata:   meta,
	}
	s.log.Debug("humanize complete", "version_id", result.VersionID, "intensity", req.Intensity, "tone", req.Tone)
	return result, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
