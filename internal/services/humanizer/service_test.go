package humanizer

import (
	"context"
	"errors"
	"testing"

	"humanizepro/internal/domain"
	"humanizepro/internal/rewrite"
	"humanizepro/pkg/logger"
)

type stubRewriter struct {
	out  string
	meta *domain.RewriteMetadata
	err  error
	got  domain.HumanizeRequest
}

func (s *stubRewriter) Rewrite(_ context.Context, req domain.HumanizeRequest) (string, *domain.RewriteMetadata, error) {
	s.got = req
	return s.out, s.meta, s.err
}

func TestHumanizeEmptyText(t *testing.T) {
	svc := New(&stubRewriter{}, logger.Nop())
	_, err := svc.Humanize(context.Background(), domain.HumanizeRequest{Text: "  \n "})
	var rerr *rewrite.Error
	if !errors.As(err, &rerr) || rerr.Kind != rewrite.KindInvalidInput {
		t.Fatalf("got %v, want invalid-input error", err)
	}
}

func TestHumanizeUniqueVersionIDs(t *testing.T) {
	svc := New(&stubRewriter{out: "rewritten"}, logger.Nop())
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		res, err := svc.Humanize(context.Background(), domain.HumanizeRequest{Text: "x"})
		if err != nil {
			t.Fatal(err)
		}
		if res.VersionID == "" || seen[res.VersionID] {
			t.Fatalf("version id %q reused or empty at call %d", res.VersionID, i)
		}
		seen[res.VersionID] = true
	}
}

func TestHumanizeTrimsAndPassesMetadata(t *testing.T) {
	meta := &domain.RewriteMetadata{Model: "m1"}
	svc := New(&stubRewriter{out: "  spaced out  ", meta: meta}, logger.Nop())
	res, err := svc.Humanize(context.Background(), domain.HumanizeRequest{Text: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if res.OutputText != "spaced out" {
		t.Errorf("output = %q", res.OutputText)
	}
	if res.Metadata != meta {
		t.Errorf("metadata not passed through")
	}
	if res.CreatedAt.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestHumanizeNormalizesRequest(t *testing.T) {
	stub := &stubRewriter{out: "ok"}
	svc := New(stub, logger.Nop())
	_, err := svc.Humanize(context.Background(), domain.HumanizeRequest{
		Text:      "x",
		Tone:      domain.Tone("bogus"),
		Intensity: 250,
	})
	if err != nil {
		t.Fatal(err)
	}
	if stub.got.Tone != domain.ToneNeutral {
		t.Errorf("tone = %q, want neutral fallback", stub.got.Tone)
	}
	if stub.got.Intensity != 100 {
		t.Errorf("intensity = %d, want clamped to 100", stub.got.Intensity)
	}
}

func TestHumanizeRewriterErrorPassthrough(t *testing.T) {
	upstream := rewrite.NewError(rewrite.KindRateLimited, errors.New("429"))
	svc := New(&stubRewriter{err: upstream}, logger.Nop())
	_, err := svc.Humanize(context.Background(), domain.HumanizeRequest{Text: "x"})
	if !errors.Is(err, upstream) {
		t.Fatalf("got %v, want rewriter error passed through", err)
	}
}

func TestHumanizeEmptyRewriterOutputFallsBack(t *testing.T) {
	svc := New(&stubRewriter{out: "   "}, logger.Nop())
	res, err := svc.Humanize(context.Background(), domain.HumanizeRequest{Text: "original"})
	if err != nil {
		t.Fatal(err)
	}
	if res.OutputText != "original" {
		t.Errorf("output = %q, want original input", res.OutputText)
	}
}
