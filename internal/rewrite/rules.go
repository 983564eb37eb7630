package rewrite

import (
	"context"
	"regexp"
	"strings"

	"humanizepro/internal/domain"
)

// RuleRewriter is the deterministic fallback used when no model credential is
// configured. It applies a fixed set of substitutions that strip common
// machine-flavored phrasing. If no rule fires, the input passes through
// unchanged; the result is never empty for non-empty input.
type RuleRewriter struct{}

func NewRules() *RuleRewriter { return &RuleRewriter{} }

var ruleSubs = []struct {
	re   *regexp.Regexp
	repl string
}{
	// Opinion framing goes first so its trailing hedges are still visible
	// to the hedge rule.
	{regexp.MustCompile(`(?i)\b(I think|I believe|In my opinion),?\s*`), ""},
	{regexp.MustCompile(`(?i)\b(very|really|quite)\s+`), ""},
	{regexp.MustCompile(`(?i)\b(Furthermore|Moreover|Additionally)\b`), "Also"},
	{regexp.MustCompile(`(?i)\b(utilize|utilizes|utilized|implement|implements|implemented|facilitate|facilitates|facilitated)\b`), "use"},
}

func (r *RuleRewriter) Rewrite(_ context.Context, req domain.HumanizeRequest) (string, *domain.RewriteMetadata, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", nil, NewError(KindInvalidInput, nil)
	}
	out := req.Text
	for _, sub := range ruleSubs {
		out = sub.re.ReplaceAllString(out, sub.repl)
	}
	if out == req.Text {
		return req.Text, nil, nil
	}
	return strings.TrimSpace(out), nil, nil
}
