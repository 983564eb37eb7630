package rewrite

import (
	"context"
	"errors"
	"strings"
	"testing"

	"humanizepro/internal/domain"
)

func ruleRewrite(t *testing.T, text string) string {
	t.Helper()
	out, meta, err := NewRules().Rewrite(context.Background(), domain.HumanizeRequest{Text: text})
	if err != nil {
		t.Fatalf("Rewrite(%q) error: %v", text, err)
	}
	if meta != nil {
		t.Errorf("rule rewriter should not report provider metadata, got %+v", meta)
	}
	return out
}

func TestRuleSubstitutions(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"I think this is very good.", "this is good."},
		{"This is really simple.", "This is simple."},
		{"It was quite a day.", "It was a day."},
		{"In my opinion, the plan works.", "the plan works."},
		{"I believe the plan works.", "the plan works."},
		{"Furthermore, we must act.", "Also, we must act."},
		{"Moreover, costs dropped.", "Also, costs dropped."},
		{"Additionally, we saved time.", "Also, we saved time."},
		{"We utilize modern tooling.", "We use modern tooling."},
		{"They implemented the feature.", "They use the feature."},
		{"Meetings facilitate alignment.", "Meetings use alignment."},
	}
	for _, tt := range tests {
		if got := ruleRewrite(t, tt.in); got != tt.want {
			t.Errorf("Rewrite(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRuleNoMatchReturnsInputUnchanged(t *testing.T) {
	in := "  The plan works.  "
	if got := ruleRewrite(t, in); got != in {
		t.Errorf("untouched text should pass through byte-for-byte, got %q", got)
	}
}

func TestRuleNeverReturnsEmpty(t *testing.T) {
	inputs := []string{
		"very really quite x",
		"I think x",
		"word",
		"Furthermore.",
	}
	for _, in := range inputs {
		if got := ruleRewrite(t, in); strings.TrimSpace(got) == "" {
			t.Errorf("Rewrite(%q) returned empty output", in)
		}
	}
}

func TestRuleEmptyInput(t *testing.T) {
	_, _, err := NewRules().Rewrite(context.Background(), domain.HumanizeRequest{Text: "   "})
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Kind != KindInvalidInput {
		t.Fatalf("expected KindInvalidInput, got %v", err)
	}
}
