// Package prompt builds the natural-language instruction sent to the rewrite
// model from a (tone, intensity, language) configuration and the input text.
package prompt

import (
	"fmt"
	"strings"

	"humanizepro/internal/domain"
)

// RulesBlock is appended to every prompt. Each rule is load-bearing for
// output quality; the exact wording is not.
const RulesBlock = `Rules:
- Preserve every fact and keep roughly the original length.
- Do not add commentary about the rewrite itself.
- Do not add quotation marks or markup that is not in the original.
- Vary sentence structure and rhythm.`

var toneInstructions = map[domain.Tone]string{
	domain.ToneNeutral:   "Keep a balanced, natural register.",
	domain.ToneAcademic:  "Use a measured, scholarly register with precise wording.",
	domain.ToneCasual:    "Use a relaxed, conversational register.",
	domain.ToneMarketing: "Use an engaging, persuasive register.",
}

// intensityInstruction buckets the 0-100 dial into three rewrite strengths.
// The cut points are at 30 and 70, both inclusive on the lower bucket.
func intensityInstruction(intensity int) string {
	switch {
	case intensity <= 30:
		return "Make subtle changes: adjust word choice lightly while keeping the original phrasing mostly intact."
	case intensity <= 70:
		return "Make moderate changes: rephrase sentences where it helps the text read naturally."
	default:
		return "Make strong, substantial changes: restructure sentences freely while preserving meaning."
	}
}

// Build never fails for well-typed input; it is pure string assembly.
// Unknown tones degrade to the neutral instruction, and a language directive
// is only added for non-English targets.
func Build(text string, tone domain.Tone, intensity int, language string) string {
	toneLine, ok := toneInstructions[tone]
	if !ok {
		toneLine = toneInstructions[domain.ToneNeutral]
	}

	var b strings.Builder
	b.WriteString("Rewrite the following text so it reads as if written by a person.\n")
	b.WriteString(toneLine)
	b.WriteString("\n")
	b.WriteString(intensityInstruction(intensity))
	b.WriteString("\n")
	if language != "" && language != "en" {
		fmt.Fprintf(&b, "Answer in %s.\n", language)
	}
	b.WriteString(RulesBlock)
	b.WriteString("\n\nText:\n")
	b.WriteString(text)
	return strings.TrimSpace(b.String())
}
