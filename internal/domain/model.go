package domain

import "time"

// Core domain models used internally. API request/response shapes live in the
// http adapter; keep these decoupled where helpful.

// Tone is the coarse stylistic register a rewrite should target.
type Tone string

const (
	ToneNeutral   Tone = "neutral"
	ToneAcademic  Tone = "academic"
	ToneCasual    Tone = "casual"
	ToneMarketing Tone = "marketing"
)

// ParseTone maps a raw string onto a known tone. Unrecognized values degrade
// to neutral rather than failing.
func ParseTone(s string) Tone {
	switch Tone(s) {
	case ToneAcademic, ToneCasual, ToneMarketing, ToneNeutral:
		return Tone(s)
	}
	return ToneNeutral
}

// Flags are named rewrite toggles. Both are an always-on baseline today and
// retained for forward compatibility.
type Flags struct {
	AvoidBurstiness bool `json:"avoidBurstiness"`
	AvoidPerplexity bool `json:"avoidPerplexity"`
}

func DefaultFlags() Flags {
	return Flags{AvoidBurstiness: true, AvoidPerplexity: true}
}

// DetectionScoreSet holds per-detector AI-probability scores in [0,100] and
// their rounded mean. It is always attached to a Version or returned
// transiently, never persisted on its own.
type DetectionScoreSet struct {
	DetectorA float64 `json:"detectorA"`
	DetectorB float64 `json:"detectorB"`
	Overall   int     `json:"overall"`
}

// DetectionReport is a score set with its qualitative classification.
type DetectionReport struct {
	Scores DetectionScoreSet `json:"scores"`
	Risk   string            `json:"risk"`
	Notes  string            `json:"notes"`
}

// Version is one immutable snapshot of humanized output. The only mutation
// allowed after creation is the one-time attachment of CheckScores to the
// most recent version.
type Version struct {
	ID          string             `json:"id"`
	CreatedAt   time.Time          `json:"createdAt"`
	OutputText  string             `json:"outputText"`
	CheckScores *DetectionScoreSet `json:"checkScores,omitempty"`
}

// Project owns its Versions by value, newest first: index 0 is "Latest".
type Project struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	InputText  string    `json:"inputText"`
	OutputText string    `json:"outputText"`
	Versions   []Version `json:"versions"`
	Language   string    `json:"language"`
	Tone       Tone      `json:"tone"`
	Intensity  int       `json:"intensity"`
	Flags      Flags     `json:"flags"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// HumanizeRequest crosses the core boundary into the rewriter.
type HumanizeRequest struct {
	Text      string
	Tone      Tone
	Intensity int
	Language  string
	Flags     Flags
}

// RewriteMetadata carries provider details for a single rewrite call.
type RewriteMetadata struct {
	Model            string `json:"model"`
	PromptTokens     int    `json:"promptTokens,omitempty"`
	CompletionTokens int    `json:"completionTokens,omitempty"`
}

// HumanizeResult is the outcome of one successful humanization call. The
// VersionID is fresh on every call, never reused within a process.
type HumanizeResult struct {
	OutputText string
	VersionID  string
	CreatedAt  time.Time
	Metadata   *RewriteMetadata
}
