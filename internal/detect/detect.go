// Package detect aggregates per-detector AI-probability scores into an
// overall risk verdict. The bundled detectors are mocks drawing uniform
// scores; the aggregation and classification are the real contract.
package detect

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"humanizepro/internal/domain"
)

// Risk classification cut points. The overall score is Low below 30,
// Moderate from 30 through 70, and High above 70.
const (
	lowBelow  = 30
	highAbove = 70
)

const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
)

// Checker produces detection reports. Never fails; always returns a value.
type Checker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func New() *Checker {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource builds a Checker over a caller-provided random source so
// tests can run deterministically.
func NewWithSource(src rand.Source) *Checker {
	return &Checker{rnd: rand.New(src)}
}

// Check scores text against both mock detectors and aggregates the result.
// The text argument is accepted for interface symmetry with a real detector
// backend; the mock draw does not depend on it.
func (c *Checker) Check(text string) domain.DetectionReport {
	c.mu.Lock()
	a := c.rnd.Float64() * 100
	b := c.rnd.Float64() * 100
	c.mu.Unlock()

	scores := domain.DetectionScoreSet{
		DetectorA: round1(a),
		DetectorB: round1(b),
		Overall:   int(math.Round((round1(a) + round1(b)) / 2)),
	}
	risk, notes := Classify(scores.Overall)
	return domain.DetectionReport{Scores: scores, Risk: risk, Notes: notes}
}

// Classify maps an overall score in [0,100] to a risk level and advisory.
func Classify(overall int) (risk, notes string) {
	switch {
	case overall < lowBelow:
		return RiskLow, "Unlikely to be flagged as AI-generated."
	case overall <= highAbove:
		return RiskModerate, "May be flagged by some detectors; consider another humanization pass."
	default:
		return RiskHigh, "Likely to be flagged as AI-generated; run a stronger humanization pass."
	}
}

// round1 keeps one decimal so the per-detector scores read like percentages.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
