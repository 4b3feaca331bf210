// Package triage holds the deterministic core of content triage: the
// validator that gates raw content and the pure scoring/decision rules
// that turn an analysis result into a categorical outcome.
package triage

import (
	"math"
	"strings"

	"ContentTriage/internal/domain"
)

// Score weights applied to the analysis sub-scores.
const (
	qualityWeight    = 0.4
	engagementWeight = 0.3
	viralityWeight   = 0.3
)

// Decision thresholds.
const (
	rejectBelow      = 40.0
	approveFrom      = 70.0
	spamOverrideFrom = 80.0
)

// Score computes the weighted final score for an analysis, rounded to two
// decimals and clamped to [0, 100]. A nil analysis scores 0.
func Score(a *domain.AnalysisResult) float64 {
	if a == nil {
		return 0.0
	}

	score := float64(a.QualityScore)*qualityWeight +
		float64(a.EngagementScore)*engagementWeight +
		float64(a.ViralityScore)*viralityWeight

	score = math.Round(score*100) / 100
	return math.Max(0.0, math.Min(100.0, score))
}

// Decide maps a final score plus the model's rewrite flag and reasoning to
// a decision and a human-readable reason.
//
// The spam guard runs first and pre-empts the thresholds entirely, except
// when the score is high enough to treat the keyword hit as a false
// positive. The rewrite safeguard only ever downgrades an approval.
func Decide(score float64, rewriteNeeded bool, reasoning string) (domain.Decision, string) {
	if strings.Contains(strings.ToLower(reasoning), "spam") && score < spamOverrideFrom {
		return domain.DecisionRejected, "Spam detected in reasoning"
	}

	switch {
	case score < rejectBelow:
		return domain.DecisionRejected, "Score < 40"
	case score < approveFrom:
		return domain.DecisionReview, "Score between 40 and 70"
	}

	if rewriteNeeded {
		return domain.DecisionReview, "High score but rewrite needed"
	}
	return domain.DecisionApproved, "Score >= 70"
}
