package gaps

import (
	"fmt"

	"stratcore/domain/catalog"
	"stratcore/domain/strategy"
)

// Readiness is the computed sufficiency verdict over the requirement catalog
type Readiness string

const (
	ReadinessReady        Readiness = "ready"
	ReadinessNeedsInput   Readiness = "needs_input"
	ReadinessInsufficient Readiness = "insufficient"
)

// Analysis partitions the catalog into satisfied and missing requirements.
// It is recomputed on demand and never persisted.
type Analysis struct {
	Provided         []catalog.Requirement `json:"provided_requirements"`
	Missing          []catalog.Requirement `json:"missing_requirements"`
	CriticalGaps     []catalog.Requirement `json:"critical_gaps"`
	ImportantGaps    []catalog.Requirement `json:"important_gaps"`
	OptionalGaps     []catalog.Requirement `json:"optional_gaps"`
	OverallReadiness Readiness             `json:"overall_readiness"`
	Score            float64               `json:"score"`
}

// Analyze evaluates every catalog requirement against a context snapshot.
// Satisfaction is decided by insight-field checks for a handful of special
// requirement ids, then by source-module execution, then by user decision.
func Analyze(snap strategy.Context, requirements []catalog.Requirement) Analysis {
	analysis := Analysis{}

	satisfiedWeight := 0
	totalWeight := 0

	for _, req := range requirements {
		totalWeight += req.Importance.Weight()

		if isSatisfied(snap, req) {
			satisfiedWeight += req.Importance.Weight()
			analysis.Provided = append(analysis.Provided, req)
			continue
		}

		analysis.Missing = append(analysis.Missing, req)
		switch req.Importance {
		case catalog.ImportanceCritical:
			analysis.CriticalGaps = append(analysis.CriticalGaps, req)
		case catalog.ImportanceImportant:
			analysis.ImportantGaps = append(analysis.ImportantGaps, req)
		default:
			analysis.OptionalGaps = append(analysis.OptionalGaps, req)
		}
	}

	if totalWeight > 0 {
		analysis.Score = 100 * float64(satisfiedWeight) / float64(totalWeight)
	}
	analysis.OverallReadiness = readinessOf(analysis)

	return analysis
}

func readinessOf(a Analysis) Readiness {
	if len(a.CriticalGaps) == 0 && len(a.ImportantGaps) <= 2 {
		return ReadinessReady
	}
	if len(a.CriticalGaps) <= 2 {
		return ReadinessNeedsInput
	}
	return ReadinessInsufficient
}

func isSatisfied(snap strategy.Context, req catalog.Requirement) bool {
	// Insight-backed requirements read synthesized fields directly
	switch req.ID {
	case catalog.ReqTargetSegments:
		if len(snap.SynthesizedInsights.TargetSegments) > 0 {
			return true
		}
	case catalog.ReqCompetitiveStrategy:
		if snap.SynthesizedInsights.CompetitivePosition != "" {
			return true
		}
	case catalog.ReqGrowthStrategy:
		if snap.SynthesizedInsights.GrowthStrategy != "" {
			return true
		}
	case catalog.ReqValueProposition:
		if snap.BusinessProfile.BusinessModel != "" {
			return true
		}
	}

	for _, source := range req.Sources {
		for _, executed := range snap.Metadata.ModulesExecuted {
			if executed == source {
				return true
			}
		}
	}

	if decision, ok := snap.UserDecisions[req.ID]; ok && !decision.IsEmpty() {
		return true
	}

	return false
}

// ForUserInput returns the bounded set of requirements worth asking the user
// about: every critical gap plus at most the first three important gaps.
// Optional gaps are never surfaced as questions.
func ForUserInput(a Analysis) []catalog.Requirement {
	out := append([]catalog.Requirement(nil), a.CriticalGaps...)
	important := a.ImportantGaps
	if len(important) > 3 {
		important = important[:3]
	}
	return append(out, important...)
}

// Status is a presentational readiness summary
type Status struct {
	Color   string  `json:"color"`
	Message string  `json:"message"`
	Score   float64 `json:"score"`
}

// StatusOf maps the three readiness tiers to a three-color status
func StatusOf(a Analysis) Status {
	switch a.OverallReadiness {
	case ReadinessReady:
		return Status{
			Color:   "green",
			Message: "Enough context to generate an execution plan.",
			Score:   a.Score,
		}
	case ReadinessNeedsInput:
		return Status{
			Color: "yellow",
			Message: fmt.Sprintf("A few answers needed before plan generation (%d critical gaps).",
				len(a.CriticalGaps)),
			Score: a.Score,
		}
	default:
		return Status{
			Color: "red",
			Message: fmt.Sprintf("Not enough context yet: %d of %d requirements covered.",
				len(a.Provided), len(a.Provided)+len(a.Missing)),
			Score: a.Score,
		}
	}
}
