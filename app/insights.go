package app

import (
	"strings"

	"stratcore/domain/strategy"
)

// synthesize overwrites the insight fields a framework payload contributes.
// Extraction is defensive: malformed payloads yield empty values, never errors.
func synthesize(sctx *strategy.Context, key strategy.FrameworkKey, payload map[string]any) {
	switch key {
	case strategy.FrameworkSWOT:
		ins := &sctx.SynthesizedInsights
		ins.KeyStrengths = strategy.Top(strategy.FactorStrings(payload, "strengths"), 3)
		ins.KeyWeaknesses = strategy.Top(strategy.FactorStrings(payload, "weaknesses"), 3)
		ins.KeyOpportunities = strategy.Top(strategy.FactorStrings(payload, "opportunities"), 3)
		ins.KeyThreats = strategy.Top(strategy.FactorStrings(payload, "threats"), 3)
		ins.PriorityActions = strategy.Top(priorityActions(payload), 5)

	case strategy.FrameworkSegments:
		sctx.SynthesizedInsights.TargetSegments = strategy.NamedStrings(payload, "segments")

	case strategy.FrameworkPorters:
		if assessment := strategy.StringField(payload, "overall_assessment"); assessment != "" {
			sctx.SynthesizedInsights.CompetitivePosition = assessment
		}

	case strategy.FrameworkAnsoff:
		recommendation := strategy.MapField(payload, "recommendation")
		if primary := strategy.StringField(recommendation, "primary_strategy"); primary != "" {
			sctx.SynthesizedInsights.GrowthStrategy = primary
		}

	case strategy.FrameworkBMC:
		// First write wins for the inferred business model summary
		if sctx.BusinessProfile.BusinessModel == "" {
			propositions := strategy.StringSlice(payload, "value_propositions")
			if len(propositions) > 0 {
				sctx.BusinessProfile.BusinessModel = strings.Join(propositions, "; ")
			}
		}
	}
}

func priorityActions(payload map[string]any) []string {
	actions := strategy.FactorStrings(payload, "priority_actions")
	if len(actions) == 0 {
		actions = strategy.FactorStrings(payload, "recommendations")
	}
	return actions
}
