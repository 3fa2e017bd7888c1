package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stratcore/domain/core"
	"stratcore/domain/strategy"
)

func newTestAccumulator() *Accumulator {
	return NewAccumulator(core.SessionID(core.NewID()), strategy.BusinessProfile{
		Name:      "Acme Tooling",
		Industry:  "industrial software",
		Scale:     "mid-market",
		Geography: "EU",
	})
}

func swotPayload() map[string]any {
	return map[string]any{
		"strengths":     []any{"Strong brand", map[string]any{"factor": "Loyal customers"}, "Deep domain expertise", "Fourth strength"},
		"weaknesses":    []any{"Small sales team"},
		"opportunities": []any{"Adjacent verticals", "Partner channel"},
		"threats":       []any{"Price pressure"},
		"priority_actions": []any{
			"Hire sales lead", "Launch partner program", "Refresh pricing",
			"Expand support", "Open EU office", "Sixth action",
		},
	}
}

func TestIngestRecordsLedgerAndStoresPayload(t *testing.T) {
	acc := newTestAccumulator()

	acc.Ingest("swot-analyzer", strategy.OutputSWOT, swotPayload())

	assert.True(t, acc.HasExecuted("swot-analyzer"))
	assert.False(t, acc.HasExecuted("bmc-generator"))

	snap := acc.Snapshot()
	assert.Contains(t, snap.AnalysisOutputs, strategy.FrameworkSWOT)
	assert.Equal(t, []core.ModuleID{"swot-analyzer"}, acc.ExecutedModules())
}

func TestIngestLedgerIsAppendOnlyWithDuplicates(t *testing.T) {
	acc := newTestAccumulator()

	acc.Ingest("swot-analyzer", strategy.OutputSWOT, swotPayload())
	acc.Ingest("swot-analyzer", strategy.OutputSWOT, swotPayload())
	acc.Ingest("pestle-analyzer", strategy.OutputPESTLE, map[string]any{})

	assert.Equal(t, []core.ModuleID{"swot-analyzer", "swot-analyzer", "pestle-analyzer"}, acc.ExecutedModules())
}

func TestIngestUnknownOutputTypeKeepsLedgerOnly(t *testing.T) {
	acc := newTestAccumulator()

	acc.Ingest("mystery-module", strategy.OutputType("mystery_report"), map[string]any{"x": 1})

	assert.True(t, acc.HasExecuted("mystery-module"))
	assert.Empty(t, acc.Snapshot().AnalysisOutputs)
	assert.Greater(t, acc.Snapshot().Metadata.Confidence, 0.4)
}

func TestConfidenceFormulaAndSaturation(t *testing.T) {
	acc := newTestAccumulator()

	acc.Ingest("swot-analyzer", strategy.OutputSWOT, swotPayload())
	assert.InDelta(t, 0.48, acc.Snapshot().Metadata.Confidence, 1e-9)

	acc.Ingest("pestle-analyzer", strategy.OutputPESTLE, map[string]any{})
	assert.InDelta(t, 0.56, acc.Snapshot().Metadata.Confidence, 1e-9)

	// Saturates at 0.95 regardless of how many modules run
	for i := 0; i < 10; i++ {
		acc.Ingest("pestle-analyzer", strategy.OutputPESTLE, map[string]any{})
	}
	assert.InDelta(t, 0.95, acc.Snapshot().Metadata.Confidence, 1e-9)
}

func TestConfidenceDecisionBonusAppliedOnce(t *testing.T) {
	acc := newTestAccumulator()

	acc.Ingest("swot-analyzer", strategy.OutputSWOT, swotPayload())
	acc.RecordUserDecision("timeline", strategy.SingleDecision("6_months"))
	assert.InDelta(t, 0.58, acc.Snapshot().Metadata.Confidence, 1e-9)

	// A second decision does not stack the bonus
	acc.RecordUserDecision("budget_range", strategy.SingleDecision("moderate"))
	assert.InDelta(t, 0.58, acc.Snapshot().Metadata.Confidence, 1e-9)
}

func TestConfidenceIsMonotone(t *testing.T) {
	acc := newTestAccumulator()

	previous := acc.Snapshot().Metadata.Confidence
	modules := []strategy.OutputType{
		strategy.OutputSWOT, strategy.OutputBMC, strategy.OutputPESTLE,
		strategy.OutputPorters, strategy.OutputAnsoff, strategy.OutputSegments,
	}
	for i, outputType := range modules {
		acc.Ingest(core.ModuleID("module"), outputType, map[string]any{})
		current := acc.Snapshot().Metadata.Confidence
		assert.GreaterOrEqual(t, current, previous, "confidence dipped at step %d", i)
		previous = current
	}
}

func TestRecordUserDecisionIgnoresEmptyValues(t *testing.T) {
	acc := newTestAccumulator()

	acc.RecordUserDecision("timeline", strategy.DecisionValue{})

	assert.Empty(t, acc.Snapshot().UserDecisions)
	assert.InDelta(t, 0.4, acc.Snapshot().Metadata.Confidence, 1e-9)
}

func TestSwotInsightExtraction(t *testing.T) {
	acc := newTestAccumulator()

	acc.Ingest("swot-analyzer", strategy.OutputSWOT, swotPayload())

	ins := acc.Snapshot().SynthesizedInsights
	assert.Equal(t, []string{"Strong brand", "Loyal customers", "Deep domain expertise"}, ins.KeyStrengths)
	assert.Equal(t, []string{"Small sales team"}, ins.KeyWeaknesses)
	assert.Len(t, ins.PriorityActions, 5)
	assert.NotContains(t, ins.PriorityActions, "Sixth action")
}

func TestSwotInsightsAreOverwrittenNotAppended(t *testing.T) {
	acc := newTestAccumulator()

	acc.Ingest("swot-analyzer", strategy.OutputSWOT, swotPayload())
	acc.Ingest("swot-analyzer", strategy.OutputSWOT, map[string]any{
		"strengths": []any{"New strength"},
	})

	ins := acc.Snapshot().SynthesizedInsights
	assert.Equal(t, []string{"New strength"}, ins.KeyStrengths)
	assert.Empty(t, ins.KeyWeaknesses)
}

func TestSegmentInsightExtraction(t *testing.T) {
	acc := newTestAccumulator()

	acc.Ingest("segment-discovery", strategy.OutputSegments, map[string]any{
		"segments": []any{
			map[string]any{"name": "Plant operators"},
			"Maintenance leads",
		},
	})

	assert.Equal(t, []string{"Plant operators", "Maintenance leads"},
		acc.Snapshot().SynthesizedInsights.TargetSegments)
}

func TestPortersInsightLeavesPositionWhenAbsent(t *testing.T) {
	acc := newTestAccumulator()

	acc.Ingest("porters-analyzer", strategy.OutputPorters, map[string]any{
		"overall_assessment": "Defensible niche with moderate rivalry",
	})
	assert.Equal(t, "Defensible niche with moderate rivalry",
		acc.Snapshot().SynthesizedInsights.CompetitivePosition)

	// A later payload without the field leaves the prior value unchanged
	acc.Ingest("porters-analyzer", strategy.OutputPorters, map[string]any{})
	assert.Equal(t, "Defensible niche with moderate rivalry",
		acc.Snapshot().SynthesizedInsights.CompetitivePosition)
}

func TestAnsoffInsightExtraction(t *testing.T) {
	acc := newTestAccumulator()

	acc.Ingest("ansoff-analyzer", strategy.OutputAnsoff, map[string]any{
		"recommendation": map[string]any{"primary_strategy": "market_development"},
	})

	assert.Equal(t, "market_development", acc.Snapshot().SynthesizedInsights.GrowthStrategy)
}

func TestBMCBusinessModelFirstWriteWins(t *testing.T) {
	acc := newTestAccumulator()

	acc.Ingest("bmc-generator", strategy.OutputBMC, map[string]any{
		"value_propositions": []any{"Predictive maintenance", "Downtime reduction"},
	})
	assert.Equal(t, "Predictive maintenance; Downtime reduction",
		acc.Snapshot().BusinessProfile.BusinessModel)

	acc.Ingest("bmc-generator", strategy.OutputBMC, map[string]any{
		"value_propositions": []any{"Something else"},
	})
	assert.Equal(t, "Predictive maintenance; Downtime reduction",
		acc.Snapshot().BusinessProfile.BusinessModel)
}

func TestMalformedPayloadDegradesToEmptyInsights(t *testing.T) {
	acc := newTestAccumulator()

	acc.Ingest("swot-analyzer", strategy.OutputSWOT, map[string]any{
		"strengths": "not a list",
		"threats":   42,
	})

	ins := acc.Snapshot().SynthesizedInsights
	assert.Empty(t, ins.KeyStrengths)
	assert.Empty(t, ins.KeyThreats)
}

func TestSnapshotIsImmutableCopy(t *testing.T) {
	acc := newTestAccumulator()
	acc.Ingest("swot-analyzer", strategy.OutputSWOT, swotPayload())

	snap := acc.Snapshot()
	snap.AnalysisOutputs[strategy.FrameworkSWOT]["strengths"] = []any{"tampered"}
	snap.Metadata.ModulesExecuted = append(snap.Metadata.ModulesExecuted, "tampered-module")
	snap.SynthesizedInsights.KeyStrengths[0] = "tampered"

	fresh := acc.Snapshot()
	assert.Equal(t, "Strong brand", fresh.SynthesizedInsights.KeyStrengths[0])
	assert.Equal(t, []core.ModuleID{"swot-analyzer"}, fresh.Metadata.ModulesExecuted)
	assert.NotEqual(t, []any{"tampered"}, fresh.AnalysisOutputs[strategy.FrameworkSWOT]["strengths"])
}

func TestRehydrateRestoresDecisionBonusState(t *testing.T) {
	acc := newTestAccumulator()
	acc.Ingest("swot-analyzer", strategy.OutputSWOT, swotPayload())
	acc.RecordUserDecision("timeline", strategy.SingleDecision("6_months"))

	restored := Rehydrate(acc.Snapshot())
	restored.Ingest("pestle-analyzer", strategy.OutputPESTLE, map[string]any{})

	// 0.4 + 2*0.08 + 0.1, bonus not double-counted after rehydration
	assert.InDelta(t, 0.66, restored.Snapshot().Metadata.Confidence, 1e-9)
}
