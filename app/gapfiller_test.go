package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stratcore/domain/catalog"
	"stratcore/domain/core"
	"stratcore/domain/gaps"
	"stratcore/domain/strategy"
	"stratcore/ports"
)

type MockOptionGenerator struct {
	mock.Mock
}

func (m *MockOptionGenerator) GenerateQuestion(ctx context.Context, req catalog.Requirement, snap strategy.Context) (*ports.GapFillerQuestion, error) {
	args := m.Called(ctx, req, snap)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.GapFillerQuestion), args.Error(1)
}

func questionFor(req catalog.Requirement) *ports.GapFillerQuestion {
	return &ports.GapFillerQuestion{
		RequirementID: req.ID,
		Question:      req.FallbackQuestion,
		Type:          req.QuestionType,
		AllowCustom:   true,
	}
}

// readyAccumulator builds a session with zero critical and exactly two
// important gaps left open
func readyAccumulator() *Accumulator {
	acc := newTestAccumulator()
	acc.Ingest("segment-discovery", strategy.OutputSegments, map[string]any{
		"segments": []any{map[string]any{"name": "Plant operators"}},
	})
	acc.Ingest("bmc-generator", strategy.OutputBMC, map[string]any{
		"value_propositions": []any{"Downtime reduction"},
	})
	acc.Ingest("porters-analyzer", strategy.OutputPorters, map[string]any{
		"overall_assessment": "Defensible niche",
	})
	acc.Ingest("ansoff-analyzer", strategy.OutputAnsoff, map[string]any{
		"recommendation": map[string]any{"primary_strategy": "market_penetration"},
	})
	acc.RecordUserDecision(catalog.ReqTimeline, strategy.SingleDecision("6_months"))
	acc.RecordUserDecision(catalog.ReqBudgetRange, strategy.SingleDecision("moderate"))
	return acc
}

func TestAnalyzeAndPrepareReadySkipsGeneration(t *testing.T) {
	generator := new(MockOptionGenerator)
	filler := NewGapFiller(generator)

	result := filler.AnalyzeAndPrepare(context.Background(), readyAccumulator())

	assert.Equal(t, gaps.ReadinessReady, result.Analysis.OverallReadiness)
	assert.Empty(t, result.Questions)
	assert.False(t, result.RequiresUserInput)
	assert.True(t, result.CanProceedWithoutInput)
	generator.AssertNotCalled(t, "GenerateQuestion")
}

func TestAnalyzeAndPrepareGeneratesBoundedQuestions(t *testing.T) {
	generator := new(MockOptionGenerator)
	generator.On("GenerateQuestion", mock.Anything, mock.Anything, mock.Anything).
		Return(&ports.GapFillerQuestion{}, nil).
		Times(7)

	filler := NewGapFiller(generator)
	result := filler.AnalyzeAndPrepare(context.Background(), newTestAccumulator())

	// Empty session: all 4 critical gaps plus the first 3 important gaps
	assert.Equal(t, gaps.ReadinessInsufficient, result.Analysis.OverallReadiness)
	assert.Len(t, result.Questions, 7)
	assert.True(t, result.RequiresUserInput)
	assert.False(t, result.CanProceedWithoutInput)
	generator.AssertExpectations(t)
}

func TestAnalyzeAndPrepareDropsFailedQuestions(t *testing.T) {
	generator := new(MockOptionGenerator)
	generator.On("GenerateQuestion", mock.Anything,
		mock.MatchedBy(func(req catalog.Requirement) bool { return req.ID == catalog.ReqTimeline }),
		mock.Anything).
		Return(nil, fmt.Errorf("reasoning service unavailable"))
	generator.On("GenerateQuestion", mock.Anything, mock.Anything, mock.Anything).
		Return(&ports.GapFillerQuestion{}, nil)

	filler := NewGapFiller(generator)
	result := filler.AnalyzeAndPrepare(context.Background(), newTestAccumulator())

	assert.Len(t, result.Questions, 6)
}

func TestApplyUserAnswersResolvesOptionsAndCustomValues(t *testing.T) {
	filler := NewGapFiller(new(MockOptionGenerator))
	acc := newTestAccumulator()

	questions := []ports.GapFillerQuestion{
		{
			RequirementID: catalog.ReqRiskTolerance,
			Options: []ports.SmartOption{
				{ID: "opt_0", Value: "aggressive"},
				{ID: "opt_1", Value: "balanced"},
			},
		},
	}

	filler.ApplyUserAnswers(acc, map[core.RequirementID]any{
		catalog.ReqRiskTolerance: "opt_0",
		catalog.ReqTimeline:      "custom: my own plan",
	}, questions)

	decisions := acc.Snapshot().UserDecisions
	assert.Equal(t, []string{"aggressive"}, decisions[catalog.ReqRiskTolerance].Values)
	assert.Equal(t, []string{"my own plan"}, decisions[catalog.ReqTimeline].Values)
}

func TestApplyUserAnswersFallsBackToRawAnswer(t *testing.T) {
	filler := NewGapFiller(new(MockOptionGenerator))
	acc := newTestAccumulator()

	filler.ApplyUserAnswers(acc, map[core.RequirementID]any{
		catalog.ReqGrowthStrategy: "something_unlisted",
	}, nil)

	assert.Equal(t, []string{"something_unlisted"},
		acc.Snapshot().UserDecisions[catalog.ReqGrowthStrategy].Values)
}

func TestSwotIngestGapAnalysisDecisionRoundTrip(t *testing.T) {
	acc := newTestAccumulator()
	filler := NewGapFiller(new(MockOptionGenerator))

	acc.Ingest("swot-analyzer", strategy.OutputSWOT, map[string]any{
		"strengths":     []any{"Strong brand"},
		"weaknesses":    []any{},
		"opportunities": []any{"New market"},
		"threats":       []any{},
	})

	snap := acc.Snapshot()
	assert.Equal(t, []string{"Strong brand"}, snap.SynthesizedInsights.KeyStrengths)
	assert.Contains(t, snap.Metadata.ModulesExecuted, core.ModuleID("swot-analyzer"))

	// Neither of target_segments' source modules has run
	analysis := filler.Analyze(snap)
	criticalIDs := []core.RequirementID{}
	for _, req := range analysis.CriticalGaps {
		criticalIDs = append(criticalIDs, req.ID)
	}
	assert.Contains(t, criticalIDs, catalog.ReqTargetSegments)

	acc.RecordUserDecision(catalog.ReqTargetSegments, strategy.MultiDecision([]string{"SMB retailers"}))

	analysis = filler.Analyze(acc.Snapshot())
	providedIDs := []core.RequirementID{}
	for _, req := range analysis.Provided {
		providedIDs = append(providedIDs, req.ID)
	}
	assert.Contains(t, providedIDs, catalog.ReqTargetSegments)
}

func TestApplyUserAnswersResolvesArraysElementWise(t *testing.T) {
	filler := NewGapFiller(new(MockOptionGenerator))
	acc := newTestAccumulator()

	questions := []ports.GapFillerQuestion{
		{
			RequirementID: catalog.ReqSuccessMetrics,
			Options: []ports.SmartOption{
				{ID: "success_metrics_opt_0", Value: "revenue_growth"},
				{ID: "success_metrics_opt_1", Value: "market_share"},
			},
		},
	}

	filler.ApplyUserAnswers(acc, map[core.RequirementID]any{
		catalog.ReqSuccessMetrics: []any{"success_metrics_opt_1", "custom: churn below 5%"},
	}, questions)

	decision := acc.Snapshot().UserDecisions[catalog.ReqSuccessMetrics]
	assert.True(t, decision.Multiple)
	assert.Equal(t, []string{"market_share", "churn below 5%"}, decision.Values)
}
