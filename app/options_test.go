package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stratcore/domain/catalog"
	"stratcore/domain/core"
	"stratcore/domain/strategy"
)

type MockReasoningPort struct {
	mock.Mock
}

func (m *MockReasoningPort) Complete(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

func segmentsRequirement(t *testing.T) catalog.Requirement {
	req, ok := catalog.ByID(catalog.ReqTargetSegments)
	assert.True(t, ok)
	return req
}

func TestStaticMenusSkipReasoningService(t *testing.T) {
	reasoning := new(MockReasoningPort)
	generator := NewSmartOptionGenerator(reasoning)

	for _, id := range []struct {
		reqID   string
		options int
	}{
		{"timeline", 4},
		{"budget_range", 4},
		{"risk_tolerance", 3},
	} {
		req, ok := catalog.ByID(core.RequirementID(id.reqID))
		assert.True(t, ok)

		question, err := generator.GenerateQuestion(context.Background(), req, strategy.Context{})
		assert.NoError(t, err)
		assert.Len(t, question.Options, id.options)
		assert.True(t, question.AllowCustom)

		recommended := 0
		for _, opt := range question.Options {
			if opt.Recommended {
				recommended++
			}
		}
		assert.Equal(t, 1, recommended, "exactly one recommended option for %s", id.reqID)
	}

	reasoning.AssertNotCalled(t, "Complete")
}

func TestGenerateOptionsParsesBareArray(t *testing.T) {
	reasoning := new(MockReasoningPort)
	reasoning.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		`[{"label": "SMB manufacturers", "value": "smb_manufacturers", "confidence": 0.9},
		  {"label": "Enterprise plants", "value": "enterprise_plants", "confidence": 0.6}]`, nil)

	generator := NewSmartOptionGenerator(reasoning)
	question, err := generator.GenerateQuestion(context.Background(), segmentsRequirement(t), strategy.Context{})

	assert.NoError(t, err)
	assert.Len(t, question.Options, 2)
	assert.Equal(t, "target_segments_opt_0", question.Options[0].ID)
	assert.Equal(t, "target_segments_opt_1", question.Options[1].ID)
	assert.Equal(t, "smb_manufacturers", question.Options[0].Value)
	assert.True(t, question.Options[0].Recommended, "highest confidence option promoted")
}

func TestGenerateOptionsParsesOptionsWrapper(t *testing.T) {
	reasoning := new(MockReasoningPort)
	reasoning.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		`{"options": [{"label": "Niche leaders", "value": "niche_leaders", "confidence": 0.8}]}`, nil)

	generator := NewSmartOptionGenerator(reasoning)
	question, err := generator.GenerateQuestion(context.Background(), segmentsRequirement(t), strategy.Context{})

	assert.NoError(t, err)
	assert.Len(t, question.Options, 1)
	assert.Equal(t, "niche_leaders", question.Options[0].Value)
}

func TestGenerateOptionsStripsMarkdownFences(t *testing.T) {
	reasoning := new(MockReasoningPort)
	reasoning.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		"```json\n[{\"label\": \"Fenced option\", \"value\": \"fenced\", \"confidence\": 0.7}]\n```", nil)

	generator := NewSmartOptionGenerator(reasoning)
	question, err := generator.GenerateQuestion(context.Background(), segmentsRequirement(t), strategy.Context{})

	assert.NoError(t, err)
	assert.Len(t, question.Options, 1)
	assert.Equal(t, "fenced", question.Options[0].Value)
}

func TestGenerateOptionsMissingValueFallsBackToLabel(t *testing.T) {
	reasoning := new(MockReasoningPort)
	reasoning.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		`[{"label": "Plant operators", "confidence": 2.5}]`, nil)

	generator := NewSmartOptionGenerator(reasoning)
	question, err := generator.GenerateQuestion(context.Background(), segmentsRequirement(t), strategy.Context{})

	assert.NoError(t, err)
	assert.Equal(t, "Plant operators", question.Options[0].Value)
	// Out-of-range confidence is normalized
	assert.InDelta(t, 0.7, question.Options[0].Confidence, 1e-9)
}

func TestMalformedResponseUsesRequirementFallback(t *testing.T) {
	reasoning := new(MockReasoningPort)
	reasoning.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		"I think the best segments would be...", nil)

	generator := NewSmartOptionGenerator(reasoning)
	question, err := generator.GenerateQuestion(context.Background(), segmentsRequirement(t), strategy.Context{})

	assert.NoError(t, err)
	assert.Equal(t, "existing_customers", question.Options[0].Value)
}

func TestReasoningErrorUsesRequirementFallback(t *testing.T) {
	reasoning := new(MockReasoningPort)
	reasoning.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		"", fmt.Errorf("service unavailable"))

	generator := NewSmartOptionGenerator(reasoning)
	question, err := generator.GenerateQuestion(context.Background(), segmentsRequirement(t), strategy.Context{})

	assert.NoError(t, err)
	assert.NotEmpty(t, question.Options)
	assert.Equal(t, "existing_customers", question.Options[0].Value)
}

func TestUnknownRequirementGetsGenericFallback(t *testing.T) {
	reasoning := new(MockReasoningPort)
	reasoning.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		"", fmt.Errorf("service unavailable"))

	generator := NewSmartOptionGenerator(reasoning)
	req := catalog.Requirement{
		ID:               "unlisted_requirement",
		FallbackQuestion: "How should this factor be weighted?",
		QuestionType:     catalog.QuestionSingleSelect,
	}

	question, err := generator.GenerateQuestion(context.Background(), req, strategy.Context{})

	assert.NoError(t, err)
	assert.Len(t, question.Options, 3)
	assert.Equal(t, "unlisted_requirement_opt_0", question.Options[0].ID)
	assert.Equal(t, "high_priority", question.Options[0].Value)
}

func TestPromptIncludesProfileAndInsights(t *testing.T) {
	snap := strategy.Context{
		BusinessProfile: strategy.BusinessProfile{
			Name:     "Acme Tooling",
			Industry: "industrial software",
		},
		SynthesizedInsights: strategy.SynthesizedInsights{
			KeyStrengths:        []string{"Deep domain expertise"},
			CompetitivePosition: "Defensible niche",
		},
	}

	prompt := buildOptionPrompt(segmentsRequirement(t), snap)

	assert.Contains(t, prompt, "Acme Tooling")
	assert.Contains(t, prompt, "industrial software")
	assert.Contains(t, prompt, "Deep domain expertise")
	assert.Contains(t, prompt, "Defensible niche")
	assert.Contains(t, prompt, "JSON array")
}
