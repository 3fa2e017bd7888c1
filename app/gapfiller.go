package app

import (
	"context"
	"log"
	"strings"

	"stratcore/domain/catalog"
	"stratcore/domain/core"
	"stratcore/domain/gaps"
	"stratcore/domain/strategy"
	"stratcore/ports"
)

// customAnswerPrefix marks an answer the user typed instead of picking an
// option. The remainder after the prefix is stored verbatim.
const customAnswerPrefix = "custom:"

// GapFiller decides whether a session has enough context for plan generation
// and drives the question loop when it does not.
type GapFiller struct {
	generator ports.OptionGeneratorPort
}

// NewGapFiller creates a gap filler backed by an option generator
func NewGapFiller(generator ports.OptionGeneratorPort) *GapFiller {
	return &GapFiller{generator: generator}
}

// GapAnalysisResult is the full outcome of a readiness check
type GapAnalysisResult struct {
	Analysis               gaps.Analysis             `json:"analysis"`
	Questions              []ports.GapFillerQuestion `json:"questions"`
	RequiresUserInput      bool                      `json:"requires_user_input"`
	CanProceedWithoutInput bool                      `json:"can_proceed_without_input"`
}

// Analyze evaluates a context snapshot against the full requirement catalog
func (f *GapFiller) Analyze(snap strategy.Context) gaps.Analysis {
	return gaps.Analyze(snap, catalog.All())
}

// AnalyzeAndPrepare is the top-level readiness entry point. Ready sessions
// return immediately with no questions. Otherwise one question is generated
// per surfaced gap; a failure for an individual gap drops that question and
// never fails the whole operation.
func (f *GapFiller) AnalyzeAndPrepare(ctx context.Context, acc *Accumulator) *GapAnalysisResult {
	snap := acc.Snapshot()
	analysis := f.Analyze(snap)

	result := &GapAnalysisResult{
		Analysis:               analysis,
		Questions:              []ports.GapFillerQuestion{},
		RequiresUserInput:      len(analysis.CriticalGaps) > 0,
		CanProceedWithoutInput: analysis.OverallReadiness != gaps.ReadinessInsufficient,
	}

	if analysis.OverallReadiness == gaps.ReadinessReady {
		return result
	}

	for _, req := range gaps.ForUserInput(analysis) {
		question, err := f.generator.GenerateQuestion(ctx, req, snap)
		if err != nil {
			log.Printf("[GapFiller] Skipping question for %s: %v", req.ID, err)
			continue
		}
		result.Questions = append(result.Questions, *question)
	}

	return result
}

// ApplyUserAnswers resolves each answer against the generated questions and
// records the resolved values as user decisions. Array answers are resolved
// element-wise.
func (f *GapFiller) ApplyUserAnswers(acc *Accumulator, answers map[core.RequirementID]any, questions []ports.GapFillerQuestion) {
	for reqID, answer := range answers {
		switch t := answer.(type) {
		case string:
			resolved := resolveAnswer(questions, reqID, t)
			if resolved != "" {
				acc.RecordUserDecision(reqID, strategy.SingleDecision(resolved))
			}
		case []string:
			acc.RecordUserDecision(reqID, strategy.MultiDecision(resolveAll(questions, reqID, t)))
		case []any:
			values := make([]string, 0, len(t))
			for _, e := range t {
				if s, ok := e.(string); ok {
					values = append(values, s)
				}
			}
			acc.RecordUserDecision(reqID, strategy.MultiDecision(resolveAll(questions, reqID, values)))
		default:
			log.Printf("[GapFiller] Ignoring answer for %s with unsupported type %T", reqID, answer)
		}
	}
}

// Status produces the presentational readiness summary for an analysis
func (f *GapFiller) Status(analysis gaps.Analysis) gaps.Status {
	return gaps.StatusOf(analysis)
}

func resolveAll(questions []ports.GapFillerQuestion, reqID core.RequirementID, raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if resolved := resolveAnswer(questions, reqID, r); resolved != "" {
			out = append(out, resolved)
		}
	}
	return out
}

// resolveAnswer maps one raw answer to its stored value: custom answers have
// their prefix stripped, option ids resolve to the option's value, and
// anything else passes through as-is.
func resolveAnswer(questions []ports.GapFillerQuestion, reqID core.RequirementID, raw string) string {
	if strings.HasPrefix(raw, customAnswerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(raw, customAnswerPrefix))
	}

	for _, q := range questions {
		if q.RequirementID != reqID {
			continue
		}
		for _, opt := range q.Options {
			if opt.ID == raw {
				return opt.Value
			}
		}
	}

	return raw
}
