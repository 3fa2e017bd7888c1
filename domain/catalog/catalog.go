package catalog

import (
	"stratcore/domain/core"
)

// Importance defines how much a requirement matters to plan generation
type Importance string

const (
	ImportanceCritical  Importance = "critical"
	ImportanceImportant Importance = "important"
	ImportanceOptional  Importance = "optional"
)

// Weight returns the scoring weight for an importance tier
func (i Importance) Weight() int {
	switch i {
	case ImportanceCritical:
		return 3
	case ImportanceImportant:
		return 2
	default:
		return 1
	}
}

// QuestionType describes the UI control a gap-filling question should render
type QuestionType string

const (
	QuestionSingleSelect QuestionType = "single_select"
	QuestionMultiSelect  QuestionType = "multi_select"
	QuestionText         QuestionType = "text"
)

// Requirement is one piece of information the downstream plan generator
// needs. Entries are static; nothing mutates them at runtime.
type Requirement struct {
	ID               core.RequirementID `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Importance       Importance         `json:"importance"`
	Sources          []core.ModuleID    `json:"sources"`
	FallbackQuestion string             `json:"fallback_question"`
	QuestionType     QuestionType       `json:"question_type"`
	AllowMultiple    bool               `json:"allow_multiple"`
}

// Well-known requirement IDs. A handful of these get special-cased
// satisfaction checks against synthesized insights.
const (
	ReqTargetSegments      core.RequirementID = "target_segments"
	ReqValueProposition    core.RequirementID = "value_proposition"
	ReqTimeline            core.RequirementID = "timeline"
	ReqBudgetRange         core.RequirementID = "budget_range"
	ReqCompetitiveStrategy core.RequirementID = "competitive_strategy"
	ReqGrowthStrategy      core.RequirementID = "growth_strategy"
	ReqRiskTolerance       core.RequirementID = "risk_tolerance"
	ReqSuccessMetrics      core.RequirementID = "success_metrics"
	ReqMarketContext       core.RequirementID = "market_context"
	ReqTeamCapacity        core.RequirementID = "team_capacity"
)

// requirements is the closed catalog of what plan generation consumes.
var requirements = []Requirement{
	{
		ID:               ReqTargetSegments,
		Name:             "Target customer segments",
		Description:      "Which customer segments the execution plan should prioritize",
		Importance:       ImportanceCritical,
		Sources:          []core.ModuleID{"segment-discovery", "bmc-generator"},
		FallbackQuestion: "Which customer segments should this plan focus on?",
		QuestionType:     QuestionMultiSelect,
		AllowMultiple:    true,
	},
	{
		ID:               ReqValueProposition,
		Name:             "Value proposition",
		Description:      "The core value the business delivers to its customers",
		Importance:       ImportanceCritical,
		Sources:          []core.ModuleID{"bmc-generator"},
		FallbackQuestion: "How would you describe your core value proposition?",
		QuestionType:     QuestionText,
	},
	{
		ID:               ReqTimeline,
		Name:             "Planning horizon",
		Description:      "How far out the execution plan should reach",
		Importance:       ImportanceCritical,
		Sources:          []core.ModuleID{},
		FallbackQuestion: "What planning horizon should the program target?",
		QuestionType:     QuestionSingleSelect,
	},
	{
		ID:               ReqBudgetRange,
		Name:             "Budget range",
		Description:      "The rough budget envelope available for execution",
		Importance:       ImportanceCritical,
		Sources:          []core.ModuleID{},
		FallbackQuestion: "What budget range is available for this program?",
		QuestionType:     QuestionSingleSelect,
	},
	{
		ID:               ReqCompetitiveStrategy,
		Name:             "Competitive strategy",
		Description:      "How the business positions itself against competitive pressure",
		Importance:       ImportanceImportant,
		Sources:          []core.ModuleID{"porters-analyzer", "swot-analyzer"},
		FallbackQuestion: "How do you plan to position against your main competitors?",
		QuestionType:     QuestionSingleSelect,
	},
	{
		ID:               ReqGrowthStrategy,
		Name:             "Growth strategy",
		Description:      "The primary growth direction the plan should pursue",
		Importance:       ImportanceImportant,
		Sources:          []core.ModuleID{"ansoff-analyzer"},
		FallbackQuestion: "What growth direction should the plan prioritize?",
		QuestionType:     QuestionSingleSelect,
	},
	{
		ID:               ReqRiskTolerance,
		Name:             "Risk tolerance",
		Description:      "How much execution risk the organization accepts",
		Importance:       ImportanceImportant,
		Sources:          []core.ModuleID{},
		FallbackQuestion: "How much risk are you comfortable taking on?",
		QuestionType:     QuestionSingleSelect,
	},
	{
		ID:               ReqSuccessMetrics,
		Name:             "Success metrics",
		Description:      "The measures that will define success for the program",
		Importance:       ImportanceImportant,
		Sources:          []core.ModuleID{},
		FallbackQuestion: "Which metrics will you use to judge success?",
		QuestionType:     QuestionMultiSelect,
		AllowMultiple:    true,
	},
	{
		ID:               ReqMarketContext,
		Name:             "Market context",
		Description:      "External market and regulatory conditions shaping the plan",
		Importance:       ImportanceOptional,
		Sources:          []core.ModuleID{"pestle-analyzer", "porters-analyzer"},
		FallbackQuestion: "Are there market or regulatory conditions the plan must account for?",
		QuestionType:     QuestionText,
	},
	{
		ID:               ReqTeamCapacity,
		Name:             "Team capacity",
		Description:      "The execution capacity of the current team",
		Importance:       ImportanceOptional,
		Sources:          []core.ModuleID{},
		FallbackQuestion: "How much team capacity can this program draw on?",
		QuestionType:     QuestionSingleSelect,
	},
}

// All returns the full requirement catalog. Callers receive a copy so the
// static table stays immutable.
func All() []Requirement {
	out := make([]Requirement, len(requirements))
	copy(out, requirements)
	return out
}

// ByID looks up a single requirement
func ByID(id core.RequirementID) (Requirement, bool) {
	for _, r := range requirements {
		if r.ID == id {
			return r, true
		}
	}
	return Requirement{}, false
}

// TotalWeight sums the scoring weight of every catalog entry
func TotalWeight() int {
	total := 0
	for _, r := range requirements {
		total += r.Importance.Weight()
	}
	return total
}
