package ports

import (
	"context"

	"stratcore/domain/catalog"
	"stratcore/domain/core"
	"stratcore/domain/strategy"
)

// SmartOption is one selectable answer for a gap-filling question
type SmartOption struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Value       string  `json:"value"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence"`
	Recommended bool    `json:"recommended"`
}

// GapFillerQuestion is the structure handed to the question-answer surface
type GapFillerQuestion struct {
	RequirementID core.RequirementID   `json:"requirement_id"`
	Question      string               `json:"question"`
	Type          catalog.QuestionType `json:"type"`
	Options       []SmartOption        `json:"options"`
	AllowCustom   bool                 `json:"allow_custom"`
}

// OptionGeneratorPort produces one context-aware question per requirement
// gap. Implementations may call an external reasoning service but must
// degrade to deterministic options on failure.
type OptionGeneratorPort interface {
	GenerateQuestion(ctx context.Context, req catalog.Requirement, snap strategy.Context) (*GapFillerQuestion, error)
}
