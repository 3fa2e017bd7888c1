package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/montanaflynn/stats"

	"stratcore/domain/catalog"
	"stratcore/domain/core"
	"stratcore/domain/strategy"
	"stratcore/ports"
)

const optionSystemContext = "You are a strategic planning assistant. Respond only with valid JSON."

// SmartOptionGenerator produces one question per requirement gap. Three
// requirement kinds have fixed menus and never touch the reasoning service;
// everything else is generated from the accumulated context with deterministic
// fallbacks on any failure.
type SmartOptionGenerator struct {
	reasoning ports.ReasoningPort
}

// NewSmartOptionGenerator creates a generator backed by a reasoning service
func NewSmartOptionGenerator(reasoning ports.ReasoningPort) *SmartOptionGenerator {
	return &SmartOptionGenerator{reasoning: reasoning}
}

// GenerateQuestion builds the question and option set for one requirement gap
func (g *SmartOptionGenerator) GenerateQuestion(ctx context.Context, req catalog.Requirement, snap strategy.Context) (*ports.GapFillerQuestion, error) {
	if options, ok := staticMenu(req.ID); ok {
		return g.question(req, options), nil
	}

	options, err := g.generateOptions(ctx, req, snap)
	if err != nil {
		log.Printf("[OptionGenerator] Falling back to deterministic options for %s: %v", req.ID, err)
		options = fallbackOptions(req.ID)
	}

	return g.question(req, options), nil
}

func (g *SmartOptionGenerator) question(req catalog.Requirement, options []ports.SmartOption) *ports.GapFillerQuestion {
	return &ports.GapFillerQuestion{
		RequirementID: req.ID,
		Question:      req.FallbackQuestion,
		Type:          req.QuestionType,
		Options:       markRecommended(options),
		AllowCustom:   true,
	}
}

func (g *SmartOptionGenerator) generateOptions(ctx context.Context, req catalog.Requirement, snap strategy.Context) ([]ports.SmartOption, error) {
	prompt := buildOptionPrompt(req, snap)

	content, err := g.reasoning.Complete(ctx, optionSystemContext, prompt)
	if err != nil {
		return nil, fmt.Errorf("reasoning call failed: %w", err)
	}

	options, err := parseOptions(content, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}
	return options, nil
}

func buildOptionPrompt(req catalog.Requirement, snap strategy.Context) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate 3-4 context-specific answer options for a strategic planning question.\n\n")
	fmt.Fprintf(&b, "Question: %s\n", req.FallbackQuestion)
	fmt.Fprintf(&b, "Requirement: %s (%s)\n\n", req.Name, req.Description)

	profile := snap.BusinessProfile
	fmt.Fprintf(&b, "Business: %s\nIndustry: %s\nScale: %s\nGeography: %s\n",
		profile.Name, profile.Industry, profile.Scale, profile.Geography)
	if profile.BusinessModel != "" {
		fmt.Fprintf(&b, "Business model: %s\n", profile.BusinessModel)
	}

	ins := snap.SynthesizedInsights
	if len(ins.KeyStrengths) > 0 {
		fmt.Fprintf(&b, "Key strengths: %s\n", strings.Join(ins.KeyStrengths, "; "))
	}
	if len(ins.KeyOpportunities) > 0 {
		fmt.Fprintf(&b, "Key opportunities: %s\n", strings.Join(ins.KeyOpportunities, "; "))
	}
	if len(ins.TargetSegments) > 0 {
		fmt.Fprintf(&b, "Target segments: %s\n", strings.Join(ins.TargetSegments, "; "))
	}
	if ins.CompetitivePosition != "" {
		fmt.Fprintf(&b, "Competitive position: %s\n", ins.CompetitivePosition)
	}
	if ins.GrowthStrategy != "" {
		fmt.Fprintf(&b, "Growth strategy: %s\n", ins.GrowthStrategy)
	}

	b.WriteString("\nRespond with a JSON array of options, each shaped as ")
	b.WriteString(`{"label": string, "value": string, "description": string, "confidence": number between 0 and 1}.`)

	return b.String()
}

// rawOption is the shape expected from the reasoning service
type rawOption struct {
	Label       string  `json:"label"`
	Value       string  `json:"value"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
	Recommended bool    `json:"recommended"`
}

// parseOptions accepts either a bare JSON array or an {options: [...]} wrapper
func parseOptions(content string, reqID core.RequirementID) ([]ports.SmartOption, error) {
	content = stripMarkdownFences(content)

	var raw []rawOption
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		var wrapper struct {
			Options []rawOption `json:"options"`
		}
		if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
			return nil, fmt.Errorf("content is neither an option array nor an options wrapper: %w", err)
		}
		raw = wrapper.Options
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("reasoning service returned no options")
	}

	options := make([]ports.SmartOption, 0, len(raw))
	for i, opt := range raw {
		if opt.Label == "" {
			continue
		}
		value := opt.Value
		if value == "" {
			value = opt.Label
		}
		confidence := opt.Confidence
		if confidence <= 0 || confidence > 1 {
			confidence = 0.7
		}
		options = append(options, ports.SmartOption{
			ID:          optionID(reqID, i),
			Label:       opt.Label,
			Value:       value,
			Description: opt.Description,
			Confidence:  confidence,
			Recommended: opt.Recommended,
		})
	}

	if len(options) == 0 {
		return nil, fmt.Errorf("no usable options in reasoning response")
	}
	return options, nil
}

func stripMarkdownFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

// markRecommended ensures exactly one leading recommendation exists. When the
// source marked none, the option whose confidence clears the set's mean by the
// widest margin is promoted.
func markRecommended(options []ports.SmartOption) []ports.SmartOption {
	for _, opt := range options {
		if opt.Recommended {
			return options
		}
	}
	if len(options) == 0 {
		return options
	}

	confidences := make([]float64, len(options))
	for i, opt := range options {
		confidences[i] = opt.Confidence
	}

	mean, err := stats.Mean(confidences)
	if err != nil {
		options[0].Recommended = true
		return options
	}

	best := 0
	for i, c := range confidences {
		if c > confidences[best] {
			best = i
		}
	}
	if confidences[best] >= mean {
		options[best].Recommended = true
	}
	return options
}

func optionID(reqID core.RequirementID, index int) string {
	return fmt.Sprintf("%s_opt_%d", reqID, index)
}

// staticMenu returns the fixed menu for requirement kinds whose options never
// depend on context. Confidence and the recommended choice are pre-assigned.
func staticMenu(reqID core.RequirementID) ([]ports.SmartOption, bool) {
	switch reqID {
	case catalog.ReqTimeline:
		return []ports.SmartOption{
			{ID: optionID(reqID, 0), Label: "3 months", Value: "3_months", Description: "Short sprint focused on immediate wins", Confidence: 0.8},
			{ID: optionID(reqID, 1), Label: "6 months", Value: "6_months", Description: "Balanced horizon for most initiatives", Confidence: 0.9, Recommended: true},
			{ID: optionID(reqID, 2), Label: "12 months", Value: "12_months", Description: "Full-year program with room for larger bets", Confidence: 0.85},
			{ID: optionID(reqID, 3), Label: "18+ months", Value: "18_months_plus", Description: "Long-range transformation horizon", Confidence: 0.7},
		}, true
	case catalog.ReqBudgetRange:
		return []ports.SmartOption{
			{ID: optionID(reqID, 0), Label: "Minimal", Value: "minimal", Description: "Bootstrap-level spend, mostly existing resources", Confidence: 0.75},
			{ID: optionID(reqID, 1), Label: "Moderate", Value: "moderate", Description: "Dedicated budget for a focused program", Confidence: 0.9, Recommended: true},
			{ID: optionID(reqID, 2), Label: "Substantial", Value: "substantial", Description: "Significant investment across several workstreams", Confidence: 0.8},
			{ID: optionID(reqID, 3), Label: "Large", Value: "large", Description: "Major strategic investment with executive sponsorship", Confidence: 0.65},
		}, true
	case catalog.ReqRiskTolerance:
		return []ports.SmartOption{
			{ID: optionID(reqID, 0), Label: "Conservative", Value: "conservative", Description: "Protect the core business, take proven paths", Confidence: 0.8},
			{ID: optionID(reqID, 1), Label: "Balanced", Value: "balanced", Description: "Mix proven moves with a few calculated bets", Confidence: 0.9, Recommended: true},
			{ID: optionID(reqID, 2), Label: "Aggressive", Value: "aggressive", Description: "Prioritize speed and upside over downside protection", Confidence: 0.7},
		}, true
	}
	return nil, false
}

// fallbackOptions returns the deterministic option list used when generation
// fails. Unrecognized requirement ids get a generic three-option menu.
func fallbackOptions(reqID core.RequirementID) []ports.SmartOption {
	switch reqID {
	case catalog.ReqTargetSegments:
		return []ports.SmartOption{
			{ID: optionID(reqID, 0), Label: "Existing customers", Value: "existing_customers", Description: "Deepen relationships with the current base", Confidence: 0.8},
			{ID: optionID(reqID, 1), Label: "Adjacent segments", Value: "adjacent_segments", Description: "Expand to customers similar to the current base", Confidence: 0.7},
			{ID: optionID(reqID, 2), Label: "New markets", Value: "new_markets", Description: "Pursue segments the business has not served before", Confidence: 0.6},
		}
	case catalog.ReqValueProposition:
		return []ports.SmartOption{
			{ID: optionID(reqID, 0), Label: "Cost leadership", Value: "cost_leadership", Description: "Win on price and efficiency", Confidence: 0.7},
			{ID: optionID(reqID, 1), Label: "Differentiation", Value: "differentiation", Description: "Win on unique product or service qualities", Confidence: 0.8},
			{ID: optionID(reqID, 2), Label: "Customer intimacy", Value: "customer_intimacy", Description: "Win on tailored service and relationships", Confidence: 0.7},
		}
	case catalog.ReqCompetitiveStrategy:
		return []ports.SmartOption{
			{ID: optionID(reqID, 0), Label: "Defend position", Value: "defend_position", Description: "Protect current share against challengers", Confidence: 0.75},
			{ID: optionID(reqID, 1), Label: "Challenge leaders", Value: "challenge_leaders", Description: "Take share from established players", Confidence: 0.7},
			{ID: optionID(reqID, 2), Label: "Find a niche", Value: "niche_focus", Description: "Dominate a narrow segment competitors ignore", Confidence: 0.8},
		}
	case catalog.ReqGrowthStrategy:
		return []ports.SmartOption{
			{ID: optionID(reqID, 0), Label: "Market penetration", Value: "market_penetration", Description: "Sell more of current offerings to current markets", Confidence: 0.8},
			{ID: optionID(reqID, 1), Label: "Market development", Value: "market_development", Description: "Take current offerings to new markets", Confidence: 0.7},
			{ID: optionID(reqID, 2), Label: "Product development", Value: "product_development", Description: "Build new offerings for current markets", Confidence: 0.7},
		}
	case catalog.ReqSuccessMetrics:
		return []ports.SmartOption{
			{ID: optionID(reqID, 0), Label: "Revenue growth", Value: "revenue_growth", Description: "Top-line growth over the planning horizon", Confidence: 0.85},
			{ID: optionID(reqID, 1), Label: "Customer acquisition", Value: "customer_acquisition", Description: "New customers or accounts won", Confidence: 0.75},
			{ID: optionID(reqID, 2), Label: "Market share", Value: "market_share", Description: "Share captured within the target segments", Confidence: 0.7},
			{ID: optionID(reqID, 3), Label: "Profitability", Value: "profitability", Description: "Margin improvement over the horizon", Confidence: 0.7},
		}
	case catalog.ReqMarketContext:
		return []ports.SmartOption{
			{ID: optionID(reqID, 0), Label: "Stable market", Value: "stable_market", Description: "No major external shifts expected", Confidence: 0.7},
			{ID: optionID(reqID, 1), Label: "Growing market", Value: "growing_market", Description: "Demand expanding across the category", Confidence: 0.7},
			{ID: optionID(reqID, 2), Label: "Disrupted market", Value: "disrupted_market", Description: "Technology or regulation reshaping the category", Confidence: 0.65},
		}
	case catalog.ReqTeamCapacity:
		return []ports.SmartOption{
			{ID: optionID(reqID, 0), Label: "Limited", Value: "limited", Description: "Small team with competing priorities", Confidence: 0.75},
			{ID: optionID(reqID, 1), Label: "Dedicated", Value: "dedicated", Description: "A team can focus on this program", Confidence: 0.8},
			{ID: optionID(reqID, 2), Label: "Scalable", Value: "scalable", Description: "Capacity can grow with the program", Confidence: 0.65},
		}
	}

	// Generic menu for requirement ids the fallback table does not know
	return []ports.SmartOption{
		{ID: optionID(reqID, 0), Label: "High priority", Value: "high_priority", Description: "Treat this as a primary driver of the plan", Confidence: 0.7},
		{ID: optionID(reqID, 1), Label: "Medium priority", Value: "medium_priority", Description: "Account for this without centering the plan on it", Confidence: 0.7},
		{ID: optionID(reqID, 2), Label: "Low priority", Value: "low_priority", Description: "Note this but defer detailed planning", Confidence: 0.6},
	}
}
