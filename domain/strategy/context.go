package strategy

import (
	"stratcore/domain/core"
)

// BusinessProfile holds free-form descriptive attributes of the business
// being planned for. Modules refine it in place as they run.
type BusinessProfile struct {
	Name          string `json:"name"`
	Industry      string `json:"industry"`
	Scale         string `json:"scale"`
	Geography     string `json:"geography"`
	BusinessModel string `json:"business_model,omitempty"`
}

// SynthesizedInsights are derived summary fields. Each field is overwritten,
// not appended, every time a contributing module's output arrives, so the
// struct always reflects the most recent module of each kind.
type SynthesizedInsights struct {
	KeyStrengths        []string `json:"key_strengths"`
	KeyWeaknesses       []string `json:"key_weaknesses"`
	KeyOpportunities    []string `json:"key_opportunities"`
	KeyThreats          []string `json:"key_threats"`
	TargetSegments      []string `json:"target_segments"`
	CompetitivePosition string   `json:"competitive_position"`
	GrowthStrategy      string   `json:"growth_strategy"`
	PriorityActions     []string `json:"priority_actions"`
}

// DecisionValue is an explicit human answer to a requirement. Populated only
// by user input, never inferred.
type DecisionValue struct {
	Values   []string `json:"values"`
	Multiple bool     `json:"multiple"`
}

// SingleDecision wraps one value
func SingleDecision(v string) DecisionValue {
	return DecisionValue{Values: []string{v}}
}

// MultiDecision wraps a list of values
func MultiDecision(vs []string) DecisionValue {
	return DecisionValue{Values: append([]string(nil), vs...), Multiple: true}
}

// IsEmpty reports whether the decision carries no values
func (d DecisionValue) IsEmpty() bool {
	return len(d.Values) == 0
}

// Metadata tracks the execution ledger and confidence for a session.
// ModulesExecuted is append-only and keeps duplicates in call order.
type Metadata struct {
	ModulesExecuted []core.ModuleID `json:"modules_executed"`
	LastUpdated     core.Timestamp  `json:"last_updated"`
	Confidence      float64         `json:"confidence"`
}

// Context is the per-session knowledge store. One instance is owned
// exclusively by the accumulator that created it; readers receive clones.
type Context struct {
	SessionID           core.SessionID                       `json:"session_id"`
	BusinessProfile     BusinessProfile                      `json:"business_profile"`
	AnalysisOutputs     map[FrameworkKey]map[string]any      `json:"analysis_outputs"`
	SynthesizedInsights SynthesizedInsights                  `json:"synthesized_insights"`
	UserDecisions       map[core.RequirementID]DecisionValue `json:"user_decisions"`
	Metadata            Metadata                             `json:"metadata"`
}

// NewContext creates an empty context for a session
func NewContext(sessionID core.SessionID, profile BusinessProfile) Context {
	return Context{
		SessionID:       sessionID,
		BusinessProfile: profile,
		AnalysisOutputs: make(map[FrameworkKey]map[string]any),
		UserDecisions:   make(map[core.RequirementID]DecisionValue),
		Metadata: Metadata{
			ModulesExecuted: []core.ModuleID{},
			LastUpdated:     core.Now(),
		},
	}
}

// Clone returns a deep copy of the context. Raw payloads are copied
// recursively so holders of a snapshot can never mutate the live context.
func (c Context) Clone() Context {
	out := c

	out.AnalysisOutputs = make(map[FrameworkKey]map[string]any, len(c.AnalysisOutputs))
	for k, payload := range c.AnalysisOutputs {
		out.AnalysisOutputs[k] = cloneMap(payload)
	}

	out.UserDecisions = make(map[core.RequirementID]DecisionValue, len(c.UserDecisions))
	for k, d := range c.UserDecisions {
		out.UserDecisions[k] = DecisionValue{
			Values:   append([]string(nil), d.Values...),
			Multiple: d.Multiple,
		}
	}

	out.Metadata.ModulesExecuted = append([]core.ModuleID(nil), c.Metadata.ModulesExecuted...)

	ins := &out.SynthesizedInsights
	ins.KeyStrengths = append([]string(nil), c.SynthesizedInsights.KeyStrengths...)
	ins.KeyWeaknesses = append([]string(nil), c.SynthesizedInsights.KeyWeaknesses...)
	ins.KeyOpportunities = append([]string(nil), c.SynthesizedInsights.KeyOpportunities...)
	ins.KeyThreats = append([]string(nil), c.SynthesizedInsights.KeyThreats...)
	ins.TargetSegments = append([]string(nil), c.SynthesizedInsights.TargetSegments...)
	ins.PriorityActions = append([]string(nil), c.SynthesizedInsights.PriorityActions...)

	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		// Scalars (string, float64, bool, nil) are immutable
		return v
	}
}
