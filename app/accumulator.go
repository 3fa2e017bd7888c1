package app

import (
	"log"

	"stratcore/domain/core"
	"stratcore/domain/strategy"
)

const (
	baseConfidence      = 0.4
	perModuleConfidence = 0.08
	decisionBonus       = 0.1
	maxConfidence       = 0.95
)

// Accumulator owns the live strategic context for one planning session.
// All mutation goes through it; readers only ever get snapshots.
type Accumulator struct {
	context       strategy.Context
	decisionBonus bool
}

// NewAccumulator starts an empty context for a session
func NewAccumulator(sessionID core.SessionID, profile strategy.BusinessProfile) *Accumulator {
	return &Accumulator{
		context: strategy.NewContext(sessionID, profile),
	}
}

// Rehydrate wraps a persisted context in a fresh accumulator. The decision
// bonus is considered spent if any decisions were recorded.
func Rehydrate(sctx strategy.Context) *Accumulator {
	return &Accumulator{
		context:       sctx.Clone(),
		decisionBonus: len(sctx.UserDecisions) > 0,
	}
}

// Ingest records a framework module run. The execution ledger always grows,
// even for repeated runs or unrecognized output types; only recognized
// payloads are stored and synthesized into insights.
func (a *Accumulator) Ingest(moduleID core.ModuleID, outputType strategy.OutputType, payload map[string]any) {
	a.context.Metadata.ModulesExecuted = append(a.context.Metadata.ModulesExecuted, moduleID)

	key, known := strategy.KeyFor(outputType)
	if known {
		a.context.AnalysisOutputs[key] = payload
		synthesize(&a.context, key, payload)
	} else {
		log.Printf("[Accumulator] Unknown output type %q from module %s, payload not stored", outputType, moduleID)
	}

	a.refreshConfidence()
	a.context.Metadata.LastUpdated = core.Now()
}

// RecordUserDecision stores an explicit user answer for a requirement.
// Empty decisions are ignored so a blank answer cannot mask a gap.
func (a *Accumulator) RecordUserDecision(reqID core.RequirementID, decision strategy.DecisionValue) {
	if decision.IsEmpty() {
		return
	}
	a.context.UserDecisions[reqID] = decision
	a.refreshConfidence()
	a.context.Metadata.LastUpdated = core.Now()
}

// Snapshot returns a deep copy of the current context
func (a *Accumulator) Snapshot() strategy.Context {
	return a.context.Clone()
}

// SessionID returns the owning session's ID
func (a *Accumulator) SessionID() core.SessionID {
	return a.context.SessionID
}

// HasExecuted reports whether a module appears in the execution ledger
func (a *Accumulator) HasExecuted(moduleID core.ModuleID) bool {
	for _, executed := range a.context.Metadata.ModulesExecuted {
		if executed == moduleID {
			return true
		}
	}
	return false
}

// ExecutedModules returns a copy of the execution ledger in call order
func (a *Accumulator) ExecutedModules() []core.ModuleID {
	return append([]core.ModuleID(nil), a.context.Metadata.ModulesExecuted...)
}

// refreshConfidence recomputes session confidence from the ledger length,
// with a one-time bonus once the user has contributed any decision.
func (a *Accumulator) refreshConfidence() {
	n := len(a.context.Metadata.ModulesExecuted)
	confidence := baseConfidence + perModuleConfidence*float64(n)
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	if len(a.context.UserDecisions) > 0 && !a.decisionBonus {
		a.decisionBonus = true
	}
	if a.decisionBonus {
		confidence += decisionBonus
		if confidence > maxConfidence {
			confidence = maxConfidence
		}
	}

	a.context.Metadata.Confidence = confidence
}
