package transform

import (
	"sort"

	"stratcore/domain/strategy"
)

// DataType names a payload shape in the transformer table. Source types are
// the framework output types; TypeGenericText is the universal textual
// target any consumer of descriptive prose can accept.
type DataType string

const (
	TypeBMC         DataType = DataType(strategy.OutputBMC)
	TypeSWOT        DataType = DataType(strategy.OutputSWOT)
	TypePESTLE      DataType = DataType(strategy.OutputPESTLE)
	TypePorters     DataType = DataType(strategy.OutputPorters)
	TypeAnsoff      DataType = DataType(strategy.OutputAnsoff)
	TypeSegments    DataType = DataType(strategy.OutputSegments)
	TypeGenericText DataType = "generic_text"
)

// Func re-projects one framework's payload into another's expected shape.
// The optional context lets a transformer pull business attributes into the
// projected payload; implementations must not mutate either argument.
type Func func(payload map[string]any, snap *strategy.Context) map[string]any

// Transformer is one registered conversion between payload shapes
type Transformer struct {
	Source DataType
	Target DataType
	Name   string
	Apply  Func
}

// Info describes a registered transformation for introspection
type Info struct {
	Source DataType `json:"source"`
	Target DataType `json:"target"`
	Name   string   `json:"name"`
}

// Registry is a closed two-level lookup table (source → target →
// transformer). There is no transitive composition: a missing direct pair
// degrades to the source's generic-text transformer if one is registered.
type Registry struct {
	table map[DataType]map[DataType]Transformer
}

// NewRegistry builds a registry preloaded with the default transformer set
func NewRegistry() *Registry {
	r := &Registry{table: make(map[DataType]map[DataType]Transformer)}
	for _, t := range defaultTransformers() {
		r.Register(t)
	}
	return r
}

// Register adds or replaces a transformer for its (source, target) pair
func (r *Registry) Register(t Transformer) {
	targets, ok := r.table[t.Source]
	if !ok {
		targets = make(map[DataType]Transformer)
		r.table[t.Source] = targets
	}
	targets[t.Target] = t
}

// Get resolves the transformer for a (source, target) pair. Identity pairs
// need no transform and resolve to nil; so do pairs with no direct entry and
// no generic-text fallback.
func (r *Registry) Get(source, target DataType) *Transformer {
	if source == target {
		return nil
	}
	targets, ok := r.table[source]
	if !ok {
		return nil
	}
	if t, ok := targets[target]; ok {
		return &t
	}
	if t, ok := targets[TypeGenericText]; ok {
		return &t
	}
	return nil
}

// Transform applies the resolved transformer, passing the payload through
// unchanged when no path exists. Callers that need a hard failure instead of
// a no-op must check CanTransform first.
func (r *Registry) Transform(payload map[string]any, source, target DataType, snap *strategy.Context) map[string]any {
	t := r.Get(source, target)
	if t == nil {
		return payload
	}
	return t.Apply(payload, snap)
}

// CanTransform reports whether a path exists. Identity pairs are always
// transformable.
func (r *Registry) CanTransform(source, target DataType) bool {
	if source == target {
		return true
	}
	return r.Get(source, target) != nil
}

// List enumerates every registered (source, target, name) triple, sorted for
// stable introspection output.
func (r *Registry) List() []Info {
	out := []Info{}
	for source, targets := range r.table {
		for target, t := range targets {
			out = append(out, Info{Source: source, Target: target, Name: t.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}
