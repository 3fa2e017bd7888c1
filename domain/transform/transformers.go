package transform

import (
	"fmt"
	"strings"

	"stratcore/domain/strategy"
)

// defaultTransformers is the hand-registered conversion table. Each entry is
// a pure re-projection of one framework's output fields into the shape
// another framework expects, plus a per-source generic-text summarizer so
// any output can feed a consumer that only wants descriptive prose.
func defaultTransformers() []Transformer {
	return []Transformer{
		{Source: TypeBMC, Target: TypeSWOT, Name: "bmc_to_swot", Apply: bmcToSWOT},
		{Source: TypeBMC, Target: TypeSegments, Name: "bmc_to_segments", Apply: bmcToSegments},
		{Source: TypeSWOT, Target: TypeAnsoff, Name: "swot_to_ansoff", Apply: swotToAnsoff},
		{Source: TypePorters, Target: TypeSWOT, Name: "porters_to_swot", Apply: portersToSWOT},

		{Source: TypeBMC, Target: TypeGenericText, Name: "bmc_to_generic_text", Apply: bmcToText},
		{Source: TypeSWOT, Target: TypeGenericText, Name: "swot_to_generic_text", Apply: swotToText},
		{Source: TypePESTLE, Target: TypeGenericText, Name: "pestle_to_generic_text", Apply: pestleToText},
		{Source: TypePorters, Target: TypeGenericText, Name: "porters_to_generic_text", Apply: portersToText},
		{Source: TypeAnsoff, Target: TypeGenericText, Name: "ansoff_to_generic_text", Apply: ansoffToText},
		{Source: TypeSegments, Target: TypeGenericText, Name: "segments_to_generic_text", Apply: segmentsToText},
	}
}

// bmcToSWOT seeds a SWOT input from canvas building blocks: value
// propositions and key partners read as strengths, cost structure as a
// weakness candidate.
func bmcToSWOT(payload map[string]any, _ *strategy.Context) map[string]any {
	strengths := strategy.StringSlice(payload, "value_propositions")
	for _, partner := range strategy.Top(strategy.StringSlice(payload, "key_partners"), 3) {
		strengths = append(strengths, "Partnership: "+partner)
	}

	weaknesses := []string{}
	for _, cost := range strategy.Top(strategy.StringSlice(payload, "cost_structure"), 3) {
		weaknesses = append(weaknesses, "Cost pressure: "+cost)
	}

	return map[string]any{
		"strengths":     toAnySlice(strengths),
		"weaknesses":    toAnySlice(weaknesses),
		"opportunities": toAnySlice(strategy.StringSlice(payload, "customer_segments")),
		"threats":       toAnySlice([]string{}),
	}
}

// bmcToSegments projects the canvas customer-segment block into the shape
// the segment-discovery module emits.
func bmcToSegments(payload map[string]any, _ *strategy.Context) map[string]any {
	names := strategy.NamedStrings(payload, "customer_segments")
	segments := make([]any, 0, len(names))
	for _, name := range names {
		segments = append(segments, map[string]any{"name": name})
	}
	return map[string]any{"segments": segments}
}

// swotToAnsoff turns SWOT opportunities and strengths into growth-posture
// hints for the Ansoff matrix.
func swotToAnsoff(payload map[string]any, _ *strategy.Context) map[string]any {
	return map[string]any{
		"growth_drivers":   toAnySlice(strategy.FactorStrings(payload, "opportunities")),
		"existing_assets":  toAnySlice(strategy.FactorStrings(payload, "strengths")),
		"known_weaknesses": toAnySlice(strategy.FactorStrings(payload, "weaknesses")),
	}
}

// portersToSWOT reads five-forces pressure as SWOT threat seeds
func portersToSWOT(payload map[string]any, _ *strategy.Context) map[string]any {
	threats := []string{}
	for _, force := range []string{"competitive_rivalry", "threat_of_new_entrants", "threat_of_substitutes", "buyer_power", "supplier_power"} {
		forceMap := strategy.MapField(payload, force)
		if forceMap == nil {
			continue
		}
		if strings.EqualFold(strategy.StringField(forceMap, "intensity"), "high") {
			threats = append(threats, forceName(force)+": "+strategy.StringField(forceMap, "summary"))
		}
	}
	return map[string]any{
		"strengths":     toAnySlice([]string{}),
		"weaknesses":    toAnySlice([]string{}),
		"opportunities": toAnySlice([]string{}),
		"threats":       toAnySlice(threats),
	}
}

func forceName(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Generic-text summarizers. Output shape is {"text": "...", "source": type}.

func bmcToText(payload map[string]any, snap *strategy.Context) map[string]any {
	var b strings.Builder
	writeBusinessLine(&b, snap)
	writeList(&b, "Value propositions", strategy.StringSlice(payload, "value_propositions"))
	writeList(&b, "Customer segments", strategy.NamedStrings(payload, "customer_segments"))
	writeList(&b, "Revenue streams", strategy.StringSlice(payload, "revenue_streams"))
	writeList(&b, "Key partners", strategy.StringSlice(payload, "key_partners"))
	return textPayload(TypeBMC, b.String())
}

func swotToText(payload map[string]any, snap *strategy.Context) map[string]any {
	var b strings.Builder
	writeBusinessLine(&b, snap)
	writeList(&b, "Strengths", strategy.FactorStrings(payload, "strengths"))
	writeList(&b, "Weaknesses", strategy.FactorStrings(payload, "weaknesses"))
	writeList(&b, "Opportunities", strategy.FactorStrings(payload, "opportunities"))
	writeList(&b, "Threats", strategy.FactorStrings(payload, "threats"))
	return textPayload(TypeSWOT, b.String())
}

func pestleToText(payload map[string]any, snap *strategy.Context) map[string]any {
	var b strings.Builder
	writeBusinessLine(&b, snap)
	for _, dim := range []string{"political", "economic", "social", "technological", "legal", "environmental"} {
		writeList(&b, titleCase(dim), strategy.FactorStrings(payload, dim))
	}
	return textPayload(TypePESTLE, b.String())
}

func portersToText(payload map[string]any, snap *strategy.Context) map[string]any {
	var b strings.Builder
	writeBusinessLine(&b, snap)
	for _, force := range []string{"competitive_rivalry", "threat_of_new_entrants", "threat_of_substitutes", "buyer_power", "supplier_power"} {
		forceMap := strategy.MapField(payload, force)
		if forceMap == nil {
			continue
		}
		fmt.Fprintf(&b, "%s (%s): %s\n", forceName(force),
			strategy.StringField(forceMap, "intensity"), strategy.StringField(forceMap, "summary"))
	}
	if overall := strategy.StringField(payload, "overall_assessment"); overall != "" {
		fmt.Fprintf(&b, "Overall: %s\n", overall)
	}
	return textPayload(TypePorters, b.String())
}

func ansoffToText(payload map[string]any, snap *strategy.Context) map[string]any {
	var b strings.Builder
	writeBusinessLine(&b, snap)
	for _, quadrant := range []string{"market_penetration", "market_development", "product_development", "diversification"} {
		writeList(&b, forceName(quadrant), strategy.StringSlice(payload, quadrant))
	}
	if rec := strategy.MapField(payload, "recommendation"); rec != nil {
		fmt.Fprintf(&b, "Recommended strategy: %s\n", strategy.StringField(rec, "primary_strategy"))
	}
	return textPayload(TypeAnsoff, b.String())
}

func segmentsToText(payload map[string]any, snap *strategy.Context) map[string]any {
	var b strings.Builder
	writeBusinessLine(&b, snap)
	writeList(&b, "Customer segments", strategy.NamedStrings(payload, "segments"))
	return textPayload(TypeSegments, b.String())
}

func writeBusinessLine(b *strings.Builder, snap *strategy.Context) {
	if snap == nil || snap.BusinessProfile.Name == "" {
		return
	}
	fmt.Fprintf(b, "Business: %s (%s, %s)\n", snap.BusinessProfile.Name,
		snap.BusinessProfile.Industry, snap.BusinessProfile.Scale)
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, "; "))
}

func textPayload(source DataType, text string) map[string]any {
	return map[string]any{
		"text":   strings.TrimSpace(text),
		"source": string(source),
	}
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
