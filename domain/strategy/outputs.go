package strategy

// FrameworkKey identifies the analysis-output slot a framework module
// writes into. Keys are unique per context; absence means "not yet run".
type FrameworkKey string

const (
	FrameworkBMC      FrameworkKey = "bmc"
	FrameworkSWOT     FrameworkKey = "swot"
	FrameworkPESTLE   FrameworkKey = "pestle"
	FrameworkPorters  FrameworkKey = "porters"
	FrameworkAnsoff   FrameworkKey = "ansoff"
	FrameworkSegments FrameworkKey = "segments"
)

// OutputType is the shape a framework module declares for its payload.
type OutputType string

const (
	OutputBMC      OutputType = "business_model_canvas"
	OutputSWOT     OutputType = "swot_analysis"
	OutputPESTLE   OutputType = "pestle_analysis"
	OutputPorters  OutputType = "porters_five_forces"
	OutputAnsoff   OutputType = "ansoff_matrix"
	OutputSegments OutputType = "customer_segments"
)

// outputKeys is the closed mapping from declared output types to storage
// keys. Unrecognized output types are an explicit "unknown" case: the
// execution ledger still records the module but nothing is stored.
var outputKeys = map[OutputType]FrameworkKey{
	OutputBMC:      FrameworkBMC,
	OutputSWOT:     FrameworkSWOT,
	OutputPESTLE:   FrameworkPESTLE,
	OutputPorters:  FrameworkPorters,
	OutputAnsoff:   FrameworkAnsoff,
	OutputSegments: FrameworkSegments,
}

// KeyFor resolves an output type to its storage key. The second return is
// false for unrecognized output types.
func KeyFor(outputType OutputType) (FrameworkKey, bool) {
	key, ok := outputKeys[outputType]
	return key, ok
}

// KnownOutputTypes lists every registered output type.
func KnownOutputTypes() []OutputType {
	out := make([]OutputType, 0, len(outputKeys))
	for t := range outputKeys {
		out = append(out, t)
	}
	return out
}
