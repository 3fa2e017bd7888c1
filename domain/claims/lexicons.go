package claims

// Lexicons are plain data so thresholds and word lists stay independently
// testable and tunable without touching classifier control flow.

// Lexicon holds the scoring vocabulary for one claim category. Keywords
// score 1 point per match, phrases 2.
type Lexicon struct {
	Keywords []string
	Phrases  []string
}

var internalLexicon = Lexicon{
	Keywords: []string{
		"we", "our", "us", "team", "staff", "employee", "employees",
		"internal", "process", "processes", "operations", "operational",
		"workflow", "payroll", "hiring", "culture", "department",
		"revenue", "costs", "margin", "inventory", "capacity",
	},
	Phrases: []string{
		"our company", "our business", "our team", "our product",
		"our customers", "in-house", "internal process", "head count",
		"operating model", "cost structure",
	},
}

var externalLexicon = Lexicon{
	Keywords: []string{
		"market", "industry", "competitor", "competitors", "competition",
		"customer", "customers", "consumer", "consumers", "demand",
		"regulation", "regulatory", "economy", "economic", "trend",
		"trends", "sector", "supplier", "suppliers", "tariff",
	},
	Phrases: []string{
		"market share", "market size", "industry trend", "industry average",
		"growth rate", "target market", "competitive landscape",
		"consumer behavior", "supply chain", "macroeconomic conditions",
	},
}

var frameworkLexicon = Lexicon{
	Keywords: []string{
		"strength", "strengths", "weakness", "weaknesses", "opportunity",
		"opportunities", "threat", "threats", "strategy", "strategic",
		"positioning", "differentiation", "segment", "segmentation",
		"diversification", "canvas", "analysis", "matrix", "framework",
		"synergy",
	},
	Phrases: []string{
		"swot analysis", "business model", "value proposition",
		"five forces", "competitive advantage", "market penetration",
		"product development", "market development", "porter's five",
		"ansoff matrix",
	},
}

// Tunable scoring constants. Sentences whose best score falls below
// minimumScore are dropped entirely.
const (
	keywordWeight  = 1.0
	phraseWeight   = 2.0
	scoreDivisor   = 3.0
	minimumScore   = 0.5
	maxEntities    = 5
	topicWordLimit = 8
	minSentenceLen = 10
)

// entityStoplist filters pronouns and determiners out of extracted
// capitalized tokens.
var entityStoplist = map[string]struct{}{
	"i": {}, "we": {}, "our": {}, "us": {}, "you": {}, "your": {},
	"it": {}, "its": {}, "they": {}, "their": {}, "them": {},
	"the": {}, "a": {}, "an": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "there": {}, "however": {}, "also": {},
}
