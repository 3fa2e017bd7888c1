package claims

import (
	"strings"
	"unicode"

	"gonum.org/v1/gonum/floats"

	"stratcore/domain/core"
)

// Category routes a claim to the knowledge source that can verify it
type Category string

const (
	CategoryInternal  Category = "internal"
	CategoryExternal  Category = "external"
	CategoryFramework Category = "framework"
)

// ValidationSource names the downstream collaborator a claim should be
// checked against before reasoning over it.
type ValidationSource string

const (
	SourceKnowledgeBase ValidationSource = "knowledge_base"
	SourceWebSearch     ValidationSource = "web_search"
	SourceNone          ValidationSource = "none"
)

// Classification is the routing verdict for one sentence-level claim
type Classification struct {
	Text               string           `json:"text"`
	Category           Category         `json:"category"`
	Topic              string           `json:"topic"`
	Entities           []string         `json:"entities"`
	Score              float64          `json:"score"`
	RequiresValidation bool             `json:"requires_validation"`
	ValidationSource   ValidationSource `json:"validation_source"`
}

// tieOrder fixes which category wins on equal scores
var tieOrder = []Category{CategoryInternal, CategoryExternal, CategoryFramework}

// Classify splits free text into sentences and classifies each against the
// three lexicons. Sentences scoring below the minimum on every category are
// dropped; if nothing classifies, a single synthetic framework claim
// covering the whole input is returned so callers always get one result.
func Classify(input string) ([]Classification, error) {
	if strings.TrimSpace(input) == "" {
		return nil, core.ErrEmptyClaimInput
	}

	results := []Classification{}
	for _, sentence := range splitSentences(input) {
		if c, ok := classifySentence(sentence); ok {
			results = append(results, c)
		}
	}

	if len(results) == 0 {
		results = append(results, Classification{
			Text:               strings.TrimSpace(input),
			Category:           CategoryFramework,
			Topic:              topicOf(input),
			Entities:           extractEntities(input),
			RequiresValidation: false,
			ValidationSource:   SourceNone,
		})
	}

	return results, nil
}

func classifySentence(sentence string) (Classification, bool) {
	lower := strings.ToLower(sentence)

	scores := []float64{
		scoreLexicon(lower, internalLexicon),
		scoreLexicon(lower, externalLexicon),
		scoreLexicon(lower, frameworkLexicon),
	}

	if floats.Max(scores) < minimumScore {
		return Classification{}, false
	}

	// First max wins, so ties resolve in tieOrder
	winner := tieOrder[floats.MaxIdx(scores)]

	c := Classification{
		Text:     sentence,
		Category: winner,
		Topic:    topicOf(sentence),
		Entities: extractEntities(sentence),
		Score:    floats.Max(scores),
	}

	switch winner {
	case CategoryInternal:
		c.RequiresValidation = true
		c.ValidationSource = SourceKnowledgeBase
	case CategoryExternal:
		c.RequiresValidation = true
		c.ValidationSource = SourceWebSearch
	default:
		c.RequiresValidation = false
		c.ValidationSource = SourceNone
	}

	return c, true
}

func scoreLexicon(lower string, lex Lexicon) float64 {
	words := tokenize(lower)
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}

	score := 0.0
	for _, kw := range lex.Keywords {
		if _, ok := wordSet[kw]; ok {
			score += keywordWeight
		}
	}
	for _, phrase := range lex.Phrases {
		if strings.Contains(lower, phrase) {
			score += phraseWeight
		}
	}

	score /= scoreDivisor
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// splitSentences breaks input on terminal punctuation, discarding fragments
// shorter than the minimum length after trimming.
func splitSentences(input string) []string {
	parts := strings.FieldsFunc(input, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	out := []string{}
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if len(trimmed) >= minSentenceLen {
			out = append(out, trimmed)
		}
	}
	return out
}

// topicOf keeps the first few words of a sentence as its topic
func topicOf(sentence string) string {
	words := strings.Fields(strings.TrimSpace(sentence))
	if len(words) > topicWordLimit {
		words = words[:topicWordLimit]
	}
	return strings.Join(words, " ")
}

// extractEntities collects runs of capitalized words (up to the entity cap),
// skipping stoplisted pronouns and determiners.
func extractEntities(sentence string) []string {
	words := strings.Fields(sentence)

	entities := []string{}
	seen := map[string]struct{}{}
	run := []string{}

	flush := func() {
		if len(run) == 0 {
			return
		}
		entity := strings.Join(run, " ")
		run = nil
		if _, stop := entityStoplist[strings.ToLower(entity)]; stop {
			return
		}
		if _, dup := seen[entity]; dup {
			return
		}
		seen[entity] = struct{}{}
		entities = append(entities, entity)
	}

	for _, w := range words {
		cleaned := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if cleaned == "" {
			flush()
			continue
		}
		if unicode.IsUpper([]rune(cleaned)[0]) {
			if _, stop := entityStoplist[strings.ToLower(cleaned)]; stop && len(run) == 0 {
				continue
			}
			run = append(run, cleaned)
			continue
		}
		flush()
	}
	flush()

	if len(entities) > maxEntities {
		entities = entities[:maxEntities]
	}
	return entities
}

func tokenize(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}
