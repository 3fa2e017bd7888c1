package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportanceWeights(t *testing.T) {
	assert.Equal(t, 3, ImportanceCritical.Weight())
	assert.Equal(t, 2, ImportanceImportant.Weight())
	assert.Equal(t, 1, ImportanceOptional.Weight())
}

func TestAllReturnsACopy(t *testing.T) {
	first := All()
	first[0].Name = "tampered"

	assert.NotEqual(t, "tampered", All()[0].Name)
}

func TestByID(t *testing.T) {
	req, ok := ByID(ReqTimeline)
	assert.True(t, ok)
	assert.Equal(t, ImportanceCritical, req.Importance)

	_, ok = ByID("no_such_requirement")
	assert.False(t, ok)
}

func TestTotalWeightMatchesCatalog(t *testing.T) {
	// 4 critical, 4 important, 2 optional
	assert.Equal(t, 4*3+4*2+2*1, TotalWeight())
}

func TestEveryRequirementHasAFallbackQuestion(t *testing.T) {
	for _, req := range All() {
		assert.NotEmpty(t, req.FallbackQuestion, "requirement %s", req.ID)
		assert.NotEmpty(t, req.QuestionType, "requirement %s", req.ID)
	}
}
