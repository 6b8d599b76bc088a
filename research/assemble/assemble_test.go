package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-backend/research/model"
)

func TestAssembleFlatCamelCase(t *testing.T) {
	rec := Assemble(map[string]any{
		"questions":     []any{"Q1", "Q2"},
		"businessModel": "Sells things.",
		"risks":         []any{"R1"},
		"growthDrivers": []string{"G1", "G2"},
	})

	assert.Equal(t, []string{"Q1", "Q2"}, rec.Questions)
	assert.Equal(t, "Sells things.", rec.BusinessModel)
	assert.Equal(t, []string{"R1"}, rec.Risks)
	assert.Equal(t, []string{"G1", "G2"}, rec.GrowthDrivers)
}

func TestAssembleFrameworkShape(t *testing.T) {
	rec := AssembleJSON([]byte(`{
		"questions": ["Why?"],
		"framework": {
			"business_model": "Subscriptions.",
			"risks": ["Churn"],
			"growth_drivers": "Expansion\r\n\n  \nPricing"
		}
	}`))

	assert.Equal(t, []string{"Why?"}, rec.Questions)
	assert.Equal(t, "Subscriptions.", rec.BusinessModel)
	assert.Equal(t, []string{"Churn"}, rec.Risks)
	assert.Equal(t, []string{"Expansion", "Pricing"}, rec.GrowthDrivers)
}

func TestAssembleTopLevelWinsOverFramework(t *testing.T) {
	rec := Assemble(map[string]any{
		"business_model": "top",
		"framework":      map[string]any{"business_model": "nested", "risks": []any{"nested risk"}},
	})
	assert.Equal(t, "top", rec.BusinessModel)
	assert.Equal(t, []string{"nested risk"}, rec.Risks)
}

func TestAssembleIsTotal(t *testing.T) {
	inputs := []any{
		nil,
		"just a string",
		42.0,
		[]any{"a", "b"},
		map[string]any{},
		map[string]any{"questions": "not a list", "businessModel": 7.0, "risks": 3.0, "growthDrivers": map[string]any{}},
		map[string]any{"framework": "nope"},
	}
	for _, in := range inputs {
		rec := Assemble(in)
		require.NotNil(t, rec.Questions)
		require.NotNil(t, rec.Risks)
		require.NotNil(t, rec.GrowthDrivers)
		assert.Empty(t, rec.Questions)
		assert.Empty(t, rec.BusinessModel)
		assert.Empty(t, rec.Risks)
		assert.Empty(t, rec.GrowthDrivers)
	}
}

func TestAssembleInvalidJSON(t *testing.T) {
	rec := AssembleJSON([]byte("{not json"))
	assert.True(t, rec.IsEmpty())
	assert.NotNil(t, rec.Questions)
}

func TestAssembleListItemCoercion(t *testing.T) {
	rec := Assemble(map[string]any{
		"risks": []any{"text", 3.0, true, nil, map[string]any{"x": 1}},
	})
	assert.Equal(t, []string{"text", "3", "true"}, rec.Risks)
}

func TestListStringEquivalence(t *testing.T) {
	fromString := Assemble(map[string]any{
		"risks":         "Competition\n\nRegulation\n   \nFX",
		"growthDrivers": "A\nB",
	})
	fromList := Assemble(map[string]any{
		"risks":         []any{"Competition", "Regulation", "FX"},
		"growthDrivers": []any{"A", "B"},
	})
	assert.Equal(t, fromList, fromString)
}

func TestToSectionsRoundTripsThroughAssemble(t *testing.T) {
	rec := model.ResearchRecord{
		Questions:     []string{"Q"},
		BusinessModel: "BM",
		Risks:         []string{"R"},
		GrowthDrivers: []string{},
	}
	assert.Equal(t, rec, Assemble(ToSections(rec)))
}
