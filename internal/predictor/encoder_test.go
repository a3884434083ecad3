package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() FeatureSchema {
	return NewFeatureSchema([]string{
		"runtimeMinutes", "budget", "Comedy", "Drama", "comp_co1", "lang_en", "rating_R",
	})
}

func TestEncodeEndToEndScenario(t *testing.T) {
	req := Request{
		RuntimeMinutes:      120,
		Budget:              500000,
		Genres:              []string{"Comedy"},
		ProductionCompanies: []string{"co1"},
		Languages:           []string{"en"},
		Rating:              "R",
	}

	vector, unknown := Encode(req, testSchema())
	assert.Equal(t, []float64{120, 500000, 1, 0, 1, 1, 1}, vector)
	assert.Empty(t, unknown)
}

func TestEncodeVectorShape(t *testing.T) {
	schema := testSchema()
	vector, _ := Encode(Request{Genres: []string{"Western"}, Languages: []string{"zz"}}, schema)

	require.Len(t, vector, schema.Len())
	for i, v := range vector {
		assert.Zerof(t, v, "unmatched slot %d must stay zero", i)
	}
}

func TestEncodeMultiHotOrderIndependence(t *testing.T) {
	schema := testSchema()
	base := Request{RuntimeMinutes: 90, Budget: 1000, Languages: []string{"en"}}

	forward := base
	forward.Genres = []string{"Comedy", "Drama"}
	reversed := base
	reversed.Genres = []string{"Drama", "Comedy"}

	v1, _ := Encode(forward, schema)
	v2, _ := Encode(reversed, schema)
	assert.Equal(t, v1, v2)

	comedy, _ := schema.Index("Comedy")
	drama, _ := schema.Index("Drama")
	assert.Equal(t, 1.0, v1[comedy])
	assert.Equal(t, 1.0, v1[drama])
}

func TestEncodeUnknownLabelLeniency(t *testing.T) {
	schema := testSchema()
	with := Request{
		RuntimeMinutes:      100,
		Budget:              200,
		Genres:              []string{"Comedy"},
		ProductionCompanies: []string{"co1", "co_unknown"},
		Languages:           []string{"en"},
	}
	without := with
	without.ProductionCompanies = []string{"co1"}

	v1, unknown := Encode(with, schema)
	v2, _ := Encode(without, schema)

	assert.Equal(t, v2, v1, "unknown company must not change the vector")
	assert.Equal(t, []string{"comp_co_unknown"}, unknown)
}

func TestEncodeSingleSelectRatingAndLocation(t *testing.T) {
	schema := NewFeatureSchema([]string{"rating_R", "rating_PG", "loc_US"})

	v, _ := Encode(Request{Rating: "R", Location: "US"}, schema)
	assert.Equal(t, []float64{1, 0, 1}, v)

	// Unknown or absent values match zero slots.
	v, _ = Encode(Request{Rating: "NC-17"}, schema)
	assert.Equal(t, []float64{0, 0, 0}, v)
	v, _ = Encode(Request{}, schema)
	assert.Equal(t, []float64{0, 0, 0}, v)
}

func TestSchemaPreservesOrder(t *testing.T) {
	names := []string{"b", "a", "c"}
	schema := NewFeatureSchema(names)

	assert.Equal(t, names, schema.Names())
	i, ok := schema.Index("a")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = schema.Index("missing")
	assert.False(t, ok)

	// The schema owns its copy of the names.
	names[0] = "mutated"
	assert.Equal(t, "b", schema.Names()[0])
}
