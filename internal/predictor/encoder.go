package predictor

// Feature slot naming. Numeric slots and genres use bare names; the other
// categorical dimensions use prefixed composite keys.
const (
	slotRuntimeMinutes = "runtimeMinutes"
	slotBudget         = "budget"

	prefixCompany  = "comp_"
	prefixLanguage = "lang_"
	prefixCountry  = "ctry_"
	prefixRating   = "rating_"
	prefixLocation = "loc_"
)

// Encode maps a request onto the schema's fixed slot order. The result
// always has exactly schema.Len() entries; slots the request does not
// mention stay zero. Genres and the prefixed categories are multi-hot,
// rating and location single-select. Labels matching no slot are returned
// in unknown (deduplicated) for the caller's unknown-label policy; the
// vector itself ignores them.
//
// Pure function: no I/O, no side effects, and the output is independent of
// the order of the request's label lists.
func Encode(req Request, schema FeatureSchema) (vector []float64, unknown []string) {
	vector = make([]float64, schema.Len())
	seen := map[string]struct{}{}

	setNumeric := func(slot string, value float64) {
		if i, ok := schema.Index(slot); ok {
			vector[i] = value
		}
	}
	setOneHot := func(slot string) {
		if i, ok := schema.Index(slot); ok {
			vector[i] = 1
			return
		}
		if _, dup := seen[slot]; !dup {
			seen[slot] = struct{}{}
			unknown = append(unknown, slot)
		}
	}

	setNumeric(slotRuntimeMinutes, req.RuntimeMinutes)
	setNumeric(slotBudget, req.Budget)

	for _, genre := range req.Genres {
		setOneHot(genre)
	}
	for _, company := range req.ProductionCompanies {
		setOneHot(prefixCompany + company)
	}
	for _, language := range req.Languages {
		setOneHot(prefixLanguage + language)
	}
	for _, country := range req.Countries {
		setOneHot(prefixCountry + country)
	}
	if req.Rating != "" {
		setOneHot(prefixRating + req.Rating)
	}
	if req.Location != "" {
		setOneHot(prefixLocation + req.Location)
	}
	return vector, unknown
}
