// Package predictor turns prediction requests into the fixed-order feature
// vectors the trained classifier expects and wraps the scoring call.
package predictor

// FeatureSchema is the ordered list of feature slot names the classifier
// was trained against. Slot order is the contract between encoder and
// classifier: it is loaded once at startup and never mutated, so it is safe
// to share across concurrent requests.
type FeatureSchema struct {
	names []string
	index map[string]int
}

// NewFeatureSchema builds a schema from the classifier's declared slot
// names, preserving their order.
func NewFeatureSchema(names []string) FeatureSchema {
	owned := make([]string, len(names))
	copy(owned, names)
	index := make(map[string]int, len(owned))
	for i, name := range owned {
		index[name] = i
	}
	return FeatureSchema{names: owned, index: index}
}

// Len returns the number of feature slots.
func (s FeatureSchema) Len() int {
	return len(s.names)
}

// Names returns a copy of the slot names in schema order.
func (s FeatureSchema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Index returns the vector position of a slot name.
func (s FeatureSchema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}
