package domain

import "fmt"

// FeatureVector is the fixed-length, fixed-order input to the model
// ensemble. Names is frozen at model-training time; Values must align with
// it position for position.
type FeatureVector struct {
	Names  []string
	Values []float64
}

// ErrFeatureShapeMismatch is returned when an extractor would widen or
// narrow the vector relative to the frozen name list ("must fail the
// pipeline for that market, never silently reshape").
type ErrFeatureShapeMismatch struct {
	Expected int
	Got      int
}

func (e *ErrFeatureShapeMismatch) Error() string {
	return fmt.Sprintf("feature vector shape mismatch: expected %d values, got %d", e.Expected, e.Got)
}

// NewFeatureVector validates that names and values are the same length
// before constructing the vector.
func NewFeatureVector(names []string, values []float64) (FeatureVector, error) {
	if len(names) != len(values) {
		return FeatureVector{}, &ErrFeatureShapeMismatch{Expected: len(names), Got: len(values)}
	}
	return FeatureVector{Names: names, Values: values}, nil
}

// Valid reports whether len(Values) == len(Names).
func (f FeatureVector) Valid() bool {
	return len(f.Values) == len(f.Names)
}
