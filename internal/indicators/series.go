// Package indicators implements the technical indicators used by the breakout
// analyzer. Every function returns a series aligned index-for-index with its
// input; entries without enough history are null.
package indicators

// Float is a nullable indicator value
type Float struct {
	Value float64
	Valid bool
}

// Some wraps a valid value
func Some(v float64) Float {
	return Float{Value: v, Valid: true}
}

// Series is a nullable numeric column aligned with a candle sequence
type Series []Float

// NullSeries returns n null entries
func NullSeries(n int) Series {
	return make(Series, n)
}

// Last returns the final entry, null for an empty series
func (s Series) Last() Float {
	if len(s) == 0 {
		return Float{}
	}
	return s[len(s)-1]
}

// At returns the entry at i, null when i is out of range
func (s Series) At(i int) Float {
	if i < 0 || i >= len(s) {
		return Float{}
	}
	return s[i]
}

// Ptr returns a pointer to the value, nil when null
func (f Float) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// Values returns the raw values with nulls as zero
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, f := range s {
		out[i] = f.Value
	}
	return out
}
