// Package chart renders small categorical series as static bar chart images.
package chart

// Bar is one category and its value.
type Bar struct {
	Category string  `json:"category" yaml:"category"`
	Value    float64 `json:"value" yaml:"value"`
}

// Series is drawn left to right in slice order. Categories are expected to be
// unique but that is not checked.
type Series []Bar

// Categories returns the category labels in order.
func (s Series) Categories() []string {
	out := make([]string, len(s))
	for i, b := range s {
		out[i] = b.Category
	}
	return out
}

// Values returns the bar values in order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Value
	}
	return out
}
