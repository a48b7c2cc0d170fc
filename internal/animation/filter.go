package animation

import "github.com/ivlev/slides2video/internal/project"

// FilterValues are render-ready percentages; 100 is neutral.
type FilterValues struct {
	Brightness float64 `json:"brightness" yaml:"brightness"`
	Contrast   float64 `json:"contrast" yaml:"contrast"`
	Saturation float64 `json:"saturation" yaml:"saturation"`
}

// Neutral is the no-op filter state.
var Neutral = FilterValues{Brightness: 100, Contrast: 100, Saturation: 100}

// EvaluateFilters maps normalized [-1,1] color adjustments to
// percentages via pct = 100 + v*100. A nil filter set is neutral.
func EvaluateFilters(f *project.Filters) FilterValues {
	if f == nil {
		return Neutral
	}
	return FilterValues{
		Brightness: 100 + f.Brightness*100,
		Contrast:   100 + f.Contrast*100,
		Saturation: 100 + f.Saturation*100,
	}
}
