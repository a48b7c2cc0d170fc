package animation

import (
	"testing"

	"github.com/ivlev/slides2video/internal/project"
)

var testRes = project.Resolution{Width: 1920, Height: 1080}

func allAnimationTypes() []project.AnimationType {
	return []project.AnimationType{
		project.AnimationNone,
		project.AnimationKenBurnsIn, project.AnimationKenBurnsOut,
		project.AnimationZoomIn, project.AnimationZoomOut,
		project.AnimationPanLeft, project.AnimationPanRight,
		project.AnimationPanUp, project.AnimationPanDown,
		project.AnimationParallax,
	}
}

func TestEvaluateEndpointsExact(t *testing.T) {
	for _, anim := range allAnimationTypes() {
		t.Run(string(anim), func(t *testing.T) {
			sc := &project.Scene{Animation: anim, AnimationIntensity: 0.8}
			start, end := Keyframes(anim, 0.8, testRes)

			if got := Evaluate(sc, 0, testRes); got != start {
				t.Errorf("progress 0: expected %+v, got %+v", start, got)
			}
			if got := Evaluate(sc, 1, testRes); got != end {
				t.Errorf("progress 1: expected %+v, got %+v", end, got)
			}
		})
	}
}

func TestEvaluateClampsProgress(t *testing.T) {
	sc := &project.Scene{Animation: project.AnimationZoomIn, AnimationIntensity: 1}

	tests := []struct {
		progress float64
		want     float64 // scale
	}{
		{-0.5, 1.0},
		{0, 1.0},
		{0.5, 1.2},
		{1, 1.4},
		{1.7, 1.4}, // no extrapolation past the pair
	}

	for _, tt := range tests {
		got := Evaluate(sc, tt.progress, testRes)
		if abs(got.Scale-tt.want) > 1e-12 {
			t.Errorf("progress %.2f: expected scale %.3f, got %.6f", tt.progress, tt.want, got.Scale)
		}
	}
}

func TestEvaluateMonotonic(t *testing.T) {
	// Each transform component must move monotonically from start to end.
	for _, anim := range allAnimationTypes() {
		sc := &project.Scene{Animation: anim, AnimationIntensity: 0.6}
		start, end := Keyframes(anim, 0.6, testRes)

		prev := Evaluate(sc, 0, testRes)
		for i := 1; i <= 20; i++ {
			cur := Evaluate(sc, float64(i)/20, testRes)
			if !monotoneStep(start.Scale, end.Scale, prev.Scale, cur.Scale) ||
				!monotoneStep(start.X, end.X, prev.X, cur.X) ||
				!monotoneStep(start.Y, end.Y, prev.Y, cur.Y) {
				t.Errorf("%s: non-monotonic step at progress %.2f", anim, float64(i)/20)
			}
			prev = cur
		}
	}
}

func TestZeroIntensityIsStatic(t *testing.T) {
	for _, anim := range allAnimationTypes() {
		start, end := Keyframes(anim, 0, testRes)
		if start != Identity || end != Identity {
			t.Errorf("%s at intensity 0: expected identity endpoints, got %+v -> %+v", anim, start, end)
		}
	}
}

func TestPanKeepsFixedScale(t *testing.T) {
	pans := []project.AnimationType{
		project.AnimationPanLeft, project.AnimationPanRight,
		project.AnimationPanUp, project.AnimationPanDown,
	}
	for _, anim := range pans {
		start, end := Keyframes(anim, 1, testRes)
		if start.Scale != end.Scale {
			t.Errorf("%s: pan scale must stay fixed, got %.3f -> %.3f", anim, start.Scale, end.Scale)
		}
		if start.Scale != 1.1 {
			t.Errorf("%s: expected pan scale 1.1 at full intensity, got %.3f", anim, start.Scale)
		}
	}
}

func TestEvaluateFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters *project.Filters
		want    FilterValues
	}{
		{"nil is neutral", nil, Neutral},
		{"zero is neutral", &project.Filters{}, Neutral},
		{
			"mixed",
			&project.Filters{Brightness: -0.05, Contrast: 0.1, Saturation: -0.1},
			FilterValues{Brightness: 95, Contrast: 110, Saturation: 90},
		},
		{
			"extremes",
			&project.Filters{Brightness: -1, Contrast: 1, Saturation: 1},
			FilterValues{Brightness: 0, Contrast: 200, Saturation: 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateFilters(tt.filters)
			if abs(got.Brightness-tt.want.Brightness) > 1e-9 ||
				abs(got.Contrast-tt.want.Contrast) > 1e-9 ||
				abs(got.Saturation-tt.want.Saturation) > 1e-9 {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func monotoneStep(from, to, prev, cur float64) bool {
	if from <= to {
		return cur >= prev-1e-12
	}
	return cur <= prev+1e-12
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
