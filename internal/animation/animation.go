// Package animation maps scene animation types to 2D transforms. Each
// type defines a start and an end transform; evaluation is a pure
// component-wise interpolation between the two.
package animation

import "github.com/ivlev/slides2video/internal/project"

// Transform is the camera state applied to a scene's asset: uniform
// scale plus a pixel translation in output coordinates.
type Transform struct {
	Scale float64 `json:"scale" yaml:"scale"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
}

// Identity is the resting transform: no zoom, no translation.
var Identity = Transform{Scale: 1}

// Movement magnitudes per animation type. Intensity in [0,1] scales
// each of them linearly.
const (
	kenBurnsZoom  = 0.3  // extra scale at full intensity
	kenBurnsDrift = 0.05 // diagonal drift as a fraction of frame size
	zoomDepth     = 0.4
	panScale      = 0.1   // fixed overscan while panning, keeps edges covered
	panTravel     = 0.05  // half of the total pan distance
	parallaxZoom  = 0.2
	parallaxX     = 0.04  // horizontal layer rate
	parallaxY     = 0.015 // vertical layer rate, slower for depth
)

// Keyframes returns the start and end transforms for an animation type
// at the given intensity. Pan travel is symmetric around center so the
// fixed pan overscan always covers the exposed edge.
func Keyframes(anim project.AnimationType, intensity float64, res project.Resolution) (start, end Transform) {
	k := clamp01(intensity)
	w := float64(res.Width)
	h := float64(res.Height)

	switch anim {
	case project.AnimationKenBurnsIn:
		start = Identity
		end = Transform{Scale: 1 + kenBurnsZoom*k, X: -kenBurnsDrift * k * w, Y: -kenBurnsDrift * k * h}
	case project.AnimationKenBurnsOut:
		start = Transform{Scale: 1 + kenBurnsZoom*k, X: -kenBurnsDrift * k * w, Y: -kenBurnsDrift * k * h}
		end = Identity
	case project.AnimationZoomIn:
		start = Identity
		end = Transform{Scale: 1 + zoomDepth*k}
	case project.AnimationZoomOut:
		start = Transform{Scale: 1 + zoomDepth*k}
		end = Identity
	case project.AnimationPanLeft:
		s := 1 + panScale*k
		start = Transform{Scale: s, X: panTravel * k * w}
		end = Transform{Scale: s, X: -panTravel * k * w}
	case project.AnimationPanRight:
		s := 1 + panScale*k
		start = Transform{Scale: s, X: -panTravel * k * w}
		end = Transform{Scale: s, X: panTravel * k * w}
	case project.AnimationPanUp:
		s := 1 + panScale*k
		start = Transform{Scale: s, Y: panTravel * k * h}
		end = Transform{Scale: s, Y: -panTravel * k * h}
	case project.AnimationPanDown:
		s := 1 + panScale*k
		start = Transform{Scale: s, Y: -panTravel * k * h}
		end = Transform{Scale: s, Y: panTravel * k * h}
	case project.AnimationParallax:
		s := 1 + parallaxZoom*k
		start = Transform{Scale: s, X: parallaxX * k * w, Y: -parallaxY * k * h}
		end = Transform{Scale: s, X: -parallaxX * k * w, Y: parallaxY * k * h}
	default: // none
		start, end = Identity, Identity
	}
	return start, end
}

// Evaluate interpolates the scene's animation at the given progress.
// Progress outside [0,1] is clamped to the nearest endpoint; there is
// no extrapolation beyond the keyframe pair.
func Evaluate(sc *project.Scene, progress float64, res project.Resolution) Transform {
	start, end := Keyframes(sc.Animation, sc.AnimationIntensity, res)
	t := clamp01(progress)
	// The endpoints must be hit exactly, not within float error.
	if t == 0 {
		return start
	}
	if t == 1 {
		return end
	}
	return Transform{
		Scale: lerp(start.Scale, end.Scale, t),
		X:     lerp(start.X, end.X, t),
		Y:     lerp(start.Y, end.Y, t),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
