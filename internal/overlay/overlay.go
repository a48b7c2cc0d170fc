// Package overlay schedules text overlays: their visibility window
// inside a scene and their per-frame opacity and vertical offset.
package overlay

import (
	"math"

	"github.com/ivlev/slides2video/internal/project"
)

// Entrance ramps, as fractions of the overlay's own window. Window-
// relative ramps keep the effect visually consistent regardless of how
// long the overlay stays on screen.
const (
	fadePortion  = 0.2
	slidePortion = 0.3
	slidePixels  = 50.0
)

// State is one visible overlay at one frame.
type State struct {
	Overlay *project.TextOverlay `json:"overlay" yaml:"overlay"`
	Opacity float64              `json:"opacity" yaml:"opacity"`
	OffsetY float64              `json:"offsetY" yaml:"offsetY"`
}

// Window returns the overlay's half-open frame window relative to the
// scene start. An overlay without an explicit duration runs from its
// start time to the end of the scene.
func Window(ov *project.TextOverlay, sceneDurationFrames int, fps float64) (start, end int) {
	start = int(math.Floor(ov.StartTime * fps))
	if ov.Duration != nil {
		end = start + int(math.Floor(*ov.Duration*fps))
	} else {
		end = sceneDurationFrames
	}
	return start, end
}

// Evaluate reports whether the overlay is visible at the given
// scene-relative frame and, if so, its opacity and offset. Outside its
// window the overlay is not emitted at all, not merely transparent.
func Evaluate(ov *project.TextOverlay, sceneRelativeFrame, sceneDurationFrames int, fps float64) (State, bool) {
	start, end := Window(ov, sceneDurationFrames, fps)
	if end <= start || sceneRelativeFrame < start || sceneRelativeFrame >= end {
		return State{}, false
	}

	progress := float64(sceneRelativeFrame-start) / float64(end-start)

	st := State{Overlay: ov, Opacity: 1}
	switch ov.Animation {
	case project.OverlayAnimFadeIn:
		st.Opacity = clamp01(progress / fadePortion)
	case project.OverlayAnimSlideIn:
		st.Opacity = clamp01(progress / fadePortion)
		st.OffsetY = slidePixels * (1 - clamp01(progress/slidePortion))
	}
	return st, true
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
