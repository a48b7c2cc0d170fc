// Package transition computes the blend progress for the effect played
// during the tail of a scene, toward the next scene's asset.
package transition

import (
	"math"

	"github.com/ivlev/slides2video/internal/project"
)

// State describes an active transition at one frame. Progress drives
// the per-type rendering: fade is a black overlay at opacity
// 1-progress, crossfade ramps the next asset's opacity 0 to 1, wipes
// grow a clip rectangle by progress*100%, slides translate the next
// asset in from a full-width offset.
type State struct {
	Type           project.TransitionType `json:"type" yaml:"type"`
	Progress       float64                `json:"progress" yaml:"progress"`
	FromSceneIndex int                    `json:"fromSceneIndex" yaml:"fromSceneIndex"`
	ToSceneIndex   int                    `json:"toSceneIndex" yaml:"toSceneIndex"`
}

// DurationFrames converts a transition duration to frames, clamped to
// the scene's own length: a transition configured longer than its scene
// simply starts at the scene's start frame.
func DurationFrames(transitionDuration, fps float64, sceneDurationFrames int) int {
	frames := int(math.Floor(transitionDuration * fps))
	if frames > sceneDurationFrames {
		frames = sceneDurationFrames
	}
	return frames
}

// Evaluate returns the transition progress for a frame that is
// frameIntoTransition frames past the window start. It reports false
// outside the window or for a cut, which never blends.
func Evaluate(typ project.TransitionType, durationFrames, frameIntoTransition int) (float64, bool) {
	if typ == project.TransitionCut || durationFrames <= 0 {
		return 0, false
	}
	if frameIntoTransition < 0 || frameIntoTransition >= durationFrames {
		return 0, false
	}
	progress := float64(frameIntoTransition) / float64(durationFrames)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return progress, true
}
