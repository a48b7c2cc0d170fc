// Package engine resolves the complete visual state of a project at a
// single output frame. Resolution is a pure function of the project and
// its timeline index: no I/O, no shared mutable state, safe to call for
// any frame in any order from any number of goroutines.
package engine

import (
	"github.com/ivlev/slides2video/internal/animation"
	"github.com/ivlev/slides2video/internal/overlay"
	"github.com/ivlev/slides2video/internal/project"
	"github.com/ivlev/slides2video/internal/timeline"
	"github.com/ivlev/slides2video/internal/transition"
)

// FrameState is the renderer-ready description of everything visible at
// one frame. SceneIndex is -1 when the frame falls outside the timeline.
type FrameState struct {
	Frame      int                    `json:"frame" yaml:"frame"`
	SceneIndex int                    `json:"sceneIndex" yaml:"sceneIndex"`
	Transform  animation.Transform    `json:"transform" yaml:"transform"`
	Filter     animation.FilterValues `json:"filter" yaml:"filter"`
	Overlays   []overlay.State        `json:"overlays,omitempty" yaml:"overlays,omitempty"`
	Transition *transition.State      `json:"transition,omitempty" yaml:"transition,omitempty"`
}

// Active reports whether a scene owns this frame.
func (s FrameState) Active() bool {
	return s.SceneIndex >= 0
}

// Resolve computes the frame state for one output frame. Out-of-range
// frames are not an error; they yield the idle state.
func Resolve(p *project.VideoProject, ix *timeline.Index, frame int) FrameState {
	sceneIdx, ok := ix.Locate(frame)
	if !ok {
		return FrameState{
			Frame:      frame,
			SceneIndex: -1,
			Transform:  animation.Identity,
			Filter:     animation.Neutral,
		}
	}

	sc := &p.Scenes[sceneIdx]
	entry := ix.Entry(sceneIdx)

	progress := 0.0
	if entry.DurationFrames > 0 {
		progress = float64(frame-entry.StartFrame) / float64(entry.DurationFrames)
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	state := FrameState{
		Frame:      frame,
		SceneIndex: sceneIdx,
		Transform:  animation.Evaluate(sc, progress, p.Resolution),
		Filter:     animation.EvaluateFilters(sc.Filters),
	}

	relative := frame - entry.StartFrame
	for i := range sc.TextOverlays {
		if st, visible := overlay.Evaluate(&sc.TextOverlays[i], relative, entry.DurationFrames, p.FPS); visible {
			state.Overlays = append(state.Overlays, st)
		}
	}

	// No transition on the last scene, whatever is configured.
	if sceneIdx < len(p.Scenes)-1 && sc.Transition != project.TransitionCut {
		durFrames := transition.DurationFrames(sc.TransitionDuration, p.FPS, entry.DurationFrames)
		into := frame - (entry.EndFrame - durFrames)
		if progress, active := transition.Evaluate(sc.Transition, durFrames, into); active {
			state.Transition = &transition.State{
				Type:           sc.Transition,
				Progress:       progress,
				FromSceneIndex: sceneIdx,
				ToSceneIndex:   sceneIdx + 1,
			}
		}
	}

	return state
}
