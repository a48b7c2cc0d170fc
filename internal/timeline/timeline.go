// Package timeline converts scene durations into frame-accurate ranges
// and answers which scene owns a given output frame.
package timeline

import (
	"math"
	"sort"

	"github.com/ivlev/slides2video/internal/project"
)

// Entry is the frame range owned by one scene. The interval is
// half-open: StartFrame <= frame < EndFrame.
type Entry struct {
	SceneIndex     int `json:"sceneIndex" yaml:"sceneIndex"`
	StartFrame     int `json:"startFrame" yaml:"startFrame"`
	EndFrame       int `json:"endFrame" yaml:"endFrame"`
	DurationFrames int `json:"durationFrames" yaml:"durationFrames"`
}

// Index is the immutable frame-accurate timeline of a project. Build it
// once; afterward it is safe to share across any number of concurrent
// frame queries.
type Index struct {
	entries     []Entry
	totalFrames int
}

// Build computes the timeline in a single forward pass. Start frames
// come from the accumulated seconds, not from previous frame counts, so
// rounding error never compounds across scenes.
func Build(p *project.VideoProject) *Index {
	entries := make([]Entry, 0, len(p.Scenes))
	cumSeconds := 0.0
	totalFrames := 0

	for i, sc := range p.Scenes {
		startFrame := int(math.Floor(cumSeconds * p.FPS))
		durationFrames := int(math.Floor(sc.Duration * p.FPS))
		entries = append(entries, Entry{
			SceneIndex:     i,
			StartFrame:     startFrame,
			EndFrame:       startFrame + durationFrames,
			DurationFrames: durationFrames,
		})
		cumSeconds += sc.Duration
		totalFrames += durationFrames
	}

	return &Index{entries: entries, totalFrames: totalFrames}
}

// Entries returns the ordered timeline. Callers must treat it as
// read-only.
func (ix *Index) Entries() []Entry {
	return ix.entries
}

// Entry returns the range of scene i.
func (ix *Index) Entry(i int) Entry {
	return ix.entries[i]
}

// TotalFrames is the sum of per-scene durations in frames. Transitions
// do not extend the timeline.
func (ix *Index) TotalFrames() int {
	return ix.totalFrames
}

// Locate returns the index of the scene that owns frame, or false when
// the frame is negative or past the end of the timeline.
func (ix *Index) Locate(frame int) (int, bool) {
	if frame < 0 || frame >= ix.totalFrames || len(ix.entries) == 0 {
		return 0, false
	}
	i := sort.Search(len(ix.entries), func(i int) bool {
		return ix.entries[i].EndFrame > frame
	})
	if i == len(ix.entries) || frame < ix.entries[i].StartFrame {
		return 0, false
	}
	return i, true
}
