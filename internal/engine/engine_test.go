package engine

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/ivlev/slides2video/internal/project"
	"github.com/ivlev/slides2video/internal/timeline"
)

func seconds(v float64) *float64 { return &v }

func scenarioProject() *project.VideoProject {
	return &project.VideoProject{
		ProjectName: "scenario",
		FPS:         30,
		Resolution:  project.Resolution{Width: 1920, Height: 1080},
		Scenes: []project.Scene{
			{
				ID:                 "a",
				Duration:           4,
				Animation:          project.AnimationKenBurnsIn,
				AnimationIntensity: 0.5,
				Transition:         project.TransitionFade,
				TransitionDuration: 1,
				Filters:            &project.Filters{Brightness: -0.05, Contrast: 0.1},
				TextOverlays: []project.TextOverlay{
					{Text: "hello", StartTime: 1, Duration: seconds(2), Animation: project.OverlayAnimFadeIn},
				},
			},
			{
				ID:         "b",
				Duration:   3.5,
				Animation:  project.AnimationNone,
				Transition: project.TransitionCut,
			},
		},
	}
}

func TestResolveActiveSceneCoverage(t *testing.T) {
	p := scenarioProject()
	ix := timeline.Build(p)

	for frame := 0; frame < ix.TotalFrames(); frame++ {
		st := Resolve(p, ix, frame)
		if !st.Active() {
			t.Fatalf("Frame %d: expected an active scene", frame)
		}
	}

	for _, frame := range []int{-1, -100, ix.TotalFrames(), ix.TotalFrames() + 42} {
		st := Resolve(p, ix, frame)
		if st.Active() {
			t.Errorf("Frame %d: expected idle state, got scene %d", frame, st.SceneIndex)
		}
		if st.Transform.Scale != 1 || st.Transform.X != 0 || st.Transform.Y != 0 {
			t.Errorf("Frame %d: idle state must carry the identity transform", frame)
		}
		if st.Transition != nil || len(st.Overlays) != 0 {
			t.Errorf("Frame %d: idle state must have no transition or overlays", frame)
		}
	}
}

func TestResolveTransitionWindow(t *testing.T) {
	p := scenarioProject()
	ix := timeline.Build(p)

	// Scene 0 owns [0,120); its fade plays over the last second, [90,120).
	if st := Resolve(p, ix, 89); st.Transition != nil {
		t.Error("Frame 89: transition must not be active yet")
	}

	st := Resolve(p, ix, 119)
	if st.SceneIndex != 0 {
		t.Fatalf("Frame 119: expected scene 0, got %d", st.SceneIndex)
	}
	if st.Transition == nil {
		t.Fatal("Frame 119: expected an active transition")
	}
	if st.Transition.Type != project.TransitionFade {
		t.Errorf("Expected fade, got %s", st.Transition.Type)
	}
	if math.Abs(st.Transition.Progress-29.0/30) > 1e-12 {
		t.Errorf("Expected progress %.6f, got %.6f", 29.0/30, st.Transition.Progress)
	}
	if st.Transition.FromSceneIndex != 0 || st.Transition.ToSceneIndex != 1 {
		t.Errorf("Expected blend 0 -> 1, got %d -> %d", st.Transition.FromSceneIndex, st.Transition.ToSceneIndex)
	}

	// First frame of scene 1: the fade is over.
	if st := Resolve(p, ix, 120); st.Transition != nil {
		t.Error("Frame 120: scene 1 has a cut, no transition expected")
	}
}

func TestResolveNoTransitionOnLastScene(t *testing.T) {
	p := scenarioProject()
	// Give the last scene a configured fade; it must still never blend.
	p.Scenes[1].Transition = project.TransitionFade
	p.Scenes[1].TransitionDuration = 1
	ix := timeline.Build(p)

	last := ix.Entry(1)
	for frame := last.EndFrame - 5; frame < last.EndFrame; frame++ {
		if st := Resolve(p, ix, frame); st.Transition != nil {
			t.Errorf("Frame %d: last scene must not transition", frame)
		}
	}
}

func TestResolveTransitionLongerThanScene(t *testing.T) {
	// transitionDuration 2s on a 1s scene: the window clamps to the whole
	// scene and starts at its own start frame.
	p := &project.VideoProject{
		FPS:        30,
		Resolution: project.Resolution{Width: 1280, Height: 720},
		Scenes: []project.Scene{
			{Duration: 1, Animation: project.AnimationNone, Transition: project.TransitionCrossfade, TransitionDuration: 2},
			{Duration: 1, Animation: project.AnimationNone, Transition: project.TransitionCut},
		},
	}
	ix := timeline.Build(p)

	st := Resolve(p, ix, 0)
	if st.Transition == nil {
		t.Fatal("Frame 0: expected the clamped transition to already be active")
	}
	if st.Transition.Progress != 0 {
		t.Errorf("Frame 0: expected progress 0, got %.4f", st.Transition.Progress)
	}

	st = Resolve(p, ix, 15)
	if st.Transition == nil || math.Abs(st.Transition.Progress-0.5) > 1e-12 {
		t.Errorf("Frame 15: expected progress 0.5, got %+v", st.Transition)
	}
}

func TestResolveFractionalDurationGapIsIdle(t *testing.T) {
	// Three 0.65s scenes at 30 fps: floors give 19-frame scenes but the
	// third starts at floor(1.3*30)=39, so frame 38 belongs to nobody
	// even though totalFrames is 57. It must resolve idle, not panic.
	p := &project.VideoProject{
		FPS:        30,
		Resolution: project.Resolution{Width: 1280, Height: 720},
		Scenes: []project.Scene{
			{Duration: 0.65, Animation: project.AnimationNone, Transition: project.TransitionCut},
			{Duration: 0.65, Animation: project.AnimationNone, Transition: project.TransitionCut},
			{Duration: 0.65, Animation: project.AnimationNone, Transition: project.TransitionCut},
		},
	}
	ix := timeline.Build(p)

	if ix.TotalFrames() != 57 {
		t.Fatalf("Expected 57 total frames, got %d", ix.TotalFrames())
	}
	second := ix.Entry(1)
	third := ix.Entry(2)
	if second.EndFrame != 38 || third.StartFrame != 39 {
		t.Fatalf("Expected a gap between [%d and %d)", second.EndFrame, third.StartFrame)
	}

	st := Resolve(p, ix, 38)
	if st.Active() {
		t.Errorf("Frame 38: expected idle state in the gap, got scene %d", st.SceneIndex)
	}
	if st.Transform.Scale != 1 || st.Transform.X != 0 || st.Transform.Y != 0 {
		t.Errorf("Frame 38: gap frame must carry the identity transform, got %+v", st.Transform)
	}

	if st := Resolve(p, ix, 37); !st.Active() || st.SceneIndex != 1 {
		t.Errorf("Frame 37: expected scene 1, got %+v", st)
	}
	if st := Resolve(p, ix, 39); !st.Active() || st.SceneIndex != 2 {
		t.Errorf("Frame 39: expected scene 2, got %+v", st)
	}
}

func TestResolveOverlays(t *testing.T) {
	p := scenarioProject()
	ix := timeline.Build(p)

	if st := Resolve(p, ix, 15); len(st.Overlays) != 0 {
		t.Error("Frame 15: overlay window has not opened")
	}

	st := Resolve(p, ix, 42) // scene-relative frame 42, 12/60 through the window
	if len(st.Overlays) != 1 {
		t.Fatalf("Frame 42: expected 1 visible overlay, got %d", len(st.Overlays))
	}
	if st.Overlays[0].Opacity != 1 {
		t.Errorf("Frame 42: ramp is done at 20%%, expected opacity 1, got %.4f", st.Overlays[0].Opacity)
	}

	if st := Resolve(p, ix, 95); len(st.Overlays) != 0 {
		t.Error("Frame 95: overlay window has closed")
	}
}

func TestResolveFilters(t *testing.T) {
	p := scenarioProject()
	ix := timeline.Build(p)

	st := Resolve(p, ix, 10)
	if st.Filter.Brightness != 95 || st.Filter.Contrast != 110 || st.Filter.Saturation != 100 {
		t.Errorf("Unexpected filter values: %+v", st.Filter)
	}

	// Scene 1 has no filters: neutral.
	st = Resolve(p, ix, 150)
	if st.Filter.Brightness != 100 || st.Filter.Contrast != 100 || st.Filter.Saturation != 100 {
		t.Errorf("Expected neutral filters, got %+v", st.Filter)
	}
}

func TestResolveIsPure(t *testing.T) {
	p := scenarioProject()
	ix := timeline.Build(p)

	// Identical calls yield identical states, and calling out of order
	// changes nothing.
	frames := []int{119, 0, 224, 90, 42, 119, 42}
	seen := map[int]FrameState{}
	for _, frame := range frames {
		st := Resolve(p, ix, frame)
		if prev, ok := seen[frame]; ok && !reflect.DeepEqual(prev, st) {
			t.Errorf("Frame %d: repeated resolve differs: %+v vs %+v", frame, prev, st)
		}
		seen[frame] = st
	}
}

func TestResolveRangeMatchesSequential(t *testing.T) {
	p := scenarioProject()
	ix := timeline.Build(p)

	got, err := ResolveRange(context.Background(), p, ix, 0, ix.TotalFrames(), 8)
	if err != nil {
		t.Fatalf("ResolveRange failed: %v", err)
	}
	if len(got) != ix.TotalFrames() {
		t.Fatalf("Expected %d states, got %d", ix.TotalFrames(), len(got))
	}

	for frame := 0; frame < ix.TotalFrames(); frame++ {
		want := Resolve(p, ix, frame)
		if !reflect.DeepEqual(got[frame], want) {
			t.Fatalf("Frame %d: parallel result differs from sequential", frame)
		}
	}
}

func TestResolveRangeInvalid(t *testing.T) {
	p := scenarioProject()
	ix := timeline.Build(p)

	if _, err := ResolveRange(context.Background(), p, ix, 10, 5, 4); err == nil {
		t.Error("Expected an error for an inverted range")
	}

	states, err := ResolveRange(context.Background(), p, ix, 5, 5, 4)
	if err != nil || len(states) != 0 {
		t.Errorf("Empty range: expected no states and no error, got %d, %v", len(states), err)
	}
}
