package transition

import (
	"testing"

	"github.com/ivlev/slides2video/internal/project"
)

func TestDurationFramesClampsToScene(t *testing.T) {
	tests := []struct {
		name               string
		transitionDuration float64
		fps                float64
		sceneFrames        int
		want               int
	}{
		{"one second at 30fps", 1, 30, 120, 30},
		{"longer than scene clamps", 2, 30, 30, 30},
		{"exactly the scene", 1, 30, 30, 30},
		{"zero duration", 0, 30, 120, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DurationFrames(tt.transitionDuration, tt.fps, tt.sceneFrames)
			if got != tt.want {
				t.Errorf("Expected %d frames, got %d", tt.want, got)
			}
		})
	}
}

func TestEvaluateProgress(t *testing.T) {
	tests := []struct {
		name     string
		typ      project.TransitionType
		duration int
		into     int
		progress float64
		active   bool
	}{
		{"before window", project.TransitionFade, 30, -1, 0, false},
		{"window start", project.TransitionFade, 30, 0, 0, true},
		{"last window frame", project.TransitionFade, 30, 29, 29.0 / 30, true},
		{"window end excluded", project.TransitionFade, 30, 30, 0, false},
		{"cut never blends", project.TransitionCut, 30, 15, 0, false},
		{"zero-length window", project.TransitionCrossfade, 0, 0, 0, false},
		{"crossfade midpoint", project.TransitionCrossfade, 30, 15, 0.5, true},
		{"wipe", project.TransitionWipeLeft, 60, 45, 0.75, true},
		{"slide", project.TransitionSlideRight, 60, 15, 0.25, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress, active := Evaluate(tt.typ, tt.duration, tt.into)
			if active != tt.active {
				t.Fatalf("Expected active=%v, got %v", tt.active, active)
			}
			if active && abs(progress-tt.progress) > 1e-12 {
				t.Errorf("Expected progress %.4f, got %.4f", tt.progress, progress)
			}
		})
	}
}

func TestScenarioProgressNearSceneEnd(t *testing.T) {
	// Scene 0: duration 4s, fade 1s at 30 fps. Window is [90, 120); at
	// frame 119 the blend is 29/30 through.
	durFrames := DurationFrames(1, 30, 120)
	progress, active := Evaluate(project.TransitionFade, durFrames, 119-90)
	if !active {
		t.Fatal("Expected transition active at frame 119")
	}
	if abs(progress-29.0/30) > 1e-12 {
		t.Errorf("Expected progress %.6f, got %.6f", 29.0/30, progress)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
