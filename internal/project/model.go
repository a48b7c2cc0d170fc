package project

// AnimationType selects the camera movement applied over a scene's lifetime.
type AnimationType string

const (
	AnimationNone        AnimationType = "none"
	AnimationKenBurnsIn  AnimationType = "ken-burns-in"
	AnimationKenBurnsOut AnimationType = "ken-burns-out"
	AnimationZoomIn      AnimationType = "zoom-in"
	AnimationZoomOut     AnimationType = "zoom-out"
	AnimationPanLeft     AnimationType = "pan-left"
	AnimationPanRight    AnimationType = "pan-right"
	AnimationPanUp       AnimationType = "pan-up"
	AnimationPanDown     AnimationType = "pan-down"
	AnimationParallax    AnimationType = "parallax"
)

// TransitionType selects the blend played during the tail of a scene.
type TransitionType string

const (
	TransitionCut        TransitionType = "cut"
	TransitionFade       TransitionType = "fade"
	TransitionCrossfade  TransitionType = "crossfade"
	TransitionWipeLeft   TransitionType = "wipe-left"
	TransitionWipeRight  TransitionType = "wipe-right"
	TransitionSlideLeft  TransitionType = "slide-left"
	TransitionSlideRight TransitionType = "slide-right"
)

// TextPosition is one of nine named anchor points for a text overlay.
type TextPosition string

const (
	PosTopLeft      TextPosition = "top-left"
	PosTopCenter    TextPosition = "top-center"
	PosTopRight     TextPosition = "top-right"
	PosMiddleLeft   TextPosition = "middle-left"
	PosMiddleCenter TextPosition = "middle-center"
	PosMiddleRight  TextPosition = "middle-right"
	PosBottomLeft   TextPosition = "bottom-left"
	PosBottomCenter TextPosition = "bottom-center"
	PosBottomRight  TextPosition = "bottom-right"
)

// OverlayAnimation selects the entrance effect of a text overlay.
type OverlayAnimation string

const (
	OverlayAnimNone    OverlayAnimation = "none"
	OverlayAnimFadeIn  OverlayAnimation = "fade-in"
	OverlayAnimSlideIn OverlayAnimation = "slide-in"
)

// AssetType distinguishes still images from video clips.
type AssetType string

const (
	AssetImage AssetType = "image"
	AssetVideo AssetType = "video"
)

// Resolution is the fixed output frame size of a project.
type Resolution struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Filters holds normalized color adjustments, each in [-1,1].
// Zero is the neutral value.
type Filters struct {
	Brightness float64 `json:"brightness" yaml:"brightness"`
	Contrast   float64 `json:"contrast" yaml:"contrast"`
	Saturation float64 `json:"saturation" yaml:"saturation"`
}

// Crop selects a normalized sub-rectangle of the source asset.
type Crop struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// TextOverlay is a timed caption attached to a scene. StartTime is
// seconds relative to the scene start. A nil Duration means the overlay
// runs to the end of the scene. The overlay is always clipped by the
// enclosing scene's frame range.
type TextOverlay struct {
	Text            string           `json:"text" yaml:"text"`
	Position        TextPosition     `json:"position" yaml:"position"`
	FontSize        int              `json:"fontSize" yaml:"fontSize"`
	FontFamily      string           `json:"fontFamily" yaml:"fontFamily"`
	Color           string           `json:"color" yaml:"color"`
	BackgroundColor string           `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	StartTime       float64          `json:"startTime" yaml:"startTime"`
	Duration        *float64         `json:"duration,omitempty" yaml:"duration,omitempty"`
	Animation       OverlayAnimation `json:"animation" yaml:"animation"`
}

// Scene is one timed segment of the video bound to a single asset.
// Its transition plays during the last TransitionDuration seconds of the
// scene itself; transition time is never additional to Duration.
type Scene struct {
	ID                 string         `json:"id" yaml:"id"`
	AssetPath          string         `json:"assetPath" yaml:"assetPath"`
	AssetType          AssetType      `json:"assetType" yaml:"assetType"`
	Duration           float64        `json:"duration" yaml:"duration"`
	Animation          AnimationType  `json:"animation" yaml:"animation"`
	AnimationIntensity float64        `json:"animationIntensity" yaml:"animationIntensity"`
	Transition         TransitionType `json:"transition" yaml:"transition"`
	TransitionDuration float64        `json:"transitionDuration" yaml:"transitionDuration"`
	TextOverlays       []TextOverlay  `json:"textOverlays,omitempty" yaml:"textOverlays,omitempty"`
	Crop               *Crop          `json:"crop,omitempty" yaml:"crop,omitempty"`
	Filters            *Filters       `json:"filters,omitempty" yaml:"filters,omitempty"`
}

// AudioTrack describes background music and voiceover for the final mix.
// TTSText and TTSVoice are carried for an external synthesis step; the
// render pipeline itself only consumes Voiceover once that file exists.
type AudioTrack struct {
	BackgroundMusic string  `json:"backgroundMusic,omitempty" yaml:"backgroundMusic,omitempty"`
	MusicVolume     float64 `json:"musicVolume" yaml:"musicVolume"`
	Voiceover       string  `json:"voiceover,omitempty" yaml:"voiceover,omitempty"`
	VoiceoverVolume float64 `json:"voiceoverVolume" yaml:"voiceoverVolume"`
	TTSText         string  `json:"ttsText,omitempty" yaml:"ttsText,omitempty"`
	TTSVoice        string  `json:"ttsVoice,omitempty" yaml:"ttsVoice,omitempty"`
}

// Subtitles configures sidecar caption output.
type Subtitles struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Language string `json:"language" yaml:"language"`
	Format   string `json:"format" yaml:"format"`
}

// VideoProject is a validated, fully defaulted project. Values of this
// type are only produced by Parse/ParseYAML and are immutable afterward:
// every field has passed range checks and all optional fields carry
// their preset-driven defaults, so engine code never re-validates.
type VideoProject struct {
	ProjectName  string      `json:"projectName" yaml:"projectName"`
	Format       string      `json:"format" yaml:"format"`
	Resolution   Resolution  `json:"resolution" yaml:"resolution"`
	FPS          float64     `json:"fps" yaml:"fps"`
	Scenes       []Scene     `json:"scenes" yaml:"scenes"`
	Audio        *AudioTrack `json:"audio,omitempty" yaml:"audio,omitempty"`
	Subtitles    *Subtitles  `json:"subtitles,omitempty" yaml:"subtitles,omitempty"`
	Preset       string      `json:"preset" yaml:"preset"`
	ExportFormat string      `json:"exportFormat" yaml:"exportFormat"`
	Quality      string      `json:"quality" yaml:"quality"`
}

// TotalDurationSeconds is the exact sum of scene durations. Transitions
// are carved out of existing scene time and never extend the timeline.
func (p *VideoProject) TotalDurationSeconds() float64 {
	total := 0.0
	for _, sc := range p.Scenes {
		total += sc.Duration
	}
	return total
}
