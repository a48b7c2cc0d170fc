package project

// Preset supplies defaults for scene fields the author left unset.
type Preset struct {
	Animation          AnimationType
	Transition         TransitionType
	TransitionDuration float64
	SceneDuration      float64
	AnimationIntensity float64
	Filters            Filters
}

// QualitySetting maps a named quality tier to encoder parameters.
type QualitySetting struct {
	Bitrate string
	CRF     int
}

// Presets, ResolutionPresets and QualitySettings are process-wide
// lookup tables, initialized once and never mutated.
var Presets = map[string]Preset{
	"cinematic": {
		Animation:          AnimationKenBurnsIn,
		Transition:         TransitionFade,
		TransitionDuration: 1.0,
		SceneDuration:      4.0,
		AnimationIntensity: 0.7,
		Filters:            Filters{Brightness: -0.05, Contrast: 0.1, Saturation: -0.1},
	},
	"corporate": {
		Animation:          AnimationZoomIn,
		Transition:         TransitionCrossfade,
		TransitionDuration: 0.5,
		SceneDuration:      3.0,
		AnimationIntensity: 0.3,
		Filters:            Filters{Brightness: 0.05, Contrast: 0.05, Saturation: 0},
	},
	"social-fast": {
		Animation:          AnimationZoomIn,
		Transition:         TransitionCut,
		TransitionDuration: 0.2,
		SceneDuration:      1.5,
		AnimationIntensity: 0.6,
		Filters:            Filters{Brightness: 0, Contrast: 0.15, Saturation: 0.1},
	},
	"custom": {
		Animation:          AnimationNone,
		Transition:         TransitionFade,
		TransitionDuration: 0.5,
		SceneDuration:      3.0,
		AnimationIntensity: 0.5,
		Filters:            Filters{},
	},
}

var ResolutionPresets = map[string]Resolution{
	"16:9": {Width: 1920, Height: 1080},
	"9:16": {Width: 1080, Height: 1920},
	"1:1":  {Width: 1080, Height: 1080},
	"4:5":  {Width: 1080, Height: 1350},
}

var QualitySettings = map[string]QualitySetting{
	"low":    {Bitrate: "2M", CRF: 28},
	"medium": {Bitrate: "5M", CRF: 23},
	"high":   {Bitrate: "10M", CRF: 18},
	"ultra":  {Bitrate: "20M", CRF: 15},
}
