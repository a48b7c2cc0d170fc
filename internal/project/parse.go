package project

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Violation reports one schema problem as a field path plus the
// constraint it broke.
type Violation struct {
	Path       string `json:"path" yaml:"path"`
	Constraint string `json:"constraint" yaml:"constraint"`
}

// SchemaError collects every field-level violation found in one parse.
type SchemaError struct {
	Violations []Violation
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Path, v.Constraint)
	}
	return fmt.Sprintf("invalid project: %s", strings.Join(parts, "; "))
}

// Raw mirror of the wire format. Pointers distinguish "absent" from
// zero so defaulting can tell the two apart.
type rawOverlay struct {
	Text            string   `json:"text" yaml:"text"`
	Position        string   `json:"position" yaml:"position"`
	FontSize        *int     `json:"fontSize" yaml:"fontSize"`
	FontFamily      string   `json:"fontFamily" yaml:"fontFamily"`
	Color           string   `json:"color" yaml:"color"`
	BackgroundColor string   `json:"backgroundColor" yaml:"backgroundColor"`
	StartTime       *float64 `json:"startTime" yaml:"startTime"`
	Duration        *float64 `json:"duration" yaml:"duration"`
	Animation       string   `json:"animation" yaml:"animation"`
}

type rawScene struct {
	ID                 string        `json:"id" yaml:"id"`
	AssetPath          string        `json:"assetPath" yaml:"assetPath"`
	AssetType          string        `json:"assetType" yaml:"assetType"`
	Duration           *float64      `json:"duration" yaml:"duration"`
	Animation          string        `json:"animation" yaml:"animation"`
	AnimationIntensity *float64      `json:"animationIntensity" yaml:"animationIntensity"`
	Transition         string        `json:"transition" yaml:"transition"`
	TransitionDuration *float64      `json:"transitionDuration" yaml:"transitionDuration"`
	TextOverlays       []rawOverlay  `json:"textOverlays" yaml:"textOverlays"`
	Crop               *Crop         `json:"crop" yaml:"crop"`
	Filters            *Filters      `json:"filters" yaml:"filters"`
}

type rawAudio struct {
	BackgroundMusic string   `json:"backgroundMusic" yaml:"backgroundMusic"`
	MusicVolume     *float64 `json:"musicVolume" yaml:"musicVolume"`
	Voiceover       string   `json:"voiceover" yaml:"voiceover"`
	VoiceoverVolume *float64 `json:"voiceoverVolume" yaml:"voiceoverVolume"`
	TTSText         string   `json:"ttsText" yaml:"ttsText"`
	TTSVoice        string   `json:"ttsVoice" yaml:"ttsVoice"`
}

type rawSubtitles struct {
	Enabled  *bool  `json:"enabled" yaml:"enabled"`
	Language string `json:"language" yaml:"language"`
	Format   string `json:"format" yaml:"format"`
}

type rawProject struct {
	ProjectName  string        `json:"projectName" yaml:"projectName"`
	Format       string        `json:"format" yaml:"format"`
	Resolution   *Resolution   `json:"resolution" yaml:"resolution"`
	FPS          *float64      `json:"fps" yaml:"fps"`
	Scenes       []rawScene    `json:"scenes" yaml:"scenes"`
	Audio        *rawAudio     `json:"audio" yaml:"audio"`
	Subtitles    *rawSubtitles `json:"subtitles" yaml:"subtitles"`
	Preset       string        `json:"preset" yaml:"preset"`
	ExportFormat string        `json:"exportFormat" yaml:"exportFormat"`
	Quality      string        `json:"quality" yaml:"quality"`
}

// Parse decodes a JSON project description, applies preset-driven
// defaults and range checks, and returns the validated project. On any
// violation the returned error is a *SchemaError listing all of them.
func Parse(data []byte) (*VideoProject, error) {
	var raw rawProject
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &SchemaError{Violations: []Violation{{Path: "$", Constraint: fmt.Sprintf("malformed JSON: %v", err)}}}
	}
	return finish(&raw)
}

// ParseYAML is Parse for YAML project files.
func ParseYAML(data []byte) (*VideoProject, error) {
	var raw rawProject
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &SchemaError{Violations: []Violation{{Path: "$", Constraint: fmt.Sprintf("malformed YAML: %v", err)}}}
	}
	return finish(&raw)
}

func finish(raw *rawProject) (*VideoProject, error) {
	var vs []Violation
	fail := func(path, constraint string) {
		vs = append(vs, Violation{Path: path, Constraint: constraint})
	}

	if raw.ProjectName == "" {
		fail("projectName", "required, 1-200 characters")
	} else if len(raw.ProjectName) > 200 {
		fail("projectName", "must be at most 200 characters")
	}

	format := raw.Format
	if format == "" {
		format = "16:9"
	}
	if _, ok := ResolutionPresets[format]; !ok {
		fail("format", "must be one of 16:9, 9:16, 1:1, 4:5")
		format = "16:9"
	}

	presetName := raw.Preset
	if presetName == "" {
		presetName = "cinematic"
	}
	preset, ok := Presets[presetName]
	if !ok {
		fail("preset", "must be one of cinematic, corporate, social-fast, custom")
		preset = Presets["cinematic"]
	}

	res := ResolutionPresets[format]
	if raw.Resolution != nil {
		res = *raw.Resolution
		if res.Width < 640 || res.Width > 7680 {
			fail("resolution.width", "must be in [640, 7680]")
		}
		if res.Height < 480 || res.Height > 4320 {
			fail("resolution.height", "must be in [480, 4320]")
		}
	}

	fps := 30.0
	if raw.FPS != nil {
		fps = *raw.FPS
		if fps < 23.976 || fps > 60 {
			fail("fps", "must be in [23.976, 60]")
		}
	}

	exportFormat := raw.ExportFormat
	if exportFormat == "" {
		exportFormat = "mp4"
	}
	switch exportFormat {
	case "mp4", "webm", "mov":
	default:
		fail("exportFormat", "must be one of mp4, webm, mov")
	}

	quality := raw.Quality
	if quality == "" {
		quality = "high"
	}
	if _, ok := QualitySettings[quality]; !ok {
		fail("quality", "must be one of low, medium, high, ultra")
		quality = "high"
	}

	if len(raw.Scenes) == 0 {
		fail("scenes", "at least one scene is required")
	}

	scenes := make([]Scene, 0, len(raw.Scenes))
	for i, rs := range raw.Scenes {
		path := fmt.Sprintf("scenes[%d]", i)
		sc := defaultScene(rs, preset)

		if sc.ID == "" {
			sc.ID = uuid.NewString()
		}
		if sc.AssetPath == "" {
			fail(path+".assetPath", "required")
		}
		switch sc.AssetType {
		case AssetImage, AssetVideo:
		default:
			fail(path+".assetType", "must be image or video")
		}
		if sc.Duration < 0.1 || sc.Duration > 30 {
			fail(path+".duration", "must be in [0.1, 30] seconds")
		}
		if !validAnimation(sc.Animation) {
			fail(path+".animation", "unknown animation type")
		}
		if sc.AnimationIntensity < 0 || sc.AnimationIntensity > 1 {
			fail(path+".animationIntensity", "must be in [0, 1]")
		}
		if !validTransition(sc.Transition) {
			fail(path+".transition", "unknown transition type")
		}
		if sc.TransitionDuration < 0 || sc.TransitionDuration > 2 {
			fail(path+".transitionDuration", "must be in [0, 2] seconds")
		}
		// A transition cannot outlast its own scene.
		if sc.TransitionDuration > sc.Duration {
			sc.TransitionDuration = sc.Duration
		}
		if sc.Filters != nil {
			checkFilter := func(name string, v float64) {
				if v < -1 || v > 1 {
					fail(fmt.Sprintf("%s.filters.%s", path, name), "must be in [-1, 1]")
				}
			}
			checkFilter("brightness", sc.Filters.Brightness)
			checkFilter("contrast", sc.Filters.Contrast)
			checkFilter("saturation", sc.Filters.Saturation)
		}
		if sc.Crop != nil {
			if sc.Crop.X < 0 || sc.Crop.X > 1 || sc.Crop.Y < 0 || sc.Crop.Y > 1 ||
				sc.Crop.Width <= 0 || sc.Crop.Width > 1 || sc.Crop.Height <= 0 || sc.Crop.Height > 1 {
				fail(path+".crop", "fields must be normalized to [0, 1]")
			}
		}
		for j, ov := range sc.TextOverlays {
			opath := fmt.Sprintf("%s.textOverlays[%d]", path, j)
			if ov.FontSize < 12 || ov.FontSize > 200 {
				fail(opath+".fontSize", "must be in [12, 200]")
			}
			if ov.StartTime < 0 {
				fail(opath+".startTime", "must be >= 0")
			}
			if ov.Duration != nil && *ov.Duration < 0 {
				fail(opath+".duration", "must be >= 0")
			}
			switch ov.Animation {
			case OverlayAnimNone, OverlayAnimFadeIn, OverlayAnimSlideIn:
			default:
				fail(opath+".animation", "must be one of none, fade-in, slide-in")
			}
			switch ov.Position {
			case PosTopLeft, PosTopCenter, PosTopRight,
				PosMiddleLeft, PosMiddleCenter, PosMiddleRight,
				PosBottomLeft, PosBottomCenter, PosBottomRight:
			default:
				fail(opath+".position", "unknown position anchor")
			}
		}

		scenes = append(scenes, sc)
	}

	var audio *AudioTrack
	if raw.Audio != nil {
		audio = &AudioTrack{
			BackgroundMusic: raw.Audio.BackgroundMusic,
			MusicVolume:     0.3,
			Voiceover:       raw.Audio.Voiceover,
			VoiceoverVolume: 1.0,
			TTSText:         raw.Audio.TTSText,
			TTSVoice:        raw.Audio.TTSVoice,
		}
		if audio.TTSVoice == "" {
			audio.TTSVoice = "en-US-Standard-A"
		}
		if raw.Audio.MusicVolume != nil {
			audio.MusicVolume = *raw.Audio.MusicVolume
			if audio.MusicVolume < 0 || audio.MusicVolume > 1 {
				fail("audio.musicVolume", "must be in [0, 1]")
			}
		}
		if raw.Audio.VoiceoverVolume != nil {
			audio.VoiceoverVolume = *raw.Audio.VoiceoverVolume
			if audio.VoiceoverVolume < 0 || audio.VoiceoverVolume > 1 {
				fail("audio.voiceoverVolume", "must be in [0, 1]")
			}
		}
	}

	var subtitles *Subtitles
	if raw.Subtitles != nil {
		subtitles = &Subtitles{Language: raw.Subtitles.Language, Format: raw.Subtitles.Format}
		if raw.Subtitles.Enabled != nil {
			subtitles.Enabled = *raw.Subtitles.Enabled
		}
		if subtitles.Language == "" {
			subtitles.Language = "en"
		}
		if subtitles.Format == "" {
			subtitles.Format = "srt"
		}
		switch subtitles.Format {
		case "srt", "vtt":
		default:
			fail("subtitles.format", "must be srt or vtt")
		}
	}

	if len(vs) > 0 {
		return nil, &SchemaError{Violations: vs}
	}

	return &VideoProject{
		ProjectName:  raw.ProjectName,
		Format:       format,
		Resolution:   res,
		FPS:          fps,
		Scenes:       scenes,
		Audio:        audio,
		Subtitles:    subtitles,
		Preset:       presetName,
		ExportFormat: exportFormat,
		Quality:      quality,
	}, nil
}

// defaultScene fills unset scene fields from the active preset and the
// schema defaults.
func defaultScene(rs rawScene, preset Preset) Scene {
	sc := Scene{
		ID:                 rs.ID,
		AssetPath:          rs.AssetPath,
		AssetType:          AssetType(rs.AssetType),
		Animation:          AnimationType(rs.Animation),
		Transition:         TransitionType(rs.Transition),
		Crop:               rs.Crop,
		Filters:            rs.Filters,
	}
	if sc.AssetType == "" {
		sc.AssetType = AssetImage
	}
	if rs.Duration != nil {
		sc.Duration = *rs.Duration
	} else {
		sc.Duration = preset.SceneDuration
	}
	if sc.Animation == "" {
		sc.Animation = preset.Animation
	}
	if rs.AnimationIntensity != nil {
		sc.AnimationIntensity = *rs.AnimationIntensity
	} else {
		sc.AnimationIntensity = preset.AnimationIntensity
	}
	if sc.Transition == "" {
		sc.Transition = preset.Transition
	}
	if rs.TransitionDuration != nil {
		sc.TransitionDuration = *rs.TransitionDuration
	} else {
		sc.TransitionDuration = preset.TransitionDuration
	}
	if sc.Filters == nil {
		f := preset.Filters
		sc.Filters = &f
	}
	for _, ro := range rs.TextOverlays {
		sc.TextOverlays = append(sc.TextOverlays, defaultOverlay(ro))
	}
	return sc
}

func defaultOverlay(ro rawOverlay) TextOverlay {
	ov := TextOverlay{
		Text:            ro.Text,
		Position:        TextPosition(ro.Position),
		FontFamily:      ro.FontFamily,
		Color:           ro.Color,
		BackgroundColor: ro.BackgroundColor,
		Duration:        ro.Duration,
		Animation:       OverlayAnimation(ro.Animation),
	}
	if ov.Position == "" {
		ov.Position = PosBottomCenter
	}
	if ro.FontSize != nil {
		ov.FontSize = *ro.FontSize
	} else {
		ov.FontSize = 48
	}
	if ov.FontFamily == "" {
		ov.FontFamily = "Arial"
	}
	if ov.Color == "" {
		ov.Color = "#FFFFFF"
	}
	if ro.StartTime != nil {
		ov.StartTime = *ro.StartTime
	}
	if ov.Animation == "" {
		ov.Animation = OverlayAnimFadeIn
	}
	return ov
}

func validAnimation(a AnimationType) bool {
	switch a {
	case AnimationNone, AnimationKenBurnsIn, AnimationKenBurnsOut,
		AnimationZoomIn, AnimationZoomOut,
		AnimationPanLeft, AnimationPanRight, AnimationPanUp, AnimationPanDown,
		AnimationParallax:
		return true
	}
	return false
}

func validTransition(t TransitionType) bool {
	switch t {
	case TransitionCut, TransitionFade, TransitionCrossfade,
		TransitionWipeLeft, TransitionWipeRight,
		TransitionSlideLeft, TransitionSlideRight:
		return true
	}
	return false
}
