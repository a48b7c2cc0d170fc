// Package renderer turns resolved scene state into FFmpeg filter
// graphs. It is the "how to paint" half: the engine decides what is
// visible, this package phrases it as zoompan/eq/drawtext expressions.
package renderer

import (
	"fmt"
	"strings"

	"github.com/ivlev/slides2video/internal/animation"
	"github.com/ivlev/slides2video/internal/overlay"
	"github.com/ivlev/slides2video/internal/project"
	"github.com/ivlev/slides2video/internal/timeline"
)

// Work at 2x output size before zoompan for better zoom quality, then
// scale back down.
const supersample = 2

// SceneFilter builds the complete -vf chain for one scene: optional
// crop, aspect fit, animated zoompan, color eq and overlay drawtext.
func SceneFilter(sc *project.Scene, entry timeline.Entry, res project.Resolution, fps float64) string {
	parts := []string{}

	if sc.Crop != nil {
		parts = append(parts, fmt.Sprintf("crop=iw*%.4f:ih*%.4f:iw*%.4f:ih*%.4f",
			sc.Crop.Width, sc.Crop.Height, sc.Crop.X, sc.Crop.Y))
	}

	w2, h2 := res.Width*supersample, res.Height*supersample
	parts = append(parts, fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		w2, h2, w2, h2))

	if zp := zoomPanFilter(sc, entry.DurationFrames, res, fps); zp != "" {
		parts = append(parts, zp)
	}

	if eq := eqFilter(animation.EvaluateFilters(sc.Filters)); eq != "" {
		parts = append(parts, eq)
	}

	for i := range sc.TextOverlays {
		parts = append(parts, drawTextFilter(&sc.TextOverlays[i], entry.DurationFrames, res, fps))
	}

	parts = append(parts, fmt.Sprintf("scale=%d:%d", res.Width, res.Height))
	return strings.Join(parts, ",")
}

// zoomPanFilter phrases the scene's start/end transforms as a zoompan
// expression linear in the output frame counter `on`.
func zoomPanFilter(sc *project.Scene, durationFrames int, res project.Resolution, fps float64) string {
	start, end := animation.Keyframes(sc.Animation, sc.AnimationIntensity, res)
	if durationFrames <= 0 || (start == end && start == animation.Identity) {
		return ""
	}

	n := durationFrames
	zExpr := linearExpr(start.Scale, end.Scale, n)
	// Translations are authored at output scale; the zoompan input is
	// supersampled, so offsets double.
	xExpr := fmt.Sprintf("iw/2-(iw/zoom/2)-(%s)", linearExpr(start.X*supersample, end.X*supersample, n))
	yExpr := fmt.Sprintf("ih/2-(ih/zoom/2)-(%s)", linearExpr(start.Y*supersample, end.Y*supersample, n))

	return fmt.Sprintf("zoompan=z='%s':x='%s':y='%s':d=%d:s=%dx%d:fps=%d",
		zExpr, xExpr, yExpr, durationFrames, res.Width*supersample, res.Height*supersample, int(fps))
}

// linearExpr interpolates a value over n frames, clamped at the final
// frame so the endpoint is hit exactly.
func linearExpr(from, to float64, n int) string {
	if from == to {
		return fmt.Sprintf("%.6f", from)
	}
	return fmt.Sprintf("%.6f+(%.6f-%.6f)*min(on/%d\\,1)", from, to, from, n)
}

// eqFilter maps the evaluated filter percentages onto FFmpeg's eq
// ranges: brightness -1..1 around 0, contrast and saturation around 1.
func eqFilter(fv animation.FilterValues) string {
	if fv == animation.Neutral {
		return ""
	}
	return fmt.Sprintf("eq=brightness=%.3f:contrast=%.3f:saturation=%.3f",
		(fv.Brightness-100)/100, fv.Contrast/100, fv.Saturation/100)
}

// drawTextFilter renders one overlay with its visibility window,
// entrance alpha ramp and slide offset, mirroring the scheduler's
// window-relative semantics.
func drawTextFilter(ov *project.TextOverlay, sceneDurationFrames int, res project.Resolution, fps float64) string {
	startF, endF := overlay.Window(ov, sceneDurationFrames, fps)
	window := endF - startF
	if window < 1 {
		window = 1
	}

	x, y := anchorExprs(ov.Position, res)

	alpha := "1"
	switch ov.Animation {
	case project.OverlayAnimFadeIn:
		alpha = fadeExpr(startF, window)
	case project.OverlayAnimSlideIn:
		alpha = fadeExpr(startF, window)
		y = fmt.Sprintf("%s+50*(1-min((n-%d)/%.2f\\,1))", y, startF, 0.3*float64(window))
	}

	d := fmt.Sprintf(
		"drawtext=text='%s':fontsize=%d:fontcolor=%s:x=%s:y=%s:alpha='%s':enable='between(n\\,%d\\,%d)'",
		escapeText(ov.Text), ov.FontSize*supersample, ov.Color, x, y, alpha, startF, endF-1)
	if ov.BackgroundColor != "" {
		d += fmt.Sprintf(":box=1:boxcolor=%s:boxborderw=10", ov.BackgroundColor)
	} else {
		d += ":shadowx=2:shadowy=2:shadowcolor=black@0.8"
	}
	return d
}

func fadeExpr(startF, window int) string {
	return fmt.Sprintf("min((n-%d)/%.2f\\,1)", startF, 0.2*float64(window))
}

// anchorExprs maps the nine named anchors to drawtext x/y expressions
// with 5% side margins and a 10% bottom margin, matching the overlay
// layout of the preview compositor.
func anchorExprs(pos project.TextPosition, res project.Resolution) (x, y string) {
	switch pos {
	case project.PosTopLeft, project.PosMiddleLeft, project.PosBottomLeft:
		x = "w*0.05"
	case project.PosTopRight, project.PosMiddleRight, project.PosBottomRight:
		x = "w*0.95-text_w"
	default:
		x = "(w-text_w)/2"
	}
	switch pos {
	case project.PosTopLeft, project.PosTopCenter, project.PosTopRight:
		y = "h*0.05"
	case project.PosMiddleLeft, project.PosMiddleCenter, project.PosMiddleRight:
		y = "(h-text_h)/2"
	default:
		y = "h*0.9-text_h"
	}
	return x, y
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, `:`, `\:`)
	return s
}
