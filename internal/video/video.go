// Package video runs FFmpeg: one encoded segment per scene, then a
// concatenation pass that applies transitions and the audio mix.
package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ivlev/slides2video/internal/project"
)

// Encoder produces per-scene segments and assembles the final video.
type Encoder interface {
	EncodeScene(ctx context.Context, assetPath, outPath string, sc *project.Scene, p *project.VideoProject, filter string) error
	Concatenate(ctx context.Context, segmentPaths []string, finalPath, tmpDir string, p *project.VideoProject) error
}

type FFmpegEncoder struct{}

// xfadeNames maps project transitions to FFmpeg xfade transition names.
// A cut has no entry: cut boundaries are stream-copied, never blended.
var xfadeNames = map[project.TransitionType]string{
	project.TransitionFade:       "fadeblack",
	project.TransitionCrossfade:  "fade",
	project.TransitionWipeLeft:   "wipeleft",
	project.TransitionWipeRight:  "wiperight",
	project.TransitionSlideLeft:  "slideleft",
	project.TransitionSlideRight: "slideright",
}

// EncodeScene renders one scene to a standalone segment. Image assets
// are looped for the scene duration; video assets play natively.
func (e *FFmpegEncoder) EncodeScene(ctx context.Context, assetPath, outPath string, sc *project.Scene, p *project.VideoProject, filter string) error {
	args := []string{"-y"}
	if sc.AssetType == project.AssetImage {
		args = append(args, "-loop", "1")
	}
	args = append(args,
		"-i", assetPath,
		"-vf", filter,
		"-t", fmt.Sprintf("%f", sc.Duration),
		"-r", fmt.Sprintf("%f", p.FPS),
		"-pix_fmt", "yuv420p",
		"-an",
	)
	args = append(args, qualityArgs(p)...)
	args = append(args, outPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg segment error for scene %s: %w, output: %s", sc.ID, err, string(out))
	}
	return nil
}

// Concatenate assembles segments into the final video. Segments joined
// only by cuts go through the lossless concat demuxer; anything with a
// blend or an audio track takes the filter_complex path.
func (e *FFmpegEncoder) Concatenate(ctx context.Context, segmentPaths []string, finalPath, tmpDir string, p *project.VideoProject) error {
	needComplex := p.Audio != nil
	for i := 0; i < len(p.Scenes)-1; i++ {
		if _, ok := xfadeNames[p.Scenes[i].Transition]; ok {
			needComplex = true
		}
	}

	if !needComplex || len(segmentPaths) == 1 {
		return e.concatCopy(ctx, segmentPaths, finalPath, tmpDir)
	}

	args := []string{"-y"}
	for _, path := range segmentPaths {
		args = append(args, "-i", path)
	}

	voIndex := -1
	bgIndex := -1
	if p.Audio != nil && p.Audio.Voiceover != "" {
		voIndex = len(segmentPaths)
		args = append(args, "-i", p.Audio.Voiceover)
	}
	if p.Audio != nil && p.Audio.BackgroundMusic != "" {
		bgIndex = len(segmentPaths)
		if voIndex != -1 {
			bgIndex++
		}
		args = append(args, "-stream_loop", "-1", "-i", p.Audio.BackgroundMusic)
	}

	var graph strings.Builder
	lastOut := "[0:v]"
	offset := 0.0

	for i := 1; i < len(segmentPaths); i++ {
		prev := p.Scenes[i-1]
		name, blended := xfadeNames[prev.Transition]
		if blended {
			offset += prev.Duration - prev.TransitionDuration
			out := fmt.Sprintf("[v%d]", i)
			fmt.Fprintf(&graph, "%s[%d:v]xfade=transition=%s:duration=%f:offset=%f%s;",
				lastOut, i, name, prev.TransitionDuration, offset, out)
			lastOut = out
		} else {
			offset += prev.Duration
			out := fmt.Sprintf("[v%d]", i)
			fmt.Fprintf(&graph, "%s[%d:v]concat=n=2:v=1:a=0%s;", lastOut, i, out)
			lastOut = out
		}
	}

	audioOut := ""
	if voIndex != -1 && bgIndex != -1 {
		fmt.Fprintf(&graph, "[%d:a]volume=%f[bg];[%d:a]volume=%f[vo];[vo][bg]amix=inputs=2:duration=first:dropout_transition=3[aout];",
			bgIndex, p.Audio.MusicVolume, voIndex, p.Audio.VoiceoverVolume)
		audioOut = "[aout]"
	} else if voIndex != -1 {
		fmt.Fprintf(&graph, "[%d:a]volume=%f[aout];", voIndex, p.Audio.VoiceoverVolume)
		audioOut = "[aout]"
	} else if bgIndex != -1 {
		fmt.Fprintf(&graph, "[%d:a]volume=%f[aout];", bgIndex, p.Audio.MusicVolume)
		audioOut = "[aout]"
	}

	filterGraph := strings.TrimSuffix(graph.String(), ";")
	if filterGraph != "" {
		args = append(args, "-filter_complex", filterGraph)
	}

	args = append(args, "-map", lastOut)
	if audioOut != "" {
		args = append(args, "-map", audioOut, "-shortest")
	}
	args = append(args, "-pix_fmt", "yuv420p")
	args = append(args, qualityArgs(p)...)
	args = append(args, finalPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat error: %w, output: %s", err, string(out))
	}
	return nil
}

func (e *FFmpegEncoder) concatCopy(ctx context.Context, segmentPaths []string, finalPath, tmpDir string) error {
	listPath := filepath.Join(tmpDir, "inputs.txt")
	if err := writeConcatList(listPath, segmentPaths); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat", "-safe", "0", "-i", listPath,
		"-c", "copy", finalPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat error: %w, output: %s", err, string(out))
	}
	return nil
}

// writeConcatList writes the concat demuxer file list. A partial list
// would make ffmpeg silently drop segments, so every write is checked.
func writeConcatList(path string, segmentPaths []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, p := range segmentPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			f.Close()
			return fmt.Errorf("cannot resolve segment path %s: %w", p, err)
		}
		if _, err := fmt.Fprintf(f, "file '%s'\n", abs); err != nil {
			f.Close()
			return fmt.Errorf("cannot write concat list: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot write concat list: %w", err)
	}
	return nil
}

func qualityArgs(p *project.VideoProject) []string {
	q := project.QualitySettings[p.Quality]
	return []string{"-c:v", "libx264", "-crf", fmt.Sprintf("%d", q.CRF), "-preset", "medium"}
}
