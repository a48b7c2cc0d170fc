package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/slides2video/internal/assets"
	"github.com/ivlev/slides2video/internal/project"
	"github.com/ivlev/slides2video/internal/renderer"
	"github.com/ivlev/slides2video/internal/system"
	"github.com/ivlev/slides2video/internal/timeline"
)

// Render encodes every scene in parallel and assembles the final video.
// Asset references must already have passed ValidateAssets; a missing
// asset here is a caller bug.
func Render(ctx context.Context, p *project.VideoProject, mgr *assets.Manager, enc Encoder, outPath string, log zerolog.Logger) error {
	tmpDir, err := os.MkdirTemp("", "slides2video_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	ix := timeline.Build(p)
	workers := system.Workers()
	log.Info().
		Int("scenes", len(p.Scenes)).
		Int("total_frames", ix.TotalFrames()).
		Float64("duration_s", p.TotalDurationSeconds()).
		Int("workers", workers).
		Msg("starting render")

	segments := make([]string, len(p.Scenes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range p.Scenes {
		i := i
		g.Go(func() error {
			sc := &p.Scenes[i]
			assetPath, ok := mgr.Resolve(sc.AssetPath)
			if !ok {
				return fmt.Errorf("scene %d: asset %q not found", i, sc.AssetPath)
			}

			filter := renderer.SceneFilter(sc, ix.Entry(i), p.Resolution, p.FPS)
			segPath := filepath.Join(tmpDir, fmt.Sprintf("s%d.mp4", i))
			if err := enc.EncodeScene(gctx, assetPath, segPath, sc, p, filter); err != nil {
				return err
			}

			segments[i] = segPath
			log.Debug().Int("scene", i).Str("segment", segPath).Msg("segment ready")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("assembling final video")
	if err := enc.Concatenate(ctx, segments, outPath, tmpDir, p); err != nil {
		return fmt.Errorf("assembly failed: %w", err)
	}

	log.Info().Str("output", outPath).Msg("render complete")
	return nil
}
