package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/slides2video/internal/assets"
	"github.com/ivlev/slides2video/internal/engine"
	"github.com/ivlev/slides2video/internal/project"
	"github.com/ivlev/slides2video/internal/system"
	"github.com/ivlev/slides2video/internal/timeline"
	"github.com/ivlev/slides2video/internal/video"
)

func main() {
	// .env can pre-seed the directory flags; explicit flags win.
	godotenv.Load()

	projectPtr := flag.String("project", "", "Path to the project file (JSON or YAML)")
	assetsPtr := flag.String("assets", envOr("SLIDES2VIDEO_ASSETS", "input/assets"), "Directory with image/video/audio assets")
	outputPtr := flag.String("output", envOr("SLIDES2VIDEO_OUTPUT", ""), "Output video path (default: output/<project>.<format>)")
	validatePtr := flag.Bool("validate", false, "Validate the project and print the timeline preview, then exit")
	previewPtr := flag.Int("preview", 10, "Number of timeline entries in the validation preview")
	framePtr := flag.Int("frame", -1, "Resolve a single frame and print its state as YAML")
	dumpPtr := flag.String("dump", "", "Write the resolved state of every frame to this YAML file")
	verbosePtr := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if !*verbosePtr {
		log = log.Level(zerolog.InfoLevel)
	}

	if *projectPtr == "" {
		log.Fatal().Msg("-project is required")
	}

	data, err := os.ReadFile(*projectPtr)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read project file")
	}

	var p *project.VideoProject
	if ext := strings.ToLower(filepath.Ext(*projectPtr)); ext == ".yaml" || ext == ".yml" {
		p, err = project.ParseYAML(data)
	} else {
		p, err = project.Parse(data)
	}
	if err != nil {
		if se, ok := err.(*project.SchemaError); ok {
			for _, v := range se.Violations {
				log.Error().Str("field", v.Path).Msg(v.Constraint)
			}
			log.Fatal().Int("violations", len(se.Violations)).Msg("project failed schema validation")
		}
		log.Fatal().Err(err).Msg("parse failed")
	}

	ix := timeline.Build(p)
	log.Info().
		Str("project", p.ProjectName).
		Str("format", p.Format).
		Float64("fps", p.FPS).
		Int("scenes", len(p.Scenes)).
		Int("total_frames", ix.TotalFrames()).
		Float64("duration_s", p.TotalDurationSeconds()).
		Msg("project loaded")

	mgr, err := assets.NewManager(*assetsPtr)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *assetsPtr).Msg("cannot scan asset directory")
	}

	report := project.ValidateAssets(p, mgr.Names())
	for _, w := range report.Warnings {
		log.Warn().Msg(w)
	}
	qc := project.QualityCheck(p)
	for _, w := range qc.Warnings {
		log.Warn().Msg(w)
	}
	for _, e := range qc.Errors {
		log.Error().Msg(e)
	}

	if *framePtr >= 0 {
		printYAML(engine.Resolve(p, ix, *framePtr))
		return
	}

	if *dumpPtr != "" {
		if err := dumpFrames(p, ix, *dumpPtr); err != nil {
			log.Fatal().Err(err).Msg("frame dump failed")
		}
		log.Info().Str("path", *dumpPtr).Int("frames", ix.TotalFrames()).Msg("frame dump written")
		return
	}

	if *validatePtr {
		entries := ix.Entries()
		if len(entries) > *previewPtr {
			entries = entries[:*previewPtr]
		}
		printYAML(map[string]any{
			"valid":        report.Valid && qc.Passed,
			"assets":       report,
			"qualityCheck": qc,
			"timeline":     entries,
		})
		if !report.Valid || !qc.Passed {
			os.Exit(1)
		}
		return
	}

	if !report.Valid {
		log.Fatal().Strs("missing", report.Missing).Msg("missing assets")
	}
	if !qc.Passed {
		log.Fatal().Msg("quality check failed")
	}

	if err := system.InitResourceLimits(); err != nil {
		log.Warn().Err(err).Msg("could not raise file limits")
	}

	outPath := *outputPtr
	if outPath == "" {
		if err := os.MkdirAll("output", 0755); err != nil {
			log.Fatal().Err(err).Msg("cannot create output directory")
		}
		outPath = filepath.Join("output", fmt.Sprintf("%s.%s", sanitize(p.ProjectName), p.ExportFormat))
	}

	enc := &video.FFmpegEncoder{}
	if err := video.Render(context.Background(), p, mgr, enc, outPath, log); err != nil {
		log.Fatal().Err(err).Msg("render failed")
	}
}

func dumpFrames(p *project.VideoProject, ix *timeline.Index, path string) error {
	states, err := engine.ResolveRange(context.Background(), p, ix, 0, ix.TotalFrames(), system.Workers())
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(states)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func printYAML(v any) {
	data, err := yaml.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func sanitize(name string) string {
	r := strings.NewReplacer(" ", "_", "/", "-", "\\", "-")
	return r.Replace(name)
}
