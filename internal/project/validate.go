package project

import "fmt"

// AssetReport is the outcome of checking scene references against the
// set of available asset names. Missing assets are non-fatal here; the
// caller decides whether to block on them.
type AssetReport struct {
	Valid    bool     `json:"valid" yaml:"valid"`
	Missing  []string `json:"missing" yaml:"missing"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// QualityReport collects soft quality problems. Errors block rendering,
// warnings do not.
type QualityReport struct {
	Passed   bool     `json:"passed" yaml:"passed"`
	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// ValidateAssets checks that every scene's assetPath is among the
// provided names. Each missing reference is reported once; provided
// assets no scene uses produce warnings.
func ValidateAssets(p *VideoProject, available []string) AssetReport {
	have := make(map[string]bool, len(available))
	for _, name := range available {
		have[name] = false
	}

	report := AssetReport{Valid: true}
	seenMissing := make(map[string]bool)
	for i, sc := range p.Scenes {
		if _, ok := have[sc.AssetPath]; ok {
			have[sc.AssetPath] = true
			continue
		}
		if !seenMissing[sc.AssetPath] {
			seenMissing[sc.AssetPath] = true
			report.Missing = append(report.Missing, sc.AssetPath)
		}
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("scene %d references missing asset %q", i, sc.AssetPath))
	}
	for _, name := range available {
		if !have[name] {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("asset %q is not used by any scene", name))
		}
	}
	report.Valid = len(report.Missing) == 0
	return report
}

// QualityCheck flags projects that would render but look broken: too
// short or too long overall, empty overlay text, captionless videos.
func QualityCheck(p *VideoProject) QualityReport {
	report := QualityReport{Passed: true}

	total := p.TotalDurationSeconds()
	if total < 1 {
		report.Errors = append(report.Errors,
			fmt.Sprintf("total duration %.2fs is below the 1s minimum", total))
	} else if total < 3 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("total duration %.2fs is very short", total))
	}
	if total > 600 {
		report.Errors = append(report.Errors,
			fmt.Sprintf("total duration %.2fs exceeds the 600s maximum", total))
	}

	if len(p.Scenes) > 100 {
		report.Errors = append(report.Errors,
			fmt.Sprintf("%d scenes exceed the 100 scene maximum", len(p.Scenes)))
	}

	hasOverlay := false
	for i, sc := range p.Scenes {
		for j, ov := range sc.TextOverlays {
			hasOverlay = true
			if ov.Text == "" {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("scene %d overlay %d has empty text", i, j))
			}
			if ov.StartTime >= sc.Duration {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("scene %d overlay %d starts after the scene ends", i, j))
			}
		}
		if sc.TransitionDuration > sc.Duration/2 && sc.Transition != TransitionCut {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("scene %d transition covers more than half the scene", i))
		}
	}
	if !hasOverlay {
		report.Warnings = append(report.Warnings, "project has no text overlays")
	}

	report.Passed = len(report.Errors) == 0
	return report
}
