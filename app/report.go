package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/Divyaeh-iitm/Simpledashboard/domain/epd"
)

// BuildMarkdown renders an analysis run as a markdown report: project
// details, per-material statistics, and both sorted comparison tables.
// The UI renders it to HTML; the CLI can emit it directly.
func BuildMarkdown(run *AnalysisRun) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# EPD Analysis Report\n\n")
	fmt.Fprintf(&b, "Run `%s` — %s\n\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04 UTC"))

	writeProjectSection(&b, run.Request)

	fmt.Fprintf(&b, "## Material Summaries\n\n")
	for _, result := range run.Results {
		if result.Summary == nil {
			continue
		}
		writeMaterialSection(&b, result.Summary)
	}

	if len(run.Warnings) > 0 {
		fmt.Fprintf(&b, "## Warnings\n\n")
		for _, w := range run.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	writeComparisonSection(&b, "Embodied Energy", epd.MetricEnergy, run.ByEnergy)
	writeComparisonSection(&b, "Embodied Carbon", epd.MetricCarbon, run.ByCarbon)

	return b.String()
}

func writeProjectSection(b *strings.Builder, req Request) {
	if req.ProjectName == "" && req.ProjectArea == "" && req.ProjectLocation == "" && req.WorkPackage == "" {
		return
	}
	fmt.Fprintf(b, "## Project\n\n")
	if req.ProjectName != "" {
		fmt.Fprintf(b, "- **Name**: %s\n", req.ProjectName)
	}
	if req.ProjectArea != "" {
		fmt.Fprintf(b, "- **Area**: %s\n", req.ProjectArea)
	}
	if req.ProjectLocation != "" {
		fmt.Fprintf(b, "- **Location**: %s\n", req.ProjectLocation)
	}
	if req.WorkPackage != "" {
		fmt.Fprintf(b, "- **Work Package**: %s\n", req.WorkPackage)
	}
	b.WriteString("\n")
}

func writeMaterialSection(b *strings.Builder, s *epd.MaterialSummary) {
	fmt.Fprintf(b, "### %s\n\n", s.Material)
	fmt.Fprintf(b, "Matched records: %d\n\n", len(s.Matched))
	fmt.Fprintf(b, "| Statistic | Embodied Energy | Embodied Carbon |\n")
	fmt.Fprintf(b, "|---|---|---|\n")
	fmt.Fprintf(b, "| Skewness | %s | %s |\n", FormatStat(s.SkewnessEnergy), FormatStat(s.SkewnessCarbon))
	fmt.Fprintf(b, "| Representative (trimmed median) | %s | %s |\n", FormatStat(s.MedianEnergy), FormatStat(s.MedianCarbon))
	fmt.Fprintf(b, "| Values used / outliers removed | %d / %d | %d / %d |\n",
		s.EnergyTrim.Retained, s.EnergyTrim.Removed, s.CarbonTrim.Retained, s.CarbonTrim.Removed)
	fmt.Fprintf(b, "| Mean | %s | %s |\n", FormatStat(s.EnergyProfile.Mean), FormatStat(s.CarbonProfile.Mean))
	fmt.Fprintf(b, "| Std dev | %s | %s |\n", FormatStat(s.EnergyProfile.StdDev), FormatStat(s.CarbonProfile.StdDev))
	fmt.Fprintf(b, "| Min | %s | %s |\n", FormatStat(s.EnergyProfile.Min), FormatStat(s.CarbonProfile.Min))
	fmt.Fprintf(b, "| Q1 | %s | %s |\n", FormatStat(s.EnergyProfile.Q1), FormatStat(s.CarbonProfile.Q1))
	fmt.Fprintf(b, "| Q3 | %s | %s |\n", FormatStat(s.EnergyProfile.Q3), FormatStat(s.CarbonProfile.Q3))
	fmt.Fprintf(b, "| Max | %s | %s |\n", FormatStat(s.EnergyProfile.Max), FormatStat(s.CarbonProfile.Max))
	b.WriteString("\n")
}

func writeComparisonSection(b *strings.Builder, name string, m epd.Metric, rows []epd.ComparisonRow) {
	fmt.Fprintf(b, "## Results Sorted by %s (%s)\n\n", name, m)
	if len(rows) == 0 {
		fmt.Fprintf(b, "No primary material had data.\n\n")
		return
	}
	fmt.Fprintf(b, "| Primary | Secondary | Combined EE | Combined EC |\n")
	fmt.Fprintf(b, "|---|---|---|---|\n")
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			row.Primary, row.Secondary, FormatStat(row.CombinedEnergy), FormatStat(row.CombinedCarbon))
	}
	b.WriteString("\n")
}

// FormatStat renders a statistic for display, using "undefined" as the
// human-readable form of the NaN sentinel.
func FormatStat(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.2f", v)
}
