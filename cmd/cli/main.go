package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Divyaeh-iitm/Simpledashboard/adapters/excel"
	"github.com/Divyaeh-iitm/Simpledashboard/app"
	"github.com/Divyaeh-iitm/Simpledashboard/domain/epd"
	"github.com/Divyaeh-iitm/Simpledashboard/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "epdash",
		Short: "EPD material analysis from the command line",
	}

	rootCmd.AddCommand(newAnalyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		file        string
		primaries   string
		secondaries string
		mapping     string
		asJSON      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze materials in an EPD spreadsheet",
		Long: `Analyze an EPD spreadsheet (.xlsx or .csv) for a set of materials.

For each material the tool reports skewness and the outlier-trimmed median of
Embodied Energy and Embodied Carbon, then combines primary and secondary
materials into comparison tables sorted by each metric.

Example:
  epdash analyze --file epd.xlsx --primary "marble, granite" --secondary grout --map "marble=grout"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			if strings.TrimSpace(primaries) == "" {
				return fmt.Errorf("--primary is required")
			}

			return runAnalyze(cmd.Context(), file, primaries, secondaries, mapping, asJSON, concurrency)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the EPD spreadsheet (.xlsx or .csv)")
	cmd.Flags().StringVar(&primaries, "primary", "", "Comma-separated primary material names")
	cmd.Flags().StringVar(&secondaries, "secondary", "", "Comma-separated secondary material names")
	cmd.Flags().StringVar(&mapping, "map", "", "primary=secondary pairs, comma-separated")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full analysis run as JSON")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Maximum concurrent material analyses")

	return cmd
}

func runAnalyze(ctx context.Context, file, primaries, secondaries, mapping string, asJSON bool, concurrency int) error {
	var reader ports.DatasetReader = excel.NewDataReader(file)
	ds, err := reader.ReadDataset()
	if err != nil {
		return err
	}

	req := app.Request{
		Primaries: splitList(primaries),
		Mapping:   parseMapping(mapping),
	}
	for _, name := range splitList(secondaries) {
		req.Secondaries = append(req.Secondaries, app.SecondaryMaterial{Name: name})
	}

	service := app.NewAnalysisService(epd.NewMaterialStatsAnalyzer(), concurrency)
	run, err := service.Run(ctx, ds, req)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run.View())
	}

	fmt.Print(app.BuildMarkdown(run))
	return nil
}

func splitList(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseMapping(input string) map[string]string {
	mapping := make(map[string]string)
	for _, pair := range strings.Split(input, ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			mapping[key] = value
		}
	}
	return mapping
}
