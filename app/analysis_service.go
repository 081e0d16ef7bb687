package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Divyaeh-iitm/Simpledashboard/domain/core"
	"github.com/Divyaeh-iitm/Simpledashboard/domain/epd"
	"github.com/Divyaeh-iitm/Simpledashboard/internal"
	"github.com/Divyaeh-iitm/Simpledashboard/ports"
)

// SecondaryMaterial is a user-declared secondary material with its purpose.
type SecondaryMaterial struct {
	Name    string
	Purpose string
}

// Request describes one analysis run: project details, the ordered primary
// materials, the secondary materials, and the primary-to-secondary mapping.
type Request struct {
	ProjectName     string
	ProjectArea     string
	ProjectLocation string
	WorkPackage     string

	Primaries   []string
	Secondaries []SecondaryMaterial
	Mapping     map[string]string
}

// MaterialResult pairs a requested material name with its summary.
// Summary is nil when the material matched no records.
type MaterialResult struct {
	Material string
	Summary  *epd.MaterialSummary
}

// AnalysisRun is the complete outcome of one request against one dataset.
type AnalysisRun struct {
	ID        core.AnalysisID
	Request   Request
	Dataset   *epd.Dataset
	CreatedAt time.Time

	// Results holds every requested material in request order (primaries
	// first, then secondaries), including the ones with no data.
	Results []MaterialResult

	// Summaries indexes the successful results by material name.
	Summaries map[string]*epd.MaterialSummary

	Warnings []string

	Rows     []epd.ComparisonRow
	ByEnergy []epd.ComparisonRow
	ByCarbon []epd.ComparisonRow
}

// AnalysisService runs analysis requests. Each material is analyzed
// independently; a bounded number run concurrently. One material's failure
// never affects another's analysis.
type AnalysisService struct {
	analyzer      ports.MaterialAnalyzer
	maxConcurrent int64
	logger        *internal.Logger
}

// NewAnalysisService creates an analysis service.
func NewAnalysisService(analyzer ports.MaterialAnalyzer, maxConcurrent int) *AnalysisService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &AnalysisService{
		analyzer:      analyzer,
		maxConcurrent: int64(maxConcurrent),
		logger:        internal.DefaultLogger,
	}
}

// Run analyzes every requested material against the dataset and builds the
// combined comparison tables in both sort orders.
func (s *AnalysisService) Run(ctx context.Context, ds *epd.Dataset, req Request) (*AnalysisRun, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, core.NewValidationError("dataset", "no data records")
	}

	req.Primaries = cleanNames(req.Primaries)
	if len(req.Primaries) == 0 {
		return nil, core.NewValidationError("primary materials", "at least one material is required")
	}

	run := &AnalysisRun{
		ID:        core.NewAnalysisID(),
		Request:   req,
		Dataset:   ds,
		CreatedAt: time.Now().UTC(),
		Summaries: make(map[string]*epd.MaterialSummary),
	}

	materials := requestedMaterials(req)
	s.logger.Info("[AnalysisService] run %s: %d materials, %d records", run.ID, len(materials), ds.Len())

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		noMatch  = make(map[string]bool)
		failures = make(map[string]error)
	)

	sem := semaphore.NewWeighted(s.maxConcurrent)
	for _, material := range materials {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)

		go func(material string) {
			defer sem.Release(1)
			defer wg.Done()

			summary, err := s.analyzer.Analyze(ds, material)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				run.Summaries[material] = summary
			case core.IsNoMatch(err):
				noMatch[material] = true
			default:
				failures[material] = err
			}
		}(material)
	}
	wg.Wait()

	for _, material := range materials {
		run.Results = append(run.Results, MaterialResult{
			Material: material,
			Summary:  run.Summaries[material],
		})
		if noMatch[material] {
			run.Warnings = append(run.Warnings, fmt.Sprintf("No data found for material: %s", material))
		}
		if err, ok := failures[material]; ok {
			s.logger.Error("[AnalysisService] analysis failed for %q: %v", material, err)
			run.Warnings = append(run.Warnings, fmt.Sprintf("Analysis failed for material: %s", material))
		}
	}

	primarySummaries := summariesFor(run.Summaries, req.Primaries)
	secondarySummaries := summariesFor(run.Summaries, secondaryNames(req))

	run.Rows = epd.Combine(req.Primaries, primarySummaries, secondarySummaries, req.Mapping)
	run.ByEnergy = epd.SortedBy(run.Rows, epd.MetricEnergy)
	run.ByCarbon = epd.SortedBy(run.Rows, epd.MetricCarbon)

	s.logger.Info("[AnalysisService] run %s complete: %d summaries, %d rows, %d warnings",
		run.ID, len(run.Summaries), len(run.Rows), len(run.Warnings))

	return run, nil
}

// requestedMaterials is the union of primary and secondary names, first-seen
// order preserved, duplicates analyzed once.
func requestedMaterials(req Request) []string {
	seen := make(map[string]bool)
	var materials []string
	for _, name := range append(append([]string{}, req.Primaries...), secondaryNames(req)...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		materials = append(materials, name)
	}
	return materials
}

func secondaryNames(req Request) []string {
	names := make([]string, 0, len(req.Secondaries))
	for _, sec := range req.Secondaries {
		if name := trimName(sec.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func summariesFor(all map[string]*epd.MaterialSummary, names []string) map[string]*epd.MaterialSummary {
	out := make(map[string]*epd.MaterialSummary, len(names))
	for _, name := range names {
		if summary, ok := all[name]; ok {
			out[name] = summary
		}
	}
	return out
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := trimName(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
