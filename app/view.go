package app

import (
	"math"
	"time"

	"github.com/Divyaeh-iitm/Simpledashboard/domain/epd"
)

// JSON view of an analysis run. Undefined statistics (NaN) become null,
// which encoding/json cannot represent for a plain float64.

// RunView is the serializable form of an AnalysisRun.
type RunView struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Project   ProjectView    `json:"project"`
	Materials []MaterialView `json:"materials"`
	Warnings  []string       `json:"warnings"`
	ByEnergy  []RowView      `json:"sorted_by_energy"`
	ByCarbon  []RowView      `json:"sorted_by_carbon"`
}

// ProjectView echoes the request's project details.
type ProjectView struct {
	Name        string `json:"name,omitempty"`
	Area        string `json:"area,omitempty"`
	Location    string `json:"location,omitempty"`
	WorkPackage string `json:"work_package,omitempty"`
}

// MaterialView is the serializable per-material summary.
type MaterialView struct {
	Material string `json:"material"`
	Matched  int    `json:"matched_records"`
	NoData   bool   `json:"no_data,omitempty"`

	SkewnessEnergy *float64 `json:"skewness_ee,omitempty"`
	SkewnessCarbon *float64 `json:"skewness_ec,omitempty"`
	MedianEnergy   *float64 `json:"median_ee,omitempty"`
	MedianCarbon   *float64 `json:"median_ec,omitempty"`

	EnergyProfile *ProfileView `json:"energy_profile,omitempty"`
	CarbonProfile *ProfileView `json:"carbon_profile,omitempty"`
}

// ProfileView is the serializable distribution profile.
type ProfileView struct {
	N        int      `json:"n"`
	Mean     *float64 `json:"mean"`
	StdDev   *float64 `json:"std_dev"`
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Q1       *float64 `json:"q1"`
	Median   *float64 `json:"median"`
	Q3       *float64 `json:"q3"`
	Skewness *float64 `json:"skewness"`
	Kurtosis *float64 `json:"kurtosis"`
	Outliers int      `json:"outlier_count"`
	NormalP  *float64 `json:"normality_p"`
	IsNormal bool     `json:"is_normal"`
}

// RowView is the serializable comparison row.
type RowView struct {
	Primary        string   `json:"primary"`
	Secondary      string   `json:"secondary"`
	CombinedEnergy *float64 `json:"combined_ee"`
	CombinedCarbon *float64 `json:"combined_ec"`
}

// View converts the run into its JSON-safe form.
func (run *AnalysisRun) View() RunView {
	view := RunView{
		ID:        run.ID.String(),
		CreatedAt: run.CreatedAt,
		Project: ProjectView{
			Name:        run.Request.ProjectName,
			Area:        run.Request.ProjectArea,
			Location:    run.Request.ProjectLocation,
			WorkPackage: run.Request.WorkPackage,
		},
		Warnings: run.Warnings,
		ByEnergy: rowViews(run.ByEnergy),
		ByCarbon: rowViews(run.ByCarbon),
	}

	for _, result := range run.Results {
		mv := MaterialView{Material: result.Material}
		if result.Summary == nil {
			mv.NoData = true
		} else {
			s := result.Summary
			mv.Matched = len(s.Matched)
			mv.SkewnessEnergy = nullable(s.SkewnessEnergy)
			mv.SkewnessCarbon = nullable(s.SkewnessCarbon)
			mv.MedianEnergy = nullable(s.MedianEnergy)
			mv.MedianCarbon = nullable(s.MedianCarbon)
			mv.EnergyProfile = profileView(s.EnergyProfile)
			mv.CarbonProfile = profileView(s.CarbonProfile)
		}
		view.Materials = append(view.Materials, mv)
	}

	return view
}

func rowViews(rows []epd.ComparisonRow) []RowView {
	out := make([]RowView, 0, len(rows))
	for _, row := range rows {
		out = append(out, RowView{
			Primary:        row.Primary,
			Secondary:      row.Secondary,
			CombinedEnergy: nullable(row.CombinedEnergy),
			CombinedCarbon: nullable(row.CombinedCarbon),
		})
	}
	return out
}

func profileView(p epd.DistributionProfile) *ProfileView {
	return &ProfileView{
		N:        p.N,
		Mean:     nullable(p.Mean),
		StdDev:   nullable(p.StdDev),
		Min:      nullable(p.Min),
		Max:      nullable(p.Max),
		Q1:       nullable(p.Q1),
		Median:   nullable(p.Median),
		Q3:       nullable(p.Q3),
		Skewness: nullable(p.Skewness),
		Kurtosis: nullable(p.Kurtosis),
		Outliers: p.OutlierCount,
		NormalP:  nullable(p.NormalP),
		IsNormal: p.IsNormal,
	}
}

// nullable maps the NaN sentinel to nil so it serializes as JSON null.
func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
