package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/josephgoksu/OpsWing/models"
)

// KPIPrediction projects one KPI from its recorded history.
type KPIPrediction struct {
	KPIName             string          `json:"kpi_name"`
	Entries             int             `json:"entries"`
	LastAttainment      float64         `json:"last_attainment"`
	Direction           models.KPITrend `json:"direction"`
	ProjectedAttainment float64         `json:"projected_attainment"`
}

// PerformanceTrend is the outlook over all KPIs.
type PerformanceTrend struct {
	OverallOutlook  string          `json:"overall_outlook"`
	Improving       int             `json:"improving"`
	Stable          int             `json:"stable"`
	Declining       int             `json:"declining"`
	Predictions     []KPIPrediction `json:"predictions"`
	Recommendations []string        `json:"recommendations"`
}

const trendBand = 2.0

// PredictPerformanceTrend groups entries by KPI name (first-seen order),
// sorts each series by date and extrapolates the last step. A series with
// one entry keeps its recorded trend and projects flat.
func (a *Analyzer) PredictPerformanceTrend(kpis []models.KPIEntry) PerformanceTrend {
	var names []string
	series := make(map[string][]models.KPIEntry)
	for _, k := range kpis {
		if _, ok := series[k.Name]; !ok {
			names = append(names, k.Name)
		}
		series[k.Name] = append(series[k.Name], k)
	}

	out := PerformanceTrend{Predictions: []KPIPrediction{}, Recommendations: []string{}}
	for _, name := range names {
		entries := series[name]
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })

		last := entries[len(entries)-1]
		p := KPIPrediction{
			KPIName:        name,
			Entries:        len(entries),
			LastAttainment: round2(last.Attainment()),
		}
		delta := 0.0
		if len(entries) == 1 {
			p.Direction = models.NormalizeKPITrend(string(last.Trend))
		} else {
			delta = last.Attainment() - entries[len(entries)-2].Attainment()
			switch {
			case delta > trendBand:
				p.Direction = models.TrendImproving
			case delta < -trendBand:
				p.Direction = models.TrendDeclining
			default:
				p.Direction = models.TrendStable
			}
		}
		p.ProjectedAttainment = round2(math.Max(0, last.Attainment()+delta))

		switch p.Direction {
		case models.TrendImproving:
			out.Improving++
		case models.TrendDeclining:
			out.Declining++
			out.Recommendations = append(out.Recommendations,
				fmt.Sprintf("Review %s: attainment fell to %.1f%%", name, p.LastAttainment))
		default:
			out.Stable++
		}
		out.Predictions = append(out.Predictions, p)
	}

	switch {
	case len(out.Predictions) == 0:
		out.OverallOutlook = "Insufficient data"
	case out.Declining > out.Improving:
		out.OverallOutlook = "Declining"
	case out.Improving > out.Declining:
		out.OverallOutlook = "Improving"
	default:
		out.OverallOutlook = "Stable"
	}
	return out
}
