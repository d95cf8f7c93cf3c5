package models

// KPIStatus is the traffic-light rating of a KPI entry.
type KPIStatus string

const (
	KPIGreen   KPIStatus = "Green"
	KPIYellow  KPIStatus = "Yellow"
	KPIRed     KPIStatus = "Red"
	KPIUnknown KPIStatus = "Unknown"
)

// KPITrend is the recorded direction of a KPI.
type KPITrend string

const (
	TrendImproving KPITrend = "Improving"
	TrendStable    KPITrend = "Stable"
	TrendDeclining KPITrend = "Declining"
)

// KPIEntry represents a row of the KPI sheet.
type KPIEntry struct {
	ID           string    `json:"entry_id" yaml:"entry_id"`
	Date         string    `json:"date" yaml:"date" validate:"omitempty,datetime=2006-01-02"`
	EmployeeName string    `json:"employee_name" yaml:"employee_name" validate:"required"`
	Department   string    `json:"department" yaml:"department" validate:"required"`
	Name         string    `json:"kpi_name" yaml:"kpi_name" validate:"required"`
	Target       float64   `json:"target_value" yaml:"target_value" validate:"gte=0"`
	Actual       float64   `json:"actual_value" yaml:"actual_value" validate:"gte=0"`
	Status       KPIStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Trend        KPITrend  `json:"performance_trend,omitempty" yaml:"performance_trend,omitempty"`
}

// KPIStatusFor rates actual against target: >=90% Green, >=70% Yellow, else Red.
func KPIStatusFor(target, actual float64) KPIStatus {
	switch {
	case actual >= target*0.9:
		return KPIGreen
	case actual >= target*0.7:
		return KPIYellow
	default:
		return KPIRed
	}
}

// NormalizeKPIStatus folds s onto the traffic-light set, degrading to Unknown.
func NormalizeKPIStatus(s string) KPIStatus {
	switch st := KPIStatus(canonical(s)); st {
	case KPIGreen, KPIYellow, KPIRed:
		return st
	}
	return KPIUnknown
}

// NormalizeKPITrend folds s onto the trend set, degrading to Stable.
func NormalizeKPITrend(s string) KPITrend {
	switch tr := KPITrend(canonical(s)); tr {
	case TrendImproving, TrendDeclining:
		return tr
	}
	return TrendStable
}

// Underperforming reports whether the entry is rated Red or Yellow.
func (k KPIEntry) Underperforming() bool {
	st := NormalizeKPIStatus(string(k.Status))
	return st == KPIRed || st == KPIYellow
}

// Attainment is actual as a percentage of target, 0 when no target is set.
func (k KPIEntry) Attainment() float64 {
	if k.Target <= 0 {
		return 0
	}
	return k.Actual / k.Target * 100
}
