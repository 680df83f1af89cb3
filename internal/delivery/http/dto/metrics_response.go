package dto

import "time"

// MetricsSnapshot is the full analytics payload computed in one pass and
// cached as a unit. Individual endpoints slice out their section.
type MetricsSnapshot struct {
	Overview    OverviewData       `json:"overview"`
	TimeToHire  TimeToHireData     `json:"time_to_hire"`
	CostPerHire CostPerHireData    `json:"cost_per_hire"`
	Funnel      FunnelData         `json:"funnel"`
	Sources     []SourceMetricData `json:"sources"`
	Recruiters  []RecruiterData    `json:"recruiters"`
	Departments []DepartmentData   `json:"departments"`
	Trends      []TrendPointData   `json:"trends"`
	Pipeline    []StageCountData   `json:"pipeline"`
	GeneratedAt time.Time          `json:"generated_at"`
}

type OverviewData struct {
	TotalCandidates   int `json:"total_candidates"`
	TotalHired        int `json:"total_hired"`
	OpenPositions     int `json:"open_positions"`
	FilledPositions   int `json:"filled_positions"`
	ApplicationsMonth int `json:"applications_this_month"`
	HiresMonth        int `json:"hires_this_month"`
}

type TimeToHireData struct {
	Hires        int                `json:"hires"`
	MeanDays     *float64           `json:"mean_days,omitempty"`
	MedianDays   *float64           `json:"median_days,omitempty"`
	ByPosition   map[string]float64 `json:"by_position"`
	ByDepartment map[string]float64 `json:"by_department"`
}

type OpeningCostData struct {
	Reference   string   `json:"reference"`
	Title       string   `json:"title"`
	Department  string   `json:"department"`
	HiringCost  *float64 `json:"hiring_cost,omitempty"`
	Hires       int      `json:"hires"`
	CostPerHire *float64 `json:"cost_per_hire,omitempty"`
}

type CostPerHireData struct {
	TotalCost      float64           `json:"total_cost"`
	TotalHires     int               `json:"total_hires"`
	AveragePerHire *float64          `json:"average_per_hire,omitempty"`
	PerOpening     []OpeningCostData `json:"per_opening"`
}

type FunnelStageData struct {
	Stage              string   `json:"stage"`
	Reached            int      `json:"reached"`
	OfTotal            *float64 `json:"of_total,omitempty"`
	ConversionFromPrev *float64 `json:"conversion_from_prev,omitempty"`
}

type FunnelData struct {
	Total             int               `json:"total"`
	Stages            []FunnelStageData `json:"stages"`
	OverallConversion *float64          `json:"overall_conversion,omitempty"`
}

type SourceMetricData struct {
	Source   string   `json:"source"`
	Total    int      `json:"total"`
	Hired    int      `json:"hired"`
	HireRate *float64 `json:"hire_rate,omitempty"`
}

type RecruiterData struct {
	Recruiter string   `json:"recruiter"`
	Total     int      `json:"total"`
	Hired     int      `json:"hired"`
	InProcess int      `json:"in_process"`
	HireRate  *float64 `json:"hire_rate,omitempty"`
}

type DepartmentData struct {
	Department    string `json:"department"`
	OpenPositions int    `json:"open_positions"`
	Candidates    int    `json:"candidates"`
	Hired         int    `json:"hired"`
}

type TrendPointData struct {
	Period       string `json:"period"`
	Applications int    `json:"applications"`
	Hires        int    `json:"hires"`
}

type StageCountData struct {
	Stage string   `json:"stage"`
	Count int      `json:"count"`
	Share *float64 `json:"share,omitempty"`
}

// DashboardData is the headline view: overview counts plus the KPIs the
// dashboard cards show.
type DashboardData struct {
	Overview           OverviewData     `json:"overview"`
	MeanTimeToHire     *float64         `json:"mean_time_to_hire_days,omitempty"`
	AverageCostPerHire *float64         `json:"average_cost_per_hire,omitempty"`
	OverallConversion  *float64         `json:"overall_conversion,omitempty"`
	Pipeline           []StageCountData `json:"pipeline"`
	GeneratedAt        time.Time        `json:"generated_at"`
}
