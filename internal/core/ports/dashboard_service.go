package ports

import "context"

// DateRange describes the window a dashboard aggregation covers.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// DashboardMetrics are summary statistics derived from orders created inside
// the requested window.
type DashboardMetrics struct {
	TotalOrders           int       `json:"total_orders"`
	TotalPatterns         int       `json:"total_patterns"`
	ApprovedPatterns      int       `json:"approved_patterns"`
	AvgPatternMakingHours float64   `json:"avg_pattern_making_time_hours"`
	AvgApprovalHours      float64   `json:"avg_approval_time_hours"`
	DateRange             DateRange `json:"date_range"`
}

// DashboardService computes read-only aggregate statistics.
type DashboardService interface {
	Metrics(ctx context.Context, days int) (*DashboardMetrics, error)
}
