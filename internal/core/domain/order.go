package domain

import "time"

// Stage identifies one of the three independent review checkpoints on an order.
type Stage string

const (
	StageInitial  Stage = "initial"
	StageSecond   Stage = "second"
	StageApproved Stage = "approved"
)

// ValidStage reports whether s names a known review stage.
func ValidStage(s Stage) bool {
	return s == StageInitial || s == StageSecond || s == StageApproved
}

// StageStatus is the outcome of an approval decision on a stage.
type StageStatus string

const (
	StageStatusApproved StageStatus = "approved"
	StageStatusRejected StageStatus = "rejected"
)

// ValidStageStatus reports whether st is a known decision outcome.
func ValidStageStatus(st StageStatus) bool {
	return st == StageStatusApproved || st == StageStatusRejected
}

// Order is a production order moving through the pattern review pipeline.
//
// The three stage tracks are independent: no ordering between them is
// enforced, and each status/date pair starts empty. Stage dates are kept as
// ISO-8601 strings end to end because they are nullable and are parsed
// defensively by the dashboard aggregation.
type Order struct {
	ID                    string    `json:"id"`
	OrderNumber           string    `json:"order_number"`
	GoogleSheetLink       string    `json:"google_sheet_link"`
	FinalMeasurementsLink string    `json:"final_measurements_link,omitempty"`
	CreatedBy             string    `json:"created_by"`
	CreatedAt             time.Time `json:"created_at"`

	InitialPatternDate   string      `json:"initial_pattern_date,omitempty"`
	InitialPatternStatus StageStatus `json:"initial_pattern_status,omitempty"`
	// InitialPatternsDone is flipped by a pattern maker to mark the initial
	// set complete. It is carried metadata, not gating state.
	InitialPatternsDone bool `json:"initial_patterns_done"`

	SecondPatternStatus StageStatus `json:"second_pattern_status,omitempty"`
	SecondPatternDate   string      `json:"second_pattern_date,omitempty"`

	ApprovedPatternStatus StageStatus `json:"approved_pattern_status,omitempty"`
	ApprovedPatternDate   string      `json:"approved_pattern_date,omitempty"`
}

// StageDate returns the decision date recorded for the given stage.
func (o *Order) StageDate(s Stage) string {
	switch s {
	case StageInitial:
		return o.InitialPatternDate
	case StageSecond:
		return o.SecondPatternDate
	case StageApproved:
		return o.ApprovedPatternDate
	}
	return ""
}
