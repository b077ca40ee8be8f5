package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

// MetricsCache abstracts the read-through cache for dashboard aggregates.
type MetricsCache interface {
	Get(ctx context.Context, days int) (*ports.DashboardMetrics, error)
	Set(ctx context.Context, days int, m *ports.DashboardMetrics) error
}

// DashboardService derives summary statistics from order snapshots. It never
// mutates state.
type DashboardService struct {
	orders   ports.OrderRepository
	patterns ports.PatternRepository
	cache    MetricsCache
	log      zerolog.Logger
}

func NewDashboardService(
	orders ports.OrderRepository,
	patterns ports.PatternRepository,
	cache MetricsCache,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{orders: orders, patterns: patterns, cache: cache, log: log}
}

// Metrics aggregates orders created within the last `days` days. Cache
// failures are non-fatal: the aggregation is recomputed and the response is
// served either way.
func (s *DashboardService) Metrics(ctx context.Context, days int) (*ports.DashboardMetrics, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, days)
		if err != nil {
			s.log.Warn().Err(err).Msg("metrics cache read failed, recomputing")
		} else if cached != nil {
			return cached, nil
		}
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	orders, err := s.orders.ListCreatedSince(ctx, start)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]string, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}
	patternCount, err := s.patterns.CountByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	approved := 0
	for _, o := range orders {
		if o.ApprovedPatternStatus == domain.StageStatusApproved {
			approved++
		}
	}

	m := &ports.DashboardMetrics{
		TotalOrders:           len(orders),
		TotalPatterns:         int(patternCount),
		ApprovedPatterns:      approved,
		AvgPatternMakingHours: round2(avgPatternMakingHours(orders)),
		AvgApprovalHours:      round2(avgApprovalHours(orders)),
		DateRange: ports.DateRange{
			Start: domain.FormatTime(start),
			End:   domain.FormatTime(end),
			Days:  days,
		},
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, days, m); err != nil {
			s.log.Warn().Err(err).Msg("metrics cache write failed")
		}
	}
	return m, nil
}

// avgPatternMakingHours averages the hours between order creation and the
// first initial-stage date, over orders where that date exists and parses.
func avgPatternMakingHours(orders []*domain.Order) float64 {
	var sum float64
	var n int
	for _, o := range orders {
		if o.InitialPatternDate == "" || o.CreatedAt.IsZero() {
			continue
		}
		first, err := parseStageDate(o.InitialPatternDate)
		if err != nil {
			continue
		}
		sum += first.Sub(o.CreatedAt).Hours()
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// avgApprovalHours averages the hours between the initial date and the later
// checker decision (second takes priority over approved), over orders that
// have an initial decision recorded.
func avgApprovalHours(orders []*domain.Order) float64 {
	var sum float64
	var n int
	for _, o := range orders {
		if o.InitialPatternDate == "" || o.InitialPatternStatus == "" {
			continue
		}
		decided := o.SecondPatternDate
		if decided == "" {
			decided = o.ApprovedPatternDate
		}
		if decided == "" {
			continue
		}
		first, err := parseStageDate(o.InitialPatternDate)
		if err != nil {
			continue
		}
		approval, err := parseStageDate(decided)
		if err != nil {
			continue
		}
		sum += approval.Sub(first).Hours()
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func parseStageDate(s string) (time.Time, error) {
	return domain.ParseTime(s)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
