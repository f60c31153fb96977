package dcf

import (
	"fmt"

	"valuation_engine/pkg/core/errs"
)

// PeriodCashFlow is one period of the free-cash-flow build-up.
type PeriodCashFlow struct {
	Period   int
	Revenue  float64
	EBIT     float64
	NOPAT    float64
	DA       float64
	Capex    float64
	DeltaNWC float64
	FCF      float64
}

// FCFSchedule is the explicit forecast, strictly ordered by period and
// immutable once computed; it is entirely determined by the Assumptions.
type FCFSchedule struct {
	Periods []PeriodCashFlow
}

// Horizon returns the number of explicit forecast periods.
func (s *FCFSchedule) Horizon() int {
	return len(s.Periods)
}

// FinalFCF returns the last explicit free cash flow, the base of the
// terminal value.
func (s *FCFSchedule) FinalFCF() float64 {
	return s.Periods[len(s.Periods)-1].FCF
}

// ProjectFCF builds the schedule for t = 1..horizon:
//
//	revenue_t = revenue_{t-1} * (1 + growth_t)
//	EBIT_t    = revenue_t * margin_t
//	NOPAT_t   = EBIT_t * (1 - tax)
//	FCF_t     = NOPAT_t + D&A_t - CAPEX_t - ΔNWC_t
//
// with D&A, CAPEX and ΔNWC each a fixed percentage of revenue_t.
// Any horizon >= 1 projects; full model-run bounds live in Validate.
func ProjectFCF(a Assumptions) (*FCFSchedule, error) {
	if a.Horizon < 1 {
		return nil, &errs.ConfigurationError{Field: "horizon", Reason: fmt.Sprintf("must be at least 1, got %d", a.Horizon)}
	}
	if a.InitialRevenue <= 0 {
		return nil, &errs.ConfigurationError{Field: "initial_revenue", Reason: "must be positive"}
	}
	if err := a.checkPaths(); err != nil {
		return nil, err
	}

	growth := a.growthPath()
	margin := a.marginPath()

	periods := make([]PeriodCashFlow, a.Horizon)
	revenue := a.InitialRevenue
	for t := 0; t < a.Horizon; t++ {
		revenue *= 1 + growth[t]

		ebit := revenue * margin[t]
		nopat := ebit * (1 - a.TaxRate)
		da := revenue * a.DAPctRevenue
		capex := revenue * a.CapexPctRevenue
		deltaNWC := revenue * a.NWCPctRevenue

		periods[t] = PeriodCashFlow{
			Period:   t + 1,
			Revenue:  revenue,
			EBIT:     ebit,
			NOPAT:    nopat,
			DA:       da,
			Capex:    capex,
			DeltaNWC: deltaNWC,
			FCF:      nopat + da - capex - deltaNWC,
		}
	}
	return &FCFSchedule{Periods: periods}, nil
}
