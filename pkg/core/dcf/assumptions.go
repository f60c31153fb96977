// Package dcf implements the discounted-cash-flow engine: FCF projection,
// CAPM/WACC, Gordon Growth terminal value, the equity bridge and the
// (WACC, g) sensitivity grid. Monetary values are millions, rates decimals.
package dcf

import (
	"fmt"

	"valuation_engine/pkg/core/errs"
)

// weightTolerance is how far equity + debt weights may drift from 1.
const weightTolerance = 1e-6

// Assumptions is the immutable input bundle for one DCF run. Construct it,
// validate it once, then pass it by value into the pure stages; nothing
// mutates it afterwards.
type Assumptions struct {
	Horizon        int     // explicit forecast periods
	InitialRevenue float64 // revenue at t=0, millions

	// Growth and margin either as a single rate or an explicit per-period
	// path (len == Horizon); the path wins when set. Fade is a path.
	RevenueGrowth     float64
	RevenueGrowthPath []float64
	EBITMargin        float64
	EBITMarginPath    []float64

	TaxRate float64

	// Each a percentage of the period's own revenue. ΔNWC uses the same
	// base: DeltaNWC_t = NWCPctRevenue * revenue_t.
	DAPctRevenue    float64
	CapexPctRevenue float64
	NWCPctRevenue   float64

	// Capital structure and CAPM inputs.
	WeightEquity      float64
	WeightDebt        float64
	CostOfDebt        float64
	RiskFreeRate      float64
	Beta              float64
	EquityRiskPremium float64

	TerminalGrowth float64
	NetDebt        float64

	// ManualWACC bypasses the CAPM computation entirely when set. It is
	// still checked against TerminalGrowth.
	ManualWACC *float64
}

// Fade builds a per-period path that moves linearly from start to end over
// n periods, ending exactly at end. Useful for growth fading toward the
// terminal rate.
func Fade(start, end float64, n int) []float64 {
	path := make([]float64, n)
	if n == 1 {
		path[0] = end
		return path
	}
	step := (end - start) / float64(n-1)
	for i := range path {
		path[i] = start + step*float64(i)
	}
	return path
}

// growthPath expands the growth assumption to one value per period.
func (a Assumptions) growthPath() []float64 {
	return expandPath(a.RevenueGrowthPath, a.RevenueGrowth, a.Horizon)
}

// marginPath expands the EBIT margin assumption to one value per period.
func (a Assumptions) marginPath() []float64 {
	return expandPath(a.EBITMarginPath, a.EBITMargin, a.Horizon)
}

func expandPath(path []float64, scalar float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if len(path) > 0 {
			out[i] = path[i]
		} else {
			out[i] = scalar
		}
	}
	return out
}

// Validate checks the full bundle for a standard model run: a 5-10 period
// horizon, positive starting revenue, consistent path lengths and capital
// weights summing to 1. Path-length and weight violations are configuration
// errors; the WACC > g guard stays with the terminal value stage.
func (a Assumptions) Validate() error {
	if a.Horizon < 5 || a.Horizon > 10 {
		return &errs.ConfigurationError{Field: "horizon", Reason: fmt.Sprintf("must be 5..10 periods, got %d", a.Horizon)}
	}
	if a.InitialRevenue <= 0 {
		return &errs.ConfigurationError{Field: "initial_revenue", Reason: "must be positive"}
	}
	if err := a.checkPaths(); err != nil {
		return err
	}
	if err := a.checkWeights(); err != nil {
		return err
	}
	if a.TaxRate < 0 || a.TaxRate >= 1 {
		return &errs.ConfigurationError{Field: "tax_rate", Reason: "must be in [0, 1)"}
	}
	return nil
}

func (a Assumptions) checkPaths() error {
	if len(a.RevenueGrowthPath) > 0 && len(a.RevenueGrowthPath) != a.Horizon {
		return &errs.ConfigurationError{
			Field:  "revenue_growth_path",
			Reason: fmt.Sprintf("length %d does not match horizon %d", len(a.RevenueGrowthPath), a.Horizon),
		}
	}
	if len(a.EBITMarginPath) > 0 && len(a.EBITMarginPath) != a.Horizon {
		return &errs.ConfigurationError{
			Field:  "ebit_margin_path",
			Reason: fmt.Sprintf("length %d does not match horizon %d", len(a.EBITMarginPath), a.Horizon),
		}
	}
	return nil
}

func (a Assumptions) checkWeights() error {
	sum := a.WeightEquity + a.WeightDebt
	if sum < 1-weightTolerance || sum > 1+weightTolerance {
		return &errs.ConfigurationError{
			Field:  "capital weights",
			Reason: fmt.Sprintf("equity %.4f + debt %.4f must sum to 1", a.WeightEquity, a.WeightDebt),
		}
	}
	return nil
}
