package dcf

import (
	"math"

	"valuation_engine/pkg/core/errs"
)

// ValuationResult is the discounted valuation and its bridge to equity.
type ValuationResult struct {
	WACC            float64
	TerminalGrowth  float64
	PVExplicit      float64
	TerminalValue   float64
	PVTerminal      float64
	EnterpriseValue float64
	NetDebt         float64
	EquityValue     float64
}

// checkTerminalSpread guards the Gordon Growth denominator.
func checkTerminalSpread(wacc, g float64) error {
	if wacc <= g {
		return &errs.TerminalValueError{WACC: wacc, Growth: g}
	}
	return nil
}

// TerminalValue capitalizes the final explicit FCF into a Gordon Growth
// perpetuity: TV = FCF_H * (1 + g) / (WACC - g). Fails rather than produce
// an infinite or negative perpetuity when WACC <= g.
func TerminalValue(finalFCF, wacc, g float64) (float64, error) {
	if err := checkTerminalSpread(wacc, g); err != nil {
		return 0, err
	}
	return finalFCF * (1 + g) / (wacc - g), nil
}

// discountFactor is the end-of-period factor 1 / (1 + rate)^t.
func discountFactor(rate float64, t int) float64 {
	return 1 / math.Pow(1+rate, float64(t))
}

// Valuate discounts the explicit schedule and the terminal value at the
// given WACC and bridges enterprise value to equity. End-of-period
// convention throughout: FCF_t is discounted by (1 + WACC)^t, the terminal
// value by (1 + WACC)^horizon.
func Valuate(sched *FCFSchedule, wacc, terminalGrowth, netDebt float64) (*ValuationResult, error) {
	tv, err := TerminalValue(sched.FinalFCF(), wacc, terminalGrowth)
	if err != nil {
		return nil, err
	}

	pvExplicit := 0.0
	for _, p := range sched.Periods {
		pvExplicit += p.FCF * discountFactor(wacc, p.Period)
	}
	pvTerminal := tv * discountFactor(wacc, sched.Horizon())

	ev := pvExplicit + pvTerminal
	return &ValuationResult{
		WACC:            wacc,
		TerminalGrowth:  terminalGrowth,
		PVExplicit:      pvExplicit,
		TerminalValue:   tv,
		PVTerminal:      pvTerminal,
		EnterpriseValue: ev,
		NetDebt:         netDebt,
		EquityValue:     ev - netDebt,
	}, nil
}

// Run executes the full pipeline for one assumption bundle: projection,
// WACC, terminal value and bridge.
func Run(a Assumptions) (*FCFSchedule, *WACCBreakdown, *ValuationResult, error) {
	sched, err := ProjectFCF(a)
	if err != nil {
		return nil, nil, nil, err
	}
	wacc, err := ComputeWACC(a)
	if err != nil {
		return nil, nil, nil, err
	}
	result, err := Valuate(sched, wacc.WACC, a.TerminalGrowth, a.NetDebt)
	if err != nil {
		return nil, nil, nil, err
	}
	return sched, wacc, result, nil
}
