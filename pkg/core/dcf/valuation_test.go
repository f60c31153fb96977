package dcf

import (
	"errors"
	"testing"

	"valuation_engine/pkg/core/errs"
)

func TestTerminalValueGordonGrowth(t *testing.T) {
	// TV = 130 * 1.02 / (0.10 - 0.02) = 132.6 / 0.08 = 1657.5
	tv, err := TerminalValue(130, 0.10, 0.02)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(tv, 1657.5, 1e-9) {
		t.Errorf("terminal value expected 1657.5, got %f", tv)
	}
}

func TestTerminalValueGuard(t *testing.T) {
	pairs := [][2]float64{
		{0.02, 0.02}, // equal
		{0.01, 0.02}, // below
		{-0.01, 0.00},
	}
	for _, pair := range pairs {
		_, err := TerminalValue(100, pair[0], pair[1])
		var tvErr *errs.TerminalValueError
		if !errors.As(err, &tvErr) {
			t.Errorf("WACC %f, g %f: expected TerminalValueError, got %v", pair[0], pair[1], err)
		}
	}
}

func TestValuateSinglePeriodBridge(t *testing.T) {
	sched := &FCFSchedule{Periods: []PeriodCashFlow{{Period: 1, FCF: 130}}}

	res, err := Valuate(sched, 0.10, 0.02, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// PV(FCF_1) = 130/1.10 = 118.1818...
	// TV = 1657.5; PV(TV) = 1657.5/1.10 = 1506.8181...
	// EV = 118.1818 + 1506.8181 = 1625.0
	if !almostEqual(res.PVExplicit, 130.0/1.10, 1e-9) {
		t.Errorf("PV explicit expected %f, got %f", 130.0/1.10, res.PVExplicit)
	}
	if !almostEqual(res.PVTerminal, 1657.5/1.10, 1e-9) {
		t.Errorf("PV terminal expected %f, got %f", 1657.5/1.10, res.PVTerminal)
	}
	if !almostEqual(res.EnterpriseValue, 1625.0, 1e-6) {
		t.Errorf("enterprise value expected 1625, got %f", res.EnterpriseValue)
	}
	if !almostEqual(res.EquityValue, 1025.0, 1e-6) {
		t.Errorf("equity value expected 1025, got %f", res.EquityValue)
	}
}

func TestValuateEndOfPeriodConvention(t *testing.T) {
	sched := &FCFSchedule{Periods: []PeriodCashFlow{
		{Period: 1, FCF: 100},
		{Period: 2, FCF: 100},
	}}

	res, err := Valuate(sched, 0.10, 0.00, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// PV explicit = 100/1.1 + 100/1.21 = 90.9090 + 82.6446 = 173.5537
	wantExplicit := 100/1.1 + 100/1.21
	if !almostEqual(res.PVExplicit, wantExplicit, 1e-9) {
		t.Errorf("PV explicit expected %f, got %f", wantExplicit, res.PVExplicit)
	}
	// TV = 100/0.10 = 1000, discounted two periods: 1000/1.21.
	if !almostEqual(res.PVTerminal, 1000/1.21, 1e-9) {
		t.Errorf("PV terminal expected %f, got %f", 1000/1.21, res.PVTerminal)
	}
}

func TestRunFullPipeline(t *testing.T) {
	a := Assumptions{
		Horizon:           5,
		InitialRevenue:    5000,
		RevenueGrowth:     0.04,
		EBITMargin:        0.20,
		TaxRate:           0.28,
		DAPctRevenue:      0.03,
		CapexPctRevenue:   0.04,
		NWCPctRevenue:     0.10,
		WeightEquity:      0.70,
		WeightDebt:        0.30,
		CostOfDebt:        0.04,
		RiskFreeRate:      0.025,
		Beta:              1.10,
		EquityRiskPremium: 0.055,
		TerminalGrowth:    0.025,
		NetDebt:           600,
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("assumptions should validate: %v", err)
	}

	sched, wacc, res, err := Run(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sched.Horizon() != 5 {
		t.Errorf("expected 5 periods, got %d", sched.Horizon())
	}
	if !almostEqual(wacc.WACC, 0.06849, 1e-9) {
		t.Errorf("WACC expected 0.06849, got %f", wacc.WACC)
	}
	if !almostEqual(res.EnterpriseValue, res.PVExplicit+res.PVTerminal, 1e-9) {
		t.Errorf("EV must equal the sum of the PVs")
	}
	if !almostEqual(res.EquityValue, res.EnterpriseValue-600, 1e-9) {
		t.Errorf("equity bridge must subtract net debt")
	}
	// Cross-check one leg: the result must match a direct Valuate call on
	// the same schedule and rate.
	direct, err := Valuate(sched, wacc.WACC, a.TerminalGrowth, a.NetDebt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(direct.EquityValue, res.EquityValue, 1e-9) {
		t.Errorf("pipeline and direct valuation disagree: %f vs %f", res.EquityValue, direct.EquityValue)
	}
}

func TestRunFailsWhenTerminalSpreadInverted(t *testing.T) {
	a := Assumptions{
		Horizon:        5,
		InitialRevenue: 1000,
		EBITMargin:     0.2,
		WeightEquity:   1,
		WeightDebt:     0,
		RiskFreeRate:   0.01,
		Beta:           0,
		// Cost of equity 1% and g 2%: WACC <= g, terminal value undefined.
		TerminalGrowth: 0.02,
	}

	_, _, _, err := Run(a)
	var tvErr *errs.TerminalValueError
	if !errors.As(err, &tvErr) {
		t.Fatalf("expected TerminalValueError, got %v", err)
	}
}
