package dcf

import (
	"fmt"
	"strings"
)

// Delimited renders the FCF schedule as comma-delimited text for
// spreadsheet import, one row per period.
func (s *FCFSchedule) Delimited() string {
	var b strings.Builder
	b.WriteString("period,revenue,ebit,nopat,da,capex,delta_nwc,fcf\n")
	for _, p := range s.Periods {
		fmt.Fprintf(&b, "%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f\n",
			p.Period, p.Revenue, p.EBIT, p.NOPAT, p.DA, p.Capex, p.DeltaNWC, p.FCF)
	}
	return b.String()
}

// Delimited renders the sensitivity grid with WACC rows and growth columns.
// Invalid cells render as "n/a".
func (g *SensitivityGrid) Delimited() string {
	var b strings.Builder
	b.WriteString("wacc\\g")
	for _, growth := range g.Growths {
		fmt.Fprintf(&b, ",%.2f%%", growth*100)
	}
	b.WriteString("\n")
	for i, wacc := range g.WACCs {
		fmt.Fprintf(&b, "%.2f%%", wacc*100)
		for j := range g.Growths {
			cell := g.Cells[i][j]
			if cell.Valid {
				fmt.Fprintf(&b, ",%.0f", cell.EquityValue)
			} else {
				b.WriteString(",n/a")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderReport writes the plain-text DCF summary: the valuation bridge and
// the key rate assumptions behind it.
func RenderReport(res *ValuationResult, wacc *WACCBreakdown) string {
	var b strings.Builder

	b.WriteString("DISCOUNTED CASH FLOW - SUMMARY\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	b.WriteString("1. Valuation Bridge\n")
	fmt.Fprintf(&b, "PV of explicit FCFs  : %.0f m\n", res.PVExplicit)
	fmt.Fprintf(&b, "PV of terminal value : %.0f m\n", res.PVTerminal)
	fmt.Fprintf(&b, "Enterprise Value     : %.0f m\n", res.EnterpriseValue)
	fmt.Fprintf(&b, "Net Debt             : %.0f m\n", res.NetDebt)
	fmt.Fprintf(&b, "Equity Value         : %.0f m\n", res.EquityValue)

	b.WriteString("\n2. Discount Rate\n")
	if wacc.Manual {
		fmt.Fprintf(&b, "WACC (manual)   : %.2f%%\n", wacc.WACC*100)
	} else {
		fmt.Fprintf(&b, "Cost of equity  : %.2f%%\n", wacc.CostOfEquity*100)
		fmt.Fprintf(&b, "Cost of debt    : %.2f%% (after tax)\n", wacc.AfterTaxCostOfDebt*100)
		fmt.Fprintf(&b, "Weights (E/D)   : %.0f%% / %.0f%%\n", wacc.WeightEquity*100, wacc.WeightDebt*100)
		fmt.Fprintf(&b, "WACC            : %.2f%%\n", wacc.WACC*100)
	}
	fmt.Fprintf(&b, "Terminal growth : %.2f%%\n", res.TerminalGrowth*100)

	return b.String()
}
