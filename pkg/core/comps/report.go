package comps

import (
	"fmt"
	"strings"
)

// fmtMult renders one multiple, "n/a" when undefined.
func fmtMult(v float64) string {
	if !Defined(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func fmtMoney(v float64) string {
	if !Defined(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", v)
}

func fmtPct(v float64) string {
	if !Defined(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

// Delimited renders the multiples table as comma-delimited text, one row per
// peer with the target flagged, suitable for spreadsheet import.
func (ms *MultipleSet) Delimited() string {
	var b strings.Builder
	b.WriteString("company,ticker,is_target,ev_m,ev_revenue,ev_ebitda,pe\n")
	for _, r := range ms.Rows {
		fmt.Fprintf(&b, "%s,%s,%t,%.2f,%s,%s,%s\n",
			r.Company, r.Ticker, r.IsTarget, r.EV,
			fmtMult(r.EVRevenue), fmtMult(r.EVEBITDA), fmtMult(r.PE))
	}
	return b.String()
}

// RenderSummary writes the plain-text comps report: peer-set overview,
// multiple statistics, median implied valuation and the quartile range.
func RenderSummary(sum *StatSummary, implied []*ImpliedValuation, rng *ValuationRange) string {
	var b strings.Builder

	b.WriteString("COMPARABLE COMPANIES ANALYSIS - SUMMARY\n")
	b.WriteString(strings.Repeat("=", 45) + "\n\n")

	b.WriteString("1. Trading Multiples (Peers)\n")
	for _, kind := range Kinds {
		s := sum.ForKind(kind)
		fmt.Fprintf(&b, "%-13s (n=%d): median %sx | mean %sx | P25 %sx | P75 %sx\n",
			kind, s.N, fmtMult(s.Median), fmtMult(s.Mean), fmtMult(s.P25), fmtMult(s.P75))
	}

	b.WriteString("\n2. Implied Valuation - Peer Median\n")
	for _, iv := range implied {
		if !iv.IsDefined() {
			fmt.Fprintf(&b, "%-13s: undefined (peer statistic or target driver unavailable)\n", iv.Kind)
			continue
		}
		fmt.Fprintf(&b, "%-13s: multiple %sx | implied equity %s m | upside %s\n",
			iv.Kind, fmtMult(iv.PeerStatistic), fmtMoney(iv.ImpliedEquity), fmtPct(iv.Upside))
	}

	if rng != nil {
		fmt.Fprintf(&b, "\n3. Valuation Range - %s (P25 / P50 / P75)\n", rng.Kind)
		fmt.Fprintf(&b, "Multiple : %sx / %sx / %sx\n",
			fmtMult(rng.Multiples[0]), fmtMult(rng.Multiples[1]), fmtMult(rng.Multiples[2]))
		fmt.Fprintf(&b, "Equity m : %s / %s / %s\n",
			fmtMoney(rng.ImpliedEquity[0]), fmtMoney(rng.ImpliedEquity[1]), fmtMoney(rng.ImpliedEquity[2]))
		fmt.Fprintf(&b, "Upside   : %s / %s / %s\n",
			fmtPct(rng.Upside[0]), fmtPct(rng.Upside[1]), fmtPct(rng.Upside[2]))
	}

	return b.String()
}
