package comps

import "math"

// ComputeMultiples derives EV and the trading multiples for every row of the
// set, target included (flagged, so downstream statistics can drop it).
// EV = market cap + net debt. A multiple whose denominator is not strictly
// positive is undefined and set to NaN.
func ComputeMultiples(ps *PeerSet) *MultipleSet {
	rows := make([]MultipleRow, 0, len(ps.Peers))
	for _, p := range ps.Peers {
		ev := p.MarketCap + p.NetDebt
		rows = append(rows, MultipleRow{
			Company:   p.Company,
			Ticker:    p.Ticker,
			IsTarget:  p.Ticker == ps.TargetTicker,
			EV:        ev,
			EVRevenue: safeDiv(ev, p.RevenueLTM),
			EVEBITDA:  safeDiv(ev, p.EBITDALTM),
			PE:        safeDiv(p.MarketCap, p.NetIncomeLTM),
		})
	}
	return &MultipleSet{Rows: rows, TargetTicker: ps.TargetTicker}
}

// safeDiv returns numer/denom when denom > 0, NaN otherwise.
func safeDiv(numer, denom float64) float64 {
	if denom <= 0 {
		return math.NaN()
	}
	return numer / denom
}
