package comps

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestComputeMultiplesExact(t *testing.T) {
	ps := &PeerSet{
		Peers: []PeerRecord{
			{Company: "Alpha", Ticker: "ALP", MarketCap: 100, NetDebt: 20, RevenueLTM: 100, EBITDALTM: 30, NetIncomeLTM: 12},
		},
	}

	ms := ComputeMultiples(ps)
	r := ms.Rows[0]

	// EV = 100 + 20 = 120
	if r.EV != 120 {
		t.Errorf("EV expected 120, got %f", r.EV)
	}
	// EV/Revenue = 120/100 = 1.2, EV/EBITDA = 120/30 = 4, P/E = 100/12
	if r.EVRevenue != (100.0+20.0)/100.0 {
		t.Errorf("EV/Revenue expected 1.2, got %f", r.EVRevenue)
	}
	if r.EVEBITDA != 4 {
		t.Errorf("EV/EBITDA expected 4, got %f", r.EVEBITDA)
	}
	if !almostEqual(r.PE, 100.0/12.0, 1e-12) {
		t.Errorf("P/E expected %f, got %f", 100.0/12.0, r.PE)
	}
}

func TestUndefinedMultiplesAreNaN(t *testing.T) {
	ps := &PeerSet{
		Peers: []PeerRecord{
			// Loss-making peer: P/E undefined, EV multiples fine.
			{Ticker: "LOSS", MarketCap: 80, NetDebt: 10, RevenueLTM: 50, EBITDALTM: 5, NetIncomeLTM: -3},
			// Zero EBITDA: EV/EBITDA undefined.
			{Ticker: "ZERO", MarketCap: 40, NetDebt: 0, RevenueLTM: 20, EBITDALTM: 0, NetIncomeLTM: 2},
		},
	}

	ms := ComputeMultiples(ps)

	if Defined(ms.Rows[0].PE) {
		t.Errorf("P/E should be undefined for net income -3, got %f", ms.Rows[0].PE)
	}
	if !Defined(ms.Rows[0].EVEBITDA) {
		t.Errorf("EV/EBITDA should stay defined for the loss-making peer")
	}
	if Defined(ms.Rows[1].EVEBITDA) {
		t.Errorf("EV/EBITDA should be undefined for zero EBITDA, got %f", ms.Rows[1].EVEBITDA)
	}
	if ms.Rows[1].PE <= 0 || !Defined(ms.Rows[1].PE) {
		t.Errorf("P/E should be defined for positive net income")
	}
}

func TestTargetFlaggedAndExcludedFromColumns(t *testing.T) {
	ps := &PeerSet{
		Peers: []PeerRecord{
			{Ticker: "A", MarketCap: 100, NetDebt: 0, RevenueLTM: 100, EBITDALTM: 10, NetIncomeLTM: 5},
			{Ticker: "TGT", MarketCap: 90, NetDebt: 5, RevenueLTM: 90, EBITDALTM: 9, NetIncomeLTM: 4},
			{Ticker: "B", MarketCap: 200, NetDebt: 0, RevenueLTM: 100, EBITDALTM: 20, NetIncomeLTM: 10},
		},
		TargetTicker: "TGT",
	}

	ms := ComputeMultiples(ps)

	if !ms.Rows[1].IsTarget {
		t.Fatalf("row 1 should carry the target flag")
	}
	col := ms.PeerColumn(EVRevenue)
	if len(col) != 2 {
		t.Fatalf("peer column should exclude the target, got %d entries", len(col))
	}
	if col[0] != 1.0 || col[1] != 2.0 {
		t.Errorf("peer column order not preserved: %v", col)
	}
}
