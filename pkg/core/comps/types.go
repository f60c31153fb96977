// Package comps implements the comparable-companies engine: peer loading,
// trading multiples, winsorized peer statistics and implied valuations.
// All monetary inputs share one currency and one scale (millions).
package comps

import "math"

// PeerRecord is one validated row of the peer table.
type PeerRecord struct {
	Company      string
	Ticker       string
	Currency     string
	MarketCap    float64
	NetDebt      float64
	RevenueLTM   float64
	EBITDALTM    float64
	NetIncomeLTM float64
}

// PeerSet is an ordered peer table with a designated target.
// The target, when present, is excluded from every peer-group statistic.
type PeerSet struct {
	Peers        []PeerRecord
	TargetTicker string
}

// Target returns the designated target row, if present in the set.
func (ps *PeerSet) Target() (PeerRecord, bool) {
	for _, p := range ps.Peers {
		if p.Ticker == ps.TargetTicker {
			return p, true
		}
	}
	return PeerRecord{}, false
}

// PeerGroup returns the peers with the target removed, order preserved.
func (ps *PeerSet) PeerGroup() []PeerRecord {
	group := make([]PeerRecord, 0, len(ps.Peers))
	for _, p := range ps.Peers {
		if p.Ticker == ps.TargetTicker {
			continue
		}
		group = append(group, p)
	}
	return group
}

// MultipleKind names one trading multiple.
type MultipleKind string

const (
	EVRevenue MultipleKind = "EV / Revenue"
	EVEBITDA  MultipleKind = "EV / EBITDA"
	PE        MultipleKind = "P / E"
)

// Kinds lists the multiples in presentation order.
var Kinds = []MultipleKind{EVRevenue, EVEBITDA, PE}

// MultipleRow holds the derived values for one peer. Multiples with a
// non-positive denominator are undefined and carried as NaN, never zero.
type MultipleRow struct {
	Company   string
	Ticker    string
	IsTarget  bool
	EV        float64
	EVRevenue float64
	EVEBITDA  float64
	PE        float64
}

// Value returns the row's value for the given multiple.
func (r MultipleRow) Value(kind MultipleKind) float64 {
	switch kind {
	case EVRevenue:
		return r.EVRevenue
	case EVEBITDA:
		return r.EVEBITDA
	default:
		return r.PE
	}
}

// MultipleSet holds one MultipleRow per peer, computed once and immutable.
type MultipleSet struct {
	Rows         []MultipleRow
	TargetTicker string
}

// PeerColumn extracts one multiple across the peer group (target excluded),
// undefined entries included as NaN so winsorization sees the full series.
func (ms *MultipleSet) PeerColumn(kind MultipleKind) []float64 {
	col := make([]float64, 0, len(ms.Rows))
	for _, r := range ms.Rows {
		if r.IsTarget {
			continue
		}
		col = append(col, r.Value(kind))
	}
	return col
}

// Stats summarizes one multiple over the peer group. N counts the defined
// values; with N == 0 every statistic is NaN.
type Stats struct {
	N      int
	Mean   float64
	Median float64
	P25    float64
	P75    float64
}

// StatSummary holds the per-multiple peer statistics.
type StatSummary struct {
	EVRevenue Stats
	EVEBITDA  Stats
	PE        Stats
}

// ForKind returns the statistics block for the given multiple.
func (s *StatSummary) ForKind(kind MultipleKind) Stats {
	switch kind {
	case EVRevenue:
		return s.EVRevenue
	case EVEBITDA:
		return s.EVEBITDA
	default:
		return s.PE
	}
}

// Defined reports whether v carries a value. Undefined metrics are NaN.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}
