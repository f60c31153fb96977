package comps

import (
	"math"

	"valuation_engine/pkg/core/errs"
)

// ImpliedValuation is the target valuation implied by one peer multiple
// statistic. EV-based multiples imply an enterprise value first and bridge
// to equity by subtracting the target's net debt; P/E implies equity
// directly. All fields are NaN when the peer statistic is undefined.
type ImpliedValuation struct {
	Kind             MultipleKind
	PeerStatistic    float64
	DriverValue      float64
	ImpliedEV        float64 // NaN for P/E: no EV step
	ImpliedEquity    float64
	CurrentMarketCap float64
	Upside           float64 // (implied equity / market cap) - 1
}

// IsDefined reports whether the valuation produced a usable equity value.
func (iv *ImpliedValuation) IsDefined() bool {
	return Defined(iv.ImpliedEquity)
}

// ValuationRange is the low/mid/high implied valuation built from the
// P25/P50/P75 peer statistics of one multiple.
type ValuationRange struct {
	Kind             MultipleKind
	Multiples        [3]float64 // P25, P50, P75
	ImpliedEV        [3]float64
	ImpliedEquity    [3]float64
	Upside           [3]float64
	CurrentMarketCap float64
}

// driver returns the target's own financial driver for the multiple.
func driver(target PeerRecord, kind MultipleKind) float64 {
	switch kind {
	case EVRevenue:
		return target.RevenueLTM
	case EVEBITDA:
		return target.EBITDALTM
	default:
		return target.NetIncomeLTM
	}
}

// applyMultiple converts one peer statistic into implied EV and equity for
// the target. P/E skips the EV step per convention.
func applyMultiple(target PeerRecord, kind MultipleKind, stat float64) (impliedEV, impliedEquity float64) {
	base := driver(target, kind)
	if !Defined(stat) || base <= 0 {
		return math.NaN(), math.NaN()
	}
	if kind == PE {
		return math.NaN(), stat * base
	}
	ev := stat * base
	return ev, ev - target.NetDebt
}

func upside(impliedEquity, marketCap float64) float64 {
	if !Defined(impliedEquity) || marketCap <= 0 {
		return math.NaN()
	}
	return impliedEquity/marketCap - 1
}

// DeriveImplied values the target off one peer statistic (typically the
// median from Summarize). An undefined statistic or a non-positive target
// driver yields an undefined (all-NaN) valuation, never a zero.
func DeriveImplied(target PeerRecord, kind MultipleKind, stat float64) *ImpliedValuation {
	ev, eq := applyMultiple(target, kind, stat)
	return &ImpliedValuation{
		Kind:             kind,
		PeerStatistic:    stat,
		DriverValue:      driver(target, kind),
		ImpliedEV:        ev,
		ImpliedEquity:    eq,
		CurrentMarketCap: target.MarketCap,
		Upside:           upside(eq, target.MarketCap),
	}
}

// DeriveMedianImplied values the target at the peer median of each multiple.
func DeriveMedianImplied(sum *StatSummary, target PeerRecord) []*ImpliedValuation {
	out := make([]*ImpliedValuation, 0, len(Kinds))
	for _, kind := range Kinds {
		out = append(out, DeriveImplied(target, kind, sum.ForKind(kind).Median))
	}
	return out
}

// DeriveRange builds the P25/P50/P75 implied range for one multiple. The
// target driver must be strictly positive for EV-based multiples; for P/E a
// non-positive net income simply leaves the range undefined.
func DeriveRange(sum *StatSummary, target PeerRecord, kind MultipleKind) (*ValuationRange, error) {
	if kind != PE && driver(target, kind) <= 0 {
		return nil, &errs.ValidationError{
			Field:  string(kind),
			Reason: "target driver must be positive to apply an EV multiple",
		}
	}
	stats := sum.ForKind(kind)
	quartiles := [3]float64{stats.P25, stats.Median, stats.P75}

	vr := &ValuationRange{
		Kind:             kind,
		Multiples:        quartiles,
		CurrentMarketCap: target.MarketCap,
	}
	for i, q := range quartiles {
		ev, eq := applyMultiple(target, kind, q)
		vr.ImpliedEV[i] = ev
		vr.ImpliedEquity[i] = eq
		vr.Upside[i] = upside(eq, target.MarketCap)
	}
	return vr, nil
}
