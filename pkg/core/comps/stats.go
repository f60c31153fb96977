package comps

import (
	"math"
	"sort"

	"valuation_engine/pkg/core/errs"
)

// SummaryOptions controls the outlier treatment applied before statistics.
// Percentiles are on the 0..100 scale.
type SummaryOptions struct {
	Winsorize bool
	LowerPct  float64
	UpperPct  float64
}

// DefaultSummaryOptions winsorizes at the 5th and 95th percentiles.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{Winsorize: true, LowerPct: 5, UpperPct: 95}
}

// percentile computes the p-th percentile (0..100) of the defined values in
// series, using linear interpolation between order statistics:
// rank = p/100 * (n-1), result = sorted[lo] + frac*(sorted[lo+1]-sorted[lo]).
// Returns NaN when no value is defined.
func percentile(series []float64, p float64) float64 {
	vals := defined(series)
	if len(vals) == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)
	if len(vals) == 1 {
		return vals[0]
	}
	rank := p / 100 * float64(len(vals)-1)
	lo := int(math.Floor(rank))
	if lo >= len(vals)-1 {
		return vals[len(vals)-1]
	}
	frac := rank - float64(lo)
	return vals[lo] + frac*(vals[lo+1]-vals[lo])
}

func defined(series []float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, v := range series {
		if Defined(v) {
			out = append(out, v)
		}
	}
	return out
}

// Winsorize clamps the series to its own [lowerPct, upperPct] percentile
// values and returns a new slice; the input is never mutated. Undefined
// entries pass through untouched. Bounds outside 0 <= lower < upper <= 100
// are rejected. Applying the same bounds twice is a no-op.
func Winsorize(series []float64, lowerPct, upperPct float64) ([]float64, error) {
	if lowerPct < 0 || upperPct > 100 || lowerPct >= upperPct {
		return nil, &errs.ConfigurationError{
			Field:  "winsor percentiles",
			Reason: "bounds must satisfy 0 <= lower < upper <= 100",
		}
	}
	lo := percentile(series, lowerPct)
	hi := percentile(series, upperPct)

	out := make([]float64, len(series))
	copy(out, series)
	if !Defined(lo) {
		return out, nil
	}
	for i, v := range out {
		if !Defined(v) {
			continue
		}
		if v < lo {
			out[i] = lo
		} else if v > hi {
			out[i] = hi
		}
	}
	return out, nil
}

// summarizeSeries computes the summary statistics over the defined values.
func summarizeSeries(series []float64) Stats {
	vals := defined(series)
	if len(vals) == 0 {
		nan := math.NaN()
		return Stats{N: 0, Mean: nan, Median: nan, P25: nan, P75: nan}
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return Stats{
		N:      len(vals),
		Mean:   sum / float64(len(vals)),
		Median: percentile(vals, 50),
		P25:    percentile(vals, 25),
		P75:    percentile(vals, 75),
	}
}

// Summarize computes the per-multiple statistics over the peer group. The
// target is excluded before anything else; undefined entries are excluded
// per column without dropping the peer from the other columns. Each column
// is winsorized independently when enabled.
func Summarize(ms *MultipleSet, opts SummaryOptions) (*StatSummary, error) {
	out := &StatSummary{}
	for _, kind := range Kinds {
		col := ms.PeerColumn(kind)
		if opts.Winsorize {
			var err error
			col, err = Winsorize(col, opts.LowerPct, opts.UpperPct)
			if err != nil {
				return nil, err
			}
		}
		stats := summarizeSeries(col)
		switch kind {
		case EVRevenue:
			out.EVRevenue = stats
		case EVEBITDA:
			out.EVEBITDA = stats
		case PE:
			out.PE = stats
		}
	}
	return out, nil
}
