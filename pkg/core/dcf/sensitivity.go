package dcf

// SensitivityCell is one (WACC, g) evaluation. Cells with WACC <= g are
// invalid and carry no equity value.
type SensitivityCell struct {
	WACC        float64
	Growth      float64
	EquityValue float64
	Valid       bool
}

// SensitivityGrid maps WACC rows and terminal-growth columns to equity
// values. Row and column order is preserved from the candidate sets so
// rendering stays deterministic.
type SensitivityGrid struct {
	WACCs   []float64
	Growths []float64
	Cells   [][]SensitivityCell // Cells[i][j] for WACCs[i] x Growths[j]
}

// BuildSensitivity re-discounts a fixed FCF schedule across every
// (WACC, g) candidate pair. Cash flows are not re-projected: only the
// discounting and terminal value move. Pairs with WACC <= g are marked
// invalid, never populated with a number.
func BuildSensitivity(sched *FCFSchedule, netDebt float64, waccs, growths []float64) *SensitivityGrid {
	grid := &SensitivityGrid{
		WACCs:   append([]float64(nil), waccs...),
		Growths: append([]float64(nil), growths...),
		Cells:   make([][]SensitivityCell, len(waccs)),
	}
	for i, wacc := range waccs {
		row := make([]SensitivityCell, len(growths))
		for j, g := range growths {
			cell := SensitivityCell{WACC: wacc, Growth: g}
			if res, err := Valuate(sched, wacc, g, netDebt); err == nil {
				cell.EquityValue = res.EquityValue
				cell.Valid = true
			}
			row[j] = cell
		}
		grid.Cells[i] = row
	}
	return grid
}
