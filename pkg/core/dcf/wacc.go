package dcf

// WACCBreakdown holds the blended discount rate and its components.
type WACCBreakdown struct {
	CostOfEquity       float64
	AfterTaxCostOfDebt float64
	WeightEquity       float64
	WeightDebt         float64
	WACC               float64
	Manual             bool // true when the caller supplied WACC directly
}

// ComputeWACC derives the discount rate from the assumption bundle.
//
//	Ke   = Rf + beta * ERP            (CAPM)
//	Kd   = cost of debt * (1 - tax)
//	WACC = We*Ke + Wd*Kd
//
// A manual WACC override bypasses the computation entirely but is still
// checked against the terminal growth rate. Computed WACC keeps that guard
// at the terminal value stage, where the offending pair is known exactly.
func ComputeWACC(a Assumptions) (*WACCBreakdown, error) {
	if a.ManualWACC != nil {
		wacc := *a.ManualWACC
		if err := checkTerminalSpread(wacc, a.TerminalGrowth); err != nil {
			return nil, err
		}
		return &WACCBreakdown{WACC: wacc, Manual: true}, nil
	}

	if err := a.checkWeights(); err != nil {
		return nil, err
	}

	ke := a.RiskFreeRate + a.Beta*a.EquityRiskPremium
	kd := a.CostOfDebt * (1 - a.TaxRate)

	return &WACCBreakdown{
		CostOfEquity:       ke,
		AfterTaxCostOfDebt: kd,
		WeightEquity:       a.WeightEquity,
		WeightDebt:         a.WeightDebt,
		WACC:               a.WeightEquity*ke + a.WeightDebt*kd,
	}, nil
}
