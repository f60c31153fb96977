// Package config loads scenario files into the typed engine inputs. YAML is
// the default format; HJSON is accepted for hand-annotated scenarios. The
// engine never reads ambient paths itself: callers load a scenario and pass
// the resulting values in.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"valuation_engine/pkg/core/dcf"
	"valuation_engine/pkg/core/errs"
)

// Scenario is the on-disk shape of one model run: the DCF assumption bundle
// plus the comps options. Rates are decimals, monetary values millions.
type Scenario struct {
	Name string `yaml:"name" json:"name"`

	DCF   DCFScenario   `yaml:"dcf" json:"dcf"`
	Comps CompsScenario `yaml:"comps" json:"comps"`
}

// DCFScenario mirrors dcf.Assumptions field by field.
type DCFScenario struct {
	Horizon          int     `yaml:"horizon" json:"horizon"`
	InitialRevenueM  float64 `yaml:"initial_revenue_m" json:"initial_revenue_m"`

	RevenueGrowth     float64   `yaml:"revenue_growth" json:"revenue_growth"`
	RevenueGrowthPath []float64 `yaml:"revenue_growth_path" json:"revenue_growth_path"`
	EBITMargin        float64   `yaml:"ebit_margin" json:"ebit_margin"`
	EBITMarginPath    []float64 `yaml:"ebit_margin_path" json:"ebit_margin_path"`

	TaxRate         float64 `yaml:"tax_rate" json:"tax_rate"`
	DAPctRevenue    float64 `yaml:"da_pct_revenue" json:"da_pct_revenue"`
	CapexPctRevenue float64 `yaml:"capex_pct_revenue" json:"capex_pct_revenue"`
	NWCPctRevenue   float64 `yaml:"nwc_pct_revenue" json:"nwc_pct_revenue"`

	WeightEquity      float64 `yaml:"weight_equity" json:"weight_equity"`
	WeightDebt        float64 `yaml:"weight_debt" json:"weight_debt"`
	CostOfDebt        float64 `yaml:"cost_of_debt" json:"cost_of_debt"`
	RiskFreeRate      float64 `yaml:"risk_free_rate" json:"risk_free_rate"`
	Beta              float64 `yaml:"beta" json:"beta"`
	EquityRiskPremium float64 `yaml:"equity_risk_premium" json:"equity_risk_premium"`

	TerminalGrowth float64  `yaml:"terminal_growth" json:"terminal_growth"`
	NetDebtM       float64  `yaml:"net_debt_m" json:"net_debt_m"`
	ManualWACC     *float64 `yaml:"manual_wacc" json:"manual_wacc"`

	// Sensitivity candidate sets, order preserved into the grid.
	SensitivityWACCs   []float64 `yaml:"sensitivity_waccs" json:"sensitivity_waccs"`
	SensitivityGrowths []float64 `yaml:"sensitivity_growths" json:"sensitivity_growths"`
}

// CompsScenario carries the comps run options.
type CompsScenario struct {
	TargetTicker string  `yaml:"target_ticker" json:"target_ticker"`
	Winsorize    bool    `yaml:"winsorize" json:"winsorize"`
	LowerPct     float64 `yaml:"winsor_lower_pct" json:"winsor_lower_pct"`
	UpperPct     float64 `yaml:"winsor_upper_pct" json:"winsor_upper_pct"`
}

// Assumptions maps the scenario onto the validated engine input.
func (s DCFScenario) Assumptions() (dcf.Assumptions, error) {
	a := dcf.Assumptions{
		Horizon:           s.Horizon,
		InitialRevenue:    s.InitialRevenueM,
		RevenueGrowth:     s.RevenueGrowth,
		RevenueGrowthPath: s.RevenueGrowthPath,
		EBITMargin:        s.EBITMargin,
		EBITMarginPath:    s.EBITMarginPath,
		TaxRate:           s.TaxRate,
		DAPctRevenue:      s.DAPctRevenue,
		CapexPctRevenue:   s.CapexPctRevenue,
		NWCPctRevenue:     s.NWCPctRevenue,
		WeightEquity:      s.WeightEquity,
		WeightDebt:        s.WeightDebt,
		CostOfDebt:        s.CostOfDebt,
		RiskFreeRate:      s.RiskFreeRate,
		Beta:              s.Beta,
		EquityRiskPremium: s.EquityRiskPremium,
		TerminalGrowth:    s.TerminalGrowth,
		NetDebt:           s.NetDebtM,
		ManualWACC:        s.ManualWACC,
	}
	if err := a.Validate(); err != nil {
		return dcf.Assumptions{}, err
	}
	return a, nil
}

// Load reads and decodes a scenario file. The format follows the extension:
// .hjson decodes as HJSON, everything else as YAML.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes scenario bytes; ext selects the format as in Load.
func Parse(data []byte, ext string) (*Scenario, error) {
	var s Scenario
	if strings.EqualFold(ext, ".hjson") {
		if err := hjson.Unmarshal(data, &s); err != nil {
			return nil, &errs.ValidationError{Field: "scenario", Reason: fmt.Sprintf("hjson: %v", err)}
		}
	} else {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, &errs.ValidationError{Field: "scenario", Reason: fmt.Sprintf("yaml: %v", err)}
		}
	}
	return &s, nil
}
