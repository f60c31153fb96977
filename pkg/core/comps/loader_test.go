package comps

import (
	"errors"
	"strings"
	"testing"

	"valuation_engine/pkg/core/errs"
)

const peersCSV = `company,ticker,currency,market_cap_m,net_debt_m,revenue_ltm_m,ebitda_ltm_m,net_income_ltm_m
Alpha,ALP,EUR,120,10,100,30,10
Beta,BET,EUR,150,20,120,40,-5
TargetCo,TGT,EUR,90,15,80,25,6
`

func TestLoadPeersCSV(t *testing.T) {
	ps, err := LoadPeersCSV(strings.NewReader(peersCSV), "TGT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ps.Peers) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ps.Peers))
	}
	if len(ps.PeerGroup()) != 2 {
		t.Errorf("peer group should exclude the target")
	}
	tgt, ok := ps.Target()
	if !ok || tgt.Company != "TargetCo" || tgt.NetDebt != 15 {
		t.Errorf("target row not loaded correctly: %+v", tgt)
	}
	if ps.Peers[1].NetIncomeLTM != -5 {
		t.Errorf("negative net income should load as-is, got %f", ps.Peers[1].NetIncomeLTM)
	}
}

func TestLoadPeersCSVAcceptsAliases(t *testing.T) {
	csvData := `company,ticker,currency,mkt_cap,netdebt,sales,ebitda,net_profit
Alpha,ALP,USD,100,5,50,10,4
`
	ps, err := LoadPeersCSV(strings.NewReader(csvData), "TGT")
	if err != nil {
		t.Fatalf("aliases should normalize to the canonical schema: %v", err)
	}
	p := ps.Peers[0]
	if p.MarketCap != 100 || p.NetDebt != 5 || p.RevenueLTM != 50 || p.NetIncomeLTM != 4 {
		t.Errorf("aliased columns mis-mapped: %+v", p)
	}
}

func TestLoadPeersCSVMissingColumnNamesField(t *testing.T) {
	csvData := `company,ticker,currency,market_cap_m,net_debt_m,revenue_ltm_m,net_income_ltm_m
Alpha,ALP,EUR,120,10,100,10
`
	_, err := LoadPeersCSV(strings.NewReader(csvData), "TGT")
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "ebitda_ltm_m" {
		t.Errorf("error should name the missing column, got %q", vErr.Field)
	}
}

func TestLoadPeersCSVRejectsNonNumeric(t *testing.T) {
	csvData := `company,ticker,currency,market_cap_m,net_debt_m,revenue_ltm_m,ebitda_ltm_m,net_income_ltm_m
Alpha,ALP,EUR,abc,10,100,30,10
`
	_, err := LoadPeersCSV(strings.NewReader(csvData), "TGT")
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "market_cap_m" {
		t.Errorf("error should name the non-numeric column, got %q", vErr.Field)
	}
}

func TestLoadPeersCSVRejectsMixedCurrencies(t *testing.T) {
	csvData := `company,ticker,currency,market_cap_m,net_debt_m,revenue_ltm_m,ebitda_ltm_m,net_income_ltm_m
Alpha,ALP,EUR,120,10,100,30,10
Beta,BET,USD,150,20,120,40,12
`
	_, err := LoadPeersCSV(strings.NewReader(csvData), "TGT")
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "currency" {
		t.Fatalf("expected currency ValidationError, got %v", err)
	}
}

func TestLoadPeersJSON(t *testing.T) {
	jsonData := []byte(`[
		{"company": "Alpha", "ticker": "ALP", "currency": "EUR",
		 "market_cap_m": 120, "net_debt_m": 10, "revenue_ltm_m": 100,
		 "ebitda_ltm_m": 30, "net_income_ltm_m": 10},
		{"company": "TargetCo", "ticker": "TGT", "currency": "EUR",
		 "market_cap": 90, "net_debt": 15, "revenue": 80,
		 "ebitda": 25, "net_income": 6}
	]`)

	ps, err := LoadPeersJSON(jsonData, "TGT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ps.Peers) != 2 {
		t.Fatalf("expected 2 peers, got %d", len(ps.Peers))
	}
	tgt, ok := ps.Target()
	if !ok || tgt.MarketCap != 90 || tgt.RevenueLTM != 80 {
		t.Errorf("aliased JSON fields mis-mapped: %+v", tgt)
	}
}

func TestLoadPeersJSONMissingField(t *testing.T) {
	jsonData := []byte(`[{"company": "Alpha", "ticker": "ALP", "currency": "EUR",
		"market_cap_m": 120, "net_debt_m": 10, "revenue_ltm_m": 100,
		"ebitda_ltm_m": 30}]`)

	_, err := LoadPeersJSON(jsonData, "TGT")
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "net_income_ltm_m" {
		t.Fatalf("expected ValidationError naming net_income_ltm_m, got %v", err)
	}
}
