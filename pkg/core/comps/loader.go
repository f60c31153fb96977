package comps

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"valuation_engine/pkg/core/errs"
)

// Canonical columns of the peer table. Monetary values are millions in a
// single currency.
var requiredColumns = []string{
	"company", "ticker", "currency",
	"market_cap_m", "net_debt_m",
	"revenue_ltm_m", "ebitda_ltm_m", "net_income_ltm_m",
}

// columnAliases maps common header variants onto the canonical names, so a
// table exported under a different convention still loads.
var columnAliases = map[string][]string{
	"market_cap_m":     {"market_cap_m", "market_cap", "mkt_cap", "marketcap", "market_capitalization"},
	"net_debt_m":       {"net_debt_m", "net_debt", "netdebt"},
	"revenue_ltm_m":    {"revenue_ltm_m", "revenue_ltm", "revenue", "sales", "sales_ltm", "sales_ltm_m"},
	"ebitda_ltm_m":     {"ebitda_ltm_m", "ebitda_ltm", "ebitda"},
	"net_income_ltm_m": {"net_income_ltm_m", "net_income_ltm", "net_income", "net_profit", "profit"},
}

// canonicalName resolves a raw header to its canonical column name.
func canonicalName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	for canon, variants := range columnAliases {
		for _, v := range variants {
			if name == v {
				return canon
			}
		}
	}
	return name
}

// LoadPeersCSV parses and validates a peer table from CSV. Validation is
// eager: a missing or non-numeric column fails with a ValidationError naming
// the offending field before any multiple is computed. The whole table must
// be quoted in one currency.
func LoadPeersCSV(r io.Reader, targetTicker string) (*PeerSet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &errs.ValidationError{Field: "csv", Reason: err.Error()}
	}
	if len(records) < 2 {
		return nil, &errs.ValidationError{Field: "csv", Reason: "no data rows"}
	}

	colIdx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		colIdx[canonicalName(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, &errs.ValidationError{Field: col, Reason: "required column missing"}
		}
	}

	peers := make([]PeerRecord, 0, len(records)-1)
	for rowNum, row := range records[1:] {
		cell := func(col string) string { return strings.TrimSpace(row[colIdx[col]]) }

		num := func(col string) (float64, error) {
			v, perr := strconv.ParseFloat(cell(col), 64)
			if perr != nil {
				return 0, &errs.ValidationError{
					Field:  col,
					Reason: fmt.Sprintf("row %d: not numeric: %q", rowNum+2, cell(col)),
				}
			}
			return v, nil
		}

		p := PeerRecord{
			Company:  cell("company"),
			Ticker:   cell("ticker"),
			Currency: cell("currency"),
		}
		if p.Ticker == "" {
			return nil, &errs.ValidationError{Field: "ticker", Reason: fmt.Sprintf("row %d: empty", rowNum+2)}
		}
		if p.MarketCap, err = num("market_cap_m"); err != nil {
			return nil, err
		}
		if p.NetDebt, err = num("net_debt_m"); err != nil {
			return nil, err
		}
		if p.RevenueLTM, err = num("revenue_ltm_m"); err != nil {
			return nil, err
		}
		if p.EBITDALTM, err = num("ebitda_ltm_m"); err != nil {
			return nil, err
		}
		if p.NetIncomeLTM, err = num("net_income_ltm_m"); err != nil {
			return nil, err
		}
		peers = append(peers, p)
	}

	ps := &PeerSet{Peers: peers, TargetTicker: targetTicker}
	if err := checkSingleCurrency(ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// LoadPeersJSON parses the same peer table from a JSON array of objects,
// with the same alias tolerance and validation as the CSV form.
func LoadPeersJSON(data []byte, targetTicker string) (*PeerSet, error) {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, &errs.ValidationError{Field: "json", Reason: "expected an array of peer objects"}
	}

	var peers []PeerRecord
	var firstErr error
	parsed.ForEach(func(_, obj gjson.Result) bool {
		rowNum := len(peers) + 1

		field := func(col string) (gjson.Result, bool) {
			for _, v := range append([]string{col}, columnAliases[col]...) {
				if r := obj.Get(v); r.Exists() {
					return r, true
				}
			}
			return gjson.Result{}, false
		}
		num := func(col string) float64 {
			r, ok := field(col)
			if !ok {
				firstErr = &errs.ValidationError{Field: col, Reason: fmt.Sprintf("object %d: required field missing", rowNum)}
				return 0
			}
			if r.Type != gjson.Number {
				firstErr = &errs.ValidationError{Field: col, Reason: fmt.Sprintf("object %d: not numeric: %q", rowNum, r.Raw)}
				return 0
			}
			return r.Float()
		}
		str := func(col string) string {
			r, ok := field(col)
			if !ok {
				firstErr = &errs.ValidationError{Field: col, Reason: fmt.Sprintf("object %d: required field missing", rowNum)}
				return ""
			}
			return r.String()
		}

		p := PeerRecord{
			Company:      str("company"),
			Ticker:       str("ticker"),
			Currency:     str("currency"),
			MarketCap:    num("market_cap_m"),
			NetDebt:      num("net_debt_m"),
			RevenueLTM:   num("revenue_ltm_m"),
			EBITDALTM:    num("ebitda_ltm_m"),
			NetIncomeLTM: num("net_income_ltm_m"),
		}
		if firstErr != nil {
			return false
		}
		if p.Ticker == "" {
			firstErr = &errs.ValidationError{Field: "ticker", Reason: fmt.Sprintf("object %d: empty", rowNum)}
			return false
		}
		peers = append(peers, p)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	if len(peers) == 0 {
		return nil, &errs.ValidationError{Field: "json", Reason: "no peer objects"}
	}

	ps := &PeerSet{Peers: peers, TargetTicker: targetTicker}
	if err := checkSingleCurrency(ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// checkSingleCurrency enforces the single-currency invariant; mixing
// currencies needs FX normalization upstream of the engine.
func checkSingleCurrency(ps *PeerSet) error {
	seen := ""
	for _, p := range ps.Peers {
		if seen == "" {
			seen = p.Currency
			continue
		}
		if p.Currency != seen {
			return &errs.ValidationError{
				Field:  "currency",
				Reason: fmt.Sprintf("multiple currencies detected (%s, %s); normalize FX before loading", seen, p.Currency),
			}
		}
	}
	return nil
}
