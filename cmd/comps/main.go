package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"valuation_engine/pkg/core/comps"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	peersPath := flag.String("peers", "data/peers.csv", "peer table (.csv or .json)")
	target := flag.String("target", "TGT", "target ticker to exclude from peer statistics")
	winsorize := flag.Bool("winsorize", true, "winsorize peer multiples before statistics")
	lower := flag.Float64("lower", 5, "winsor lower percentile (0-100)")
	upper := flag.Float64("upper", 95, "winsor upper percentile (0-100)")
	rangeKind := flag.String("range", "EV / EBITDA", "multiple used for the quartile valuation range")
	outDir := flag.String("out", defaultOutDir(), "report output directory")
	flag.Parse()

	data, err := os.ReadFile(*peersPath)
	if err != nil {
		log.Fatalf("reading peers: %v", err)
	}

	var ps *comps.PeerSet
	if strings.EqualFold(filepath.Ext(*peersPath), ".json") {
		ps, err = comps.LoadPeersJSON(data, *target)
	} else {
		ps, err = comps.LoadPeersCSV(strings.NewReader(string(data)), *target)
	}
	if err != nil {
		log.Fatalf("loading peers: %v", err)
	}

	ms := comps.ComputeMultiples(ps)
	sum, err := comps.Summarize(ms, comps.SummaryOptions{
		Winsorize: *winsorize,
		LowerPct:  *lower,
		UpperPct:  *upper,
	})
	if err != nil {
		log.Fatalf("summarizing multiples: %v", err)
	}

	targetRec, ok := ps.Target()
	if !ok {
		log.Fatalf("target ticker %q not found in peer table", *target)
	}
	implied := comps.DeriveMedianImplied(sum, targetRec)

	var vr *comps.ValuationRange
	if kind, ok := parseKind(*rangeKind); ok {
		vr, err = comps.DeriveRange(sum, targetRec, kind)
		if err != nil {
			log.Printf("valuation range unavailable: %v", err)
		}
	}

	runID := uuid.NewString()
	report := fmt.Sprintf("run %s\n\n%s", runID, comps.RenderSummary(sum, implied, vr))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("creating output dir: %v", err)
	}
	writeFile(filepath.Join(*outDir, "comps_multiples.csv"), ms.Delimited())
	writeFile(filepath.Join(*outDir, "comps_summary.txt"), report)

	fmt.Print(report)
}

func parseKind(name string) (comps.MultipleKind, bool) {
	for _, k := range comps.Kinds {
		if strings.EqualFold(string(k), name) {
			return k, true
		}
	}
	return "", false
}

func defaultOutDir() string {
	if dir := os.Getenv("VALUATION_OUT_DIR"); dir != "" {
		return dir
	}
	return "reports"
}

func writeFile(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		log.Fatalf("writing %s: %v", path, err)
	}
	log.Printf("wrote %s", path)
}
