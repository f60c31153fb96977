package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"valuation_engine/pkg/core/config"
	"valuation_engine/pkg/core/dcf"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	scenarioPath := flag.String("scenario", "data/scenario.yaml", "scenario file (.yaml or .hjson)")
	outDir := flag.String("out", defaultOutDir(), "report output directory")
	flag.Parse()

	scenario, err := config.Load(*scenarioPath)
	if err != nil {
		log.Fatalf("loading scenario: %v", err)
	}
	assumptions, err := scenario.DCF.Assumptions()
	if err != nil {
		log.Fatalf("invalid scenario: %v", err)
	}

	sched, wacc, result, err := dcf.Run(assumptions)
	if err != nil {
		log.Fatalf("valuation failed: %v", err)
	}

	runID := uuid.NewString()
	report := fmt.Sprintf("run %s (%s)\n\n%s", runID, scenario.Name, dcf.RenderReport(result, wacc))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("creating output dir: %v", err)
	}
	writeFile(filepath.Join(*outDir, "fcf_schedule.csv"), sched.Delimited())
	writeFile(filepath.Join(*outDir, "dcf_summary.txt"), report)

	if len(scenario.DCF.SensitivityWACCs) > 0 && len(scenario.DCF.SensitivityGrowths) > 0 {
		grid := dcf.BuildSensitivity(sched, assumptions.NetDebt,
			scenario.DCF.SensitivityWACCs, scenario.DCF.SensitivityGrowths)
		writeFile(filepath.Join(*outDir, "dcf_sensitivity.csv"), grid.Delimited())
	}

	fmt.Print(report)
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
