// Command consolidator reconciles a generated baseline against an
// externally supplied top-down planned forecast.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"baselinegen/internal/config"
	"baselinegen/internal/exporter"
	"baselinegen/internal/infrastructure"
	"baselinegen/internal/ingest"
	"baselinegen/internal/operations"
)

func main() {
	baselinePath := flag.String("baseline", "", "path to the (possibly adjusted) baseline .xlsx file")
	plannedPath := flag.String("planned", "", "path to the top-down planned forecast .xlsx file")
	outPath := flag.String("out", "reconciled_forecast.xlsx", "output path (.xlsx or .csv)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if *baselinePath == "" || *plannedPath == "" {
		logger.Error("Both -baseline and -planned flags are required")
		os.Exit(1)
	}

	baselineFile, err := os.Open(*baselinePath)
	if err != nil {
		logger.Error("Failed to open baseline file", "path", *baselinePath, "error", err)
		os.Exit(1)
	}
	defer baselineFile.Close()

	baselineTable, err := ingest.ReadTable(baselineFile)
	if err != nil {
		logger.Error("Failed to read baseline file", "error", err)
		os.Exit(1)
	}

	plannedFile, err := os.Open(*plannedPath)
	if err != nil {
		logger.Error("Failed to open planned forecast", "path", *plannedPath, "error", err)
		os.Exit(1)
	}
	defer plannedFile.Close()

	plannedGrid, err := ingest.ReadGrid(plannedFile)
	if err != nil {
		logger.Error("Failed to read planned forecast", "error", err)
		os.Exit(1)
	}

	runner := operations.NewRunner(cfg, logger, func(message string) {
		fmt.Fprintln(os.Stderr, message)
	})

	result, err := runner.RunReconciliation(baselineTable, plannedGrid)
	if err != nil {
		logger.Error("Reconciliation failed", "error", err)
		os.Exit(1)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		logger.Error("Failed to create output", "path", *outPath, "error", err)
		os.Exit(1)
	}
	defer out.Close()

	if strings.HasSuffix(strings.ToLower(*outPath), ".csv") {
		err = exporter.WriteReconciledCSV(out, result.Rows)
	} else {
		err = exporter.WriteReconciledXLSX(out, result.Rows)
	}
	if err != nil {
		logger.Error("Failed to write reconciled forecast", "path", *outPath, "error", err)
		os.Exit(1)
	}

	logger.Info("Reconciled forecast written",
		"path", *outPath,
		"rows", len(result.Rows),
		"run_id", result.RunID)
}
