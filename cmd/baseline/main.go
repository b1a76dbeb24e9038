// Command baseline generates the order-volume baseline from an order
// history spreadsheet.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"baselinegen/internal/config"
	"baselinegen/internal/exporter"
	"baselinegen/internal/infrastructure"
	"baselinegen/internal/ingest"
	"baselinegen/internal/operations"

	goerrors "errors"
)

func main() {
	ordersPath := flag.String("orders", "", "path to the order history .xlsx file")
	startDate := flag.String("start", "", "start of the history range (YYYY-MM-DD)")
	endDate := flag.String("end", "", "end of the history range / cutoff date (YYYY-MM-DD)")
	deliveryDate := flag.String("delivery", "", "anchor delivery date for the forecast calendar (YYYY-MM-DD)")
	nextMonth := flag.Bool("next-month", false, "include the following month in the forecast horizon")
	outPath := flag.String("out", "baseline.xlsx", "output path (.xlsx or .csv)")
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

	params, err := runParams(*startDate, *endDate, *deliveryDate, *nextMonth)
	if err != nil {
		logger.Error("Invalid run parameters", "error", err)
		os.Exit(1)
	}

	if *ordersPath == "" {
		logger.Error("Missing -orders flag")
		os.Exit(1)
	}
	file, err := os.Open(*ordersPath)
	if err != nil {
		logger.Error("Failed to open order history", "path", *ordersPath, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	table, err := ingest.ReadTable(file)
	if err != nil {
		logger.Error("Failed to read order history", "error", err)
		os.Exit(1)
	}

	runner := operations.NewRunner(cfg, logger, func(message string) {
		fmt.Fprintln(os.Stderr, message)
	})

	result, err := runner.RunBaseline(table, params)
	if err != nil {
		if goerrors.Is(err, operations.ErrRowValidation) {
			for _, rowErr := range result.RowErrors {
				fmt.Fprintln(os.Stderr, rowErr.Error())
			}
			logger.Error("Order history failed validation", "errors", len(result.RowErrors))
			os.Exit(1)
		}
		logger.Error("Baseline run failed", "error", err)
		os.Exit(1)
	}

	if err := writeMatrix(*outPath, result); err != nil {
		logger.Error("Failed to write baseline", "path", *outPath, "error", err)
		os.Exit(1)
	}

	logger.Info("Baseline written",
		"path", *outPath,
		"segments", len(result.Matrix.Rows),
		"dates", len(result.Matrix.Dates),
		"run_id", result.RunID)
}

func runParams(start, end, delivery string, nextMonth bool) (operations.BaselineParams, error) {
	var params operations.BaselineParams
	var err error
	if params.StartDate, err = parseFlagDate("start", start); err != nil {
		return params, err
	}
	if params.EndDate, err = parseFlagDate("end", end); err != nil {
		return params, err
	}
	if params.DeliveryDate, err = parseFlagDate("delivery", delivery); err != nil {
		return params, err
	}
	params.IncludeNextMonth = nextMonth
	return params, nil
}

func parseFlagDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing -%s flag", name)
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("-%s: %w", name, err)
	}
	return parsed, nil
}

func writeMatrix(path string, result *operations.BaselineResult) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return exporter.WriteMatrixCSV(out, result.Matrix)
	}
	return exporter.WriteMatrixXLSX(out, result.Matrix)
}
