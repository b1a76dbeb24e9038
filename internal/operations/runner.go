// Package operations orchestrates the pipeline stages into the two
// runnable workflows: baseline generation and planned-orders
// reconciliation. Each run is independent and stateless; the only side
// channel is an optional fire-and-forget progress callback.
package operations

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"baselinegen/internal/baseline"
	"baselinegen/internal/config"
	"baselinegen/internal/contract"
	"baselinegen/internal/ingest"
	"baselinegen/internal/reconcile"
)

// ProgressFunc receives human-readable status strings in call order.
// Fire-and-forget: no acknowledgment, no backpressure. A nil func means
// a silent run.
type ProgressFunc func(message string)

// ErrRowValidation gates downstream stages when the row-level validator
// accumulated failures. The itemized list travels in the result.
var ErrRowValidation = errors.New("order history failed row validation")

// Runner wires the pipeline stages together with configuration,
// logging and progress reporting.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	progress ProgressFunc
}

// NewRunner creates a runner. logger may be nil for slog.Default();
// progress may be nil for a silent run.
func NewRunner(cfg *config.Config, logger *slog.Logger, progress ProgressFunc) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "runner")),
		progress: progress,
	}
}

func (r *Runner) report(message string) {
	if r.progress != nil {
		r.progress(message)
	}
}

// BaselineParams are the caller-supplied run parameters: date range for
// filtering history, anchor date for the forecast calendar, and the
// next-month inclusion flag.
type BaselineParams struct {
	StartDate        time.Time
	EndDate          time.Time
	DeliveryDate     time.Time
	IncludeNextMonth bool
}

// BaselineResult is the terminal artifact of a baseline run. When
// RowErrors is non-empty the matrix is absent and Err is
// ErrRowValidation.
type BaselineResult struct {
	RunID     string
	Matrix    baseline.Matrix
	RowErrors []contract.RowError
	Elapsed   time.Duration
}

// RunBaseline executes the full baseline workflow over a validated-shape
// upload: contract validation, enrichment, statistics, projection,
// calendar expansion, pivot and the allowed-squares filter.
func (r *Runner) RunBaseline(table contract.Table, params BaselineParams) (*BaselineResult, error) {
	runID := uuid.NewString()
	start := time.Now()
	logger := r.logger.With(slog.String("run_id", runID))

	logger.Info("starting baseline run",
		slog.Time("start_date", params.StartDate),
		slog.Time("end_date", params.EndDate),
		slog.Time("delivery_date", params.DeliveryDate),
		slog.Bool("include_next_month", params.IncludeNextMonth),
		slog.Int("rows", len(table.Rows)))

	r.report("Validating uploaded columns...")
	if err := contract.ValidateColumns(table); err != nil {
		recordRun("baseline", "structural_error", time.Since(start))
		return nil, fmt.Errorf("column validation: %w", err)
	}

	r.report("Validating rows...")
	orders, rowErrs := contract.ValidateRows(table)
	if len(rowErrs) > 0 {
		logger.Warn("row validation failed", slog.Int("errors", len(rowErrs)))
		recordRun("baseline", "row_errors", time.Since(start))
		return &BaselineResult{RunID: runID, RowErrors: rowErrs, Elapsed: time.Since(start)}, ErrRowValidation
	}
	r.report("Validation complete.")

	r.report("Enriching order history...")
	filtered := baseline.FilterRange(orders, params.StartDate, params.EndDate)
	enriched := baseline.Enrich(filtered)
	logger.Info("enriched history",
		slog.Int("filtered_rows", len(filtered)),
		slog.Int("training_rows", len(enriched)))

	r.report("Collecting active squares...")
	allowed := baseline.AllowedSquares(enriched, params.EndDate, r.cfg.Forecast.AllowedWindowWeeks)

	r.report("Computing central tendencies...")
	medians, err := baseline.GroupStatistics(enriched,
		[]string{baseline.ColGrowth, baseline.ColQuantity}, baseline.Median)
	if err != nil {
		recordRun("baseline", "error", time.Since(start))
		return nil, fmt.Errorf("central tendency: %w", err)
	}

	bounds := baseline.GrowthBounds{Min: r.cfg.Forecast.GrowthClipMin, Max: r.cfg.Forecast.GrowthClipMax}
	rows, err := baseline.ClipAndMerge(medians, bounds)
	if err != nil {
		recordRun("baseline", "error", time.Since(start))
		return nil, fmt.Errorf("clip and merge: %w", err)
	}

	if r.cfg.Forecast.ThreeWeekAdjust {
		r.report("Applying trailing-mean adjustment...")
		window := baseline.TrailingWindow(enriched, params.EndDate, r.cfg.Forecast.AdjustWindowWeeks)
		meanQty, err := baseline.GroupStatisticsLong(window, []string{baseline.ColQuantity}, baseline.Mean)
		if err != nil {
			recordRun("baseline", "error", time.Since(start))
			return nil, fmt.Errorf("trailing mean: %w", err)
		}
		rows = baseline.AdjustToTrailingMean(rows, meanQty, r.cfg.Forecast.AdjustThreshold)
	}

	r.report("Building forecast calendar...")
	calendar := baseline.ExpandCalendar(params.DeliveryDate, params.IncludeNextMonth)

	r.report("Projecting baseline across the horizon...")
	matrix := baseline.BuildForecast(calendar, rows)
	matrix = baseline.FilterAllowed(matrix, allowed)

	elapsed := time.Since(start)
	logger.Info("baseline run complete",
		slog.Int("segments", len(matrix.Rows)),
		slog.Int("dates", len(matrix.Dates)),
		slog.Duration("elapsed", elapsed))
	recordRun("baseline", "ok", elapsed)
	r.report("Baseline ready.")

	return &BaselineResult{RunID: runID, Matrix: matrix, Elapsed: elapsed}, nil
}

// ReconcileResult is the terminal artifact of a reconciliation run; it
// either fully exists or the run failed with no partial output.
type ReconcileResult struct {
	RunID   string
	Rows    []reconcile.Row
	Elapsed time.Duration
}

// RunReconciliation redistributes an uploaded top-down planned forecast
// over a re-uploaded baseline matrix and cross-validates the two
// redistribution passes.
func (r *Runner) RunReconciliation(baselineTable contract.Table, plannedGrid [][]string) (*ReconcileResult, error) {
	runID := uuid.NewString()
	start := time.Now()
	logger := r.logger.With(slog.String("run_id", runID))

	logger.Info("starting reconciliation run",
		slog.Int("baseline_rows", len(baselineTable.Rows)),
		slog.Int("planned_grid_rows", len(plannedGrid)))

	r.report("Validating baseline upload...")
	if err := contract.ValidateColumnSubset(baselineTable.Columns, ingest.SegmentColumnCount); err != nil {
		recordRun("reconcile", "structural_error", time.Since(start))
		return nil, fmt.Errorf("baseline upload: %w", err)
	}

	r.report("Validating planned-orders upload...")
	dataRows := len(plannedGrid)
	if dataRows > 0 {
		dataRows-- // first sheet row is the leading block's header
	}
	if err := contract.ValidateRowCount(dataRows, r.cfg.Reconcile.PlannedRowCount); err != nil {
		recordRun("reconcile", "structural_error", time.Since(start))
		return nil, fmt.Errorf("planned-orders upload: %w", err)
	}

	matrix, err := ingest.ParseMatrix(baselineTable)
	if err != nil {
		recordRun("reconcile", "structural_error", time.Since(start))
		return nil, fmt.Errorf("baseline upload: %w", err)
	}

	r.report("Parsing planned-orders blocks...")
	planned, err := reconcile.ParsePlanned(plannedGrid, r.cfg.Reconcile.Origins())
	if err != nil {
		recordRun("reconcile", "structural_error", time.Since(start))
		return nil, fmt.Errorf("planned-orders upload: %w", err)
	}

	r.report("Redistributing planned orders...")
	long := baseline.Melt(matrix)
	rows, err := reconcile.Reconcile(long, planned, r.cfg.Reconcile)
	if err != nil {
		logger.Error("reconciliation failed", slog.String("error", err.Error()))
		recordRun("reconcile", "inconsistent", time.Since(start))
		return nil, err
	}

	elapsed := time.Since(start)
	logger.Info("reconciliation complete",
		slog.Int("rows", len(rows)),
		slog.Duration("elapsed", elapsed))
	recordRun("reconcile", "ok", elapsed)
	r.report("Reconciled forecast ready.")

	return &ReconcileResult{RunID: runID, Rows: rows, Elapsed: elapsed}, nil
}
