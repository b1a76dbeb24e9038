package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apierrors "baselinegen/internal/errors"
	"baselinegen/internal/exporter"
	"baselinegen/internal/ingest"
	"baselinegen/internal/reconcile"
)

// ReconcileForecast accepts the re-uploaded baseline matrix plus the
// top-down planned-orders file, runs both redistribution passes and
// streams the merged reconciled forecast back. A cross-validation
// mismatch is a fatal inconsistency, not a partial result.
func (h *Handler) ReconcileForecast(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.Server.MaxUploadBytes); err != nil {
		render.Render(w, r, apierrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid multipart form", err.Error()))
		return
	}

	baselineTable, apiErr := h.readUploadedTable(r, "baseline")
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	plannedFile, _, err := r.FormFile("planned")
	if err != nil {
		render.Render(w, r, apierrors.NewWithDetails(http.StatusBadRequest, "MISSING_PARAMETER",
			fmt.Sprintf("Missing file upload %q", "planned"), err.Error()))
		return
	}
	defer plannedFile.Close()

	plannedGrid, err := ingest.ReadGrid(plannedFile)
	if err != nil {
		render.Render(w, r, apierrors.StructuralError(err))
		return
	}

	result, err := h.runner.RunReconciliation(baselineTable, plannedGrid)
	if err != nil {
		var inconsistent *reconcile.ErrInconsistent
		if errors.As(err, &inconsistent) {
			render.Render(w, r, apierrors.ReconciliationError(err))
			return
		}
		render.Render(w, r, apierrors.StructuralError(err))
		return
	}

	var buf bytes.Buffer
	if err := exporter.WriteReconciledXLSX(&buf, result.Rows); err != nil {
		h.logger.ErrorContext(r.Context(), "reconciled export failed", slog.String("error", err.Error()))
		render.Render(w, r, apierrors.ErrInternalServer)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="reconciled_forecast.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
