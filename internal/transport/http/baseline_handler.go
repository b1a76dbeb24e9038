package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"baselinegen/internal/contract"
	apierrors "baselinegen/internal/errors"
	"baselinegen/internal/exporter"
	"baselinegen/internal/ingest"
	"baselinegen/internal/operations"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateParamLayout = "2006-01-02"
)

// GenerateBaseline accepts the order-history upload plus the run
// parameters and streams the resulting baseline matrix back as a
// spreadsheet. Row-level validation failures come back as the full
// itemized list.
func (h *Handler) GenerateBaseline(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.Server.MaxUploadBytes); err != nil {
		render.Render(w, r, apierrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid multipart form", err.Error()))
		return
	}

	params, err := baselineParams(r)
	if err != nil {
		render.Render(w, r, apierrors.NewWithDetails(http.StatusBadRequest, "MISSING_PARAMETER", "Invalid run parameters", err.Error()))
		return
	}

	table, apiErr := h.readUploadedTable(r, "orders")
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	result, err := h.runner.RunBaseline(table, params)
	if err != nil {
		if errors.Is(err, operations.ErrRowValidation) {
			render.Render(w, r, apierrors.RowValidationError(result.RowErrors))
			return
		}
		render.Render(w, r, apierrors.StructuralError(err))
		return
	}

	var buf bytes.Buffer
	if err := exporter.WriteMatrixXLSX(&buf, result.Matrix); err != nil {
		h.logger.ErrorContext(r.Context(), "baseline export failed", slog.String("error", err.Error()))
		render.Render(w, r, apierrors.ErrInternalServer)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="baseline.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func baselineParams(r *http.Request) (operations.BaselineParams, error) {
	var params operations.BaselineParams
	var err error

	if params.StartDate, err = dateParam(r, "start_date"); err != nil {
		return params, err
	}
	if params.EndDate, err = dateParam(r, "end_date"); err != nil {
		return params, err
	}
	if params.DeliveryDate, err = dateParam(r, "delivery_date"); err != nil {
		return params, err
	}
	params.IncludeNextMonth = r.FormValue("include_next_month") == "true"
	return params, nil
}

func dateParam(r *http.Request, name string) (time.Time, error) {
	value := r.FormValue(name)
	if value == "" {
		return time.Time{}, fmt.Errorf("missing parameter %q", name)
	}
	parsed, err := time.Parse(dateParamLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parameter %q: %w", name, err)
	}
	return parsed, nil
}

// readUploadedTable pulls one multipart file out of the request and
// parses it into a contract table.
func (h *Handler) readUploadedTable(r *http.Request, field string) (contract.Table, *apierrors.APIError) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return contract.Table{}, apierrors.NewWithDetails(http.StatusBadRequest, "MISSING_PARAMETER",
			fmt.Sprintf("Missing file upload %q", field), err.Error())
	}
	defer file.Close()

	table, err := ingest.ReadTable(file)
	if err != nil {
		return contract.Table{}, apierrors.StructuralError(err)
	}
	return table, nil
}
