package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/cache"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/metrics"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/repositories"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/services"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/timeutil"
)

const feePeriodCacheTTL = 10 * time.Minute

type FeeHandler struct {
	Generation *services.FeeGenerationService
	FeeRepo    *repositories.FeeRecordRepository
}

func NewFeeHandler(generation *services.FeeGenerationService, feeRepo *repositories.FeeRecordRepository) *FeeHandler {
	return &FeeHandler{Generation: generation, FeeRepo: feeRepo}
}

type generateFeesRequest struct {
	BuildingID int    `json:"building_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Algorithm  string `json:"algorithm"`
}

type generateFeesResponse struct {
	BuildingID  int    `json:"building_id"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	Algorithm   string `json:"algorithm,omitempty"`
	RowsWritten int    `json:"rows_written"`
}

// GenerateFees triggers fee generation for a building and period.
// POST /api/fees/generate
func (h *FeeHandler) GenerateFees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateFeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.BuildingID <= 0 {
		http.Error(w, "building_id is required", http.StatusBadRequest)
		return
	}
	// An omitted period defaults to the current billing month
	if req.Month == 0 && req.Year == 0 {
		req.Month, req.Year = timeutil.CurrentPeriod()
	}

	count, err := h.Generation.GenerateFees(ctx, req.BuildingID, req.Month, req.Year, req.Algorithm)
	if err != nil {
		metrics.FeeGenerationsTotal.WithLabelValues("failure").Inc()

		var noExpenses *services.NoExpensesError
		var noUnits *services.NoUnitsError
		var missingRate *services.MissingRateError
		var unknownAlgo *services.UnknownAlgorithmError
		switch {
		case errors.As(err, &noExpenses), errors.As(err, &noUnits), errors.As(err, &missingRate):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.As(err, &unknownAlgo):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	metrics.FeeGenerationsTotal.WithLabelValues("success").Inc()
	metrics.FeeRowsWritten.Add(float64(count))

	// Regeneration replaces the period's rows; cached fee views are stale now
	cache.InvalidateFeeCaches(ctx, req.BuildingID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(generateFeesResponse{
		BuildingID:  req.BuildingID,
		Month:       req.Month,
		Year:        req.Year,
		Algorithm:   req.Algorithm,
		RowsWritten: count,
	})
}

// ListFeesForPeriod returns the generated fee rows for one building period.
// GET /api/fees/{building_id}?month=&year=
func (h *FeeHandler) ListFeesForPeriod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	buildingID, err := strconv.Atoi(vars["building_id"])
	if err != nil {
		http.Error(w, "Invalid building ID", http.StatusBadRequest)
		return
	}

	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if month == 0 && year == 0 {
		month, year = timeutil.CurrentPeriod()
	}
	if month < 1 || month > 12 || year == 0 {
		http.Error(w, "Invalid period", http.StatusBadRequest)
		return
	}

	key := cache.FeePeriodKey(buildingID, year, month)
	if data, ok := cache.GetCached(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	records, err := h.FeeRepo.ListForPeriod(ctx, buildingID, month, year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(records)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.SetCached(ctx, key, payload, feePeriodCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}
