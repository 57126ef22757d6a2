package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/cache"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/metrics"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/services"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/timeutil"
)

const feeHistoryCacheTTL = 5 * time.Minute

type SettlementHandler struct {
	Service *services.SettlementService
}

func NewSettlementHandler(service *services.SettlementService) *SettlementHandler {
	return &SettlementHandler{Service: service}
}

// identityFromQuery parses the unit identity tuple from query parameters.
func identityFromQuery(r *http.Request) (models.UnitIdentity, bool) {
	q := r.URL.Query()
	buildingID, err1 := strconv.Atoi(q.Get("building_id"))
	clientID, err2 := strconv.Atoi(q.Get("client_id"))
	floor, err3 := strconv.Atoi(q.Get("floor"))
	objectNumber := q.Get("object_number")
	unitType := q.Get("type")

	if err1 != nil || err2 != nil || err3 != nil || objectNumber == "" || unitType == "" {
		return models.UnitIdentity{}, false
	}
	return models.UnitIdentity{
		BuildingID:   buildingID,
		ClientID:     clientID,
		ObjectNumber: objectNumber,
		Type:         models.UnitType(unitType),
		Floor:        floor,
	}, true
}

type historyResponse struct {
	History     []models.FeeRecord `json:"history"`
	Outstanding decimal.Decimal    `json:"outstanding"`
	Status      models.FeeStatus   `json:"status"`
}

// GetHistory returns a unit's ordered fee history, its outstanding balance
// and derived status.
// GET /api/settlements/history?building_id=&client_id=&object_number=&type=&floor=
func (h *SettlementHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := identityFromQuery(r)
	if !ok {
		http.Error(w, "Missing or invalid unit identity parameters", http.StatusBadRequest)
		return
	}

	key := cache.FeeHistoryKey(identity.BuildingID, identity.ClientID, identity.ObjectNumber, string(identity.Type), identity.Floor)
	if data, ok := cache.GetCached(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	history, outstanding, err := h.Service.History(ctx, identity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	month, year := timeutil.CurrentPeriod()
	resp := historyResponse{
		History:     history,
		Outstanding: outstanding,
		Status:      h.Service.DeriveStatus(history, month, year),
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.SetCached(ctx, key, payload, feeHistoryCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

type payCurrentRequest struct {
	RecordID   int             `json:"record_id"`
	BuildingID int             `json:"building_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// PayCurrentPeriod applies a payment against one period's row.
// POST /api/settlements/pay-current
func (h *SettlementHandler) PayCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req payCurrentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.RecordID <= 0 || req.BuildingID <= 0 {
		http.Error(w, "record_id and building_id are required", http.StatusBadRequest)
		return
	}

	result, err := h.Service.PayCurrentPeriod(ctx, req.RecordID, req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrNonPositiveAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !result.NothingToPay {
		metrics.PaymentsApplied.WithLabelValues("current").Inc()
		cache.InvalidateFeeCaches(ctx, req.BuildingID)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

type settleAllRequest struct {
	BuildingID   int    `json:"building_id"`
	ClientID     int    `json:"client_id"`
	ObjectNumber string `json:"object_number"`
	Type         string `json:"type"`
	Floor        int    `json:"floor"`
	ThroughMonth int    `json:"through_month"`
	ThroughYear  int    `json:"through_year"`
}

// SettleAll zeroes a unit's arrears through the reference period.
// POST /api/settlements/pay-all
func (h *SettlementHandler) SettleAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req settleAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.BuildingID <= 0 || req.ObjectNumber == "" || req.Type == "" {
		http.Error(w, "Missing unit identity fields", http.StatusBadRequest)
		return
	}
	if req.ThroughMonth == 0 && req.ThroughYear == 0 {
		req.ThroughMonth, req.ThroughYear = timeutil.CurrentPeriod()
	}
	if req.ThroughMonth < 1 || req.ThroughMonth > 12 || req.ThroughYear == 0 {
		http.Error(w, "Invalid reference period", http.StatusBadRequest)
		return
	}

	identity := models.UnitIdentity{
		BuildingID:   req.BuildingID,
		ClientID:     req.ClientID,
		ObjectNumber: req.ObjectNumber,
		Type:         models.UnitType(req.Type),
		Floor:        req.Floor,
	}

	if err := h.Service.PayAllOutstanding(ctx, identity, req.ThroughYear, req.ThroughMonth); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	metrics.PaymentsApplied.WithLabelValues("settle_all").Inc()
	cache.InvalidateFeeCaches(ctx, req.BuildingID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "settled"})
}
