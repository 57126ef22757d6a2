package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/cache"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/repositories"
	"github.com/GeorgiM13/professional-house-manager-sub000/pkg/utils"
)

type FeeSettingHandler struct {
	Repo *repositories.FeeSettingRepository
}

func NewFeeSettingHandler(repo *repositories.FeeSettingRepository) *FeeSettingHandler {
	return &FeeSettingHandler{Repo: repo}
}

// ListSettings returns every fee setting configured for a building.
// GET /api/fee-settings/{building_id}
func (h *FeeSettingHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	buildingID, err := strconv.Atoi(vars["building_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid building ID")
		return
	}

	settings, err := h.Repo.ListByBuilding(r.Context(), buildingID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, settings)
}

// UpsertSetting creates or replaces a single building rate.
// PUT /api/fee-settings
func (h *FeeSettingHandler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.UpsertFeeSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BuildingID <= 0 || req.SettingKey == "" {
		utils.Error(w, http.StatusBadRequest, "Missing required fields: building_id, setting_key")
		return
	}
	if req.SettingValue.IsNegative() {
		utils.Error(w, http.StatusBadRequest, "Setting value cannot be negative")
		return
	}

	if err := h.Repo.Upsert(ctx, req.BuildingID, req.SettingKey, req.SettingValue); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	cache.InvalidateSettingCaches(ctx, req.BuildingID)

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"building_id":   req.BuildingID,
		"setting_key":   req.SettingKey,
		"setting_value": req.SettingValue,
	})
}
