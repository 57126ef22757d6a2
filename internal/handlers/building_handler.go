package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/cache"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/repositories"
)

type BuildingHandler struct {
	Buildings *repositories.BuildingRepository
	Units     *repositories.UnitRepository
}

func NewBuildingHandler(buildings *repositories.BuildingRepository, units *repositories.UnitRepository) *BuildingHandler {
	return &BuildingHandler{Buildings: buildings, Units: units}
}

// ListBuildings returns all managed buildings.
// GET /api/buildings
func (h *BuildingHandler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := h.Buildings.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(buildings)
}

// GetBuilding returns one building by id.
// GET /api/buildings/{id}
func (h *BuildingHandler) GetBuilding(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid building ID", http.StatusBadRequest)
		return
	}

	building, err := h.Buildings.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Building not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(building)
}

// ListUnits returns the merged occupancy view of a building, spanning
// apartments, offices, garages and retail spaces.
// GET /api/buildings/{id}/units
func (h *BuildingHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid building ID", http.StatusBadRequest)
		return
	}

	cacheKey := cache.UnitsKey(id)
	if data, found := cache.GetCached(ctx, cacheKey); found {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(data)
		return
	}

	units, err := h.Units.ListByBuilding(ctx, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(units)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.SetCached(ctx, cacheKey, payload, 10*time.Minute)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(payload)
}
