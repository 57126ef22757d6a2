package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/cache"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/repositories"
)

type ExpenseHandler struct {
	Repo *repositories.ExpenseRepository
}

func NewExpenseHandler(repo *repositories.ExpenseRepository) *ExpenseHandler {
	return &ExpenseHandler{Repo: repo}
}

// CreateExpense records a building-level cost for a billing period.
// POST /api/expenses
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.BuildingID <= 0 || req.Month < 1 || req.Month > 12 || req.Year == 0 {
		http.Error(w, "Missing required fields: building_id, month, year", http.StatusBadRequest)
		return
	}
	if !req.Amount.IsPositive() {
		http.Error(w, "Expense amount must be positive", http.StatusBadRequest)
		return
	}

	expense, err := h.Repo.Create(ctx, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// New expenses change what the next generation run will compute
	cache.InvalidateFeeCaches(ctx, req.BuildingID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(expense)
}

// ListExpenses returns the expenses recorded for one building period.
// GET /api/expenses/{building_id}?month=&year=
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	buildingID, err := strconv.Atoi(vars["building_id"])
	if err != nil {
		http.Error(w, "Invalid building ID", http.StatusBadRequest)
		return
	}

	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if month < 1 || month > 12 || year == 0 {
		http.Error(w, "Invalid period", http.StatusBadRequest)
		return
	}

	expenses, err := h.Repo.ListForPeriod(r.Context(), buildingID, month, year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expenses)
}

// DeleteExpense removes a mistakenly entered expense.
// DELETE /api/expenses/{id}?building_id=
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid expense ID", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(ctx, id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if buildingID, err := strconv.Atoi(r.URL.Query().Get("building_id")); err == nil {
		cache.InvalidateFeeCaches(ctx, buildingID)
	}

	w.WriteHeader(http.StatusNoContent)
}
