package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/handlers"
)

func NewRouter(
	feeHandler *handlers.FeeHandler,
	settlementHandler *handlers.SettlementHandler,
	expenseHandler *handlers.ExpenseHandler,
	feeSettingHandler *handlers.FeeSettingHandler,
	buildingHandler *handlers.BuildingHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Fee generation and period views
	feesAPI := r.PathPrefix("/api/fees").Subrouter()
	feesAPI.HandleFunc("/generate", feeHandler.GenerateFees).Methods("POST")
	feesAPI.HandleFunc("/{building_id}", feeHandler.ListFeesForPeriod).Methods("GET")

	// Settlement: per-unit history and payments
	settlementsAPI := r.PathPrefix("/api/settlements").Subrouter()
	settlementsAPI.HandleFunc("/history", settlementHandler.GetHistory).Methods("GET")
	settlementsAPI.HandleFunc("/pay-current", settlementHandler.PayCurrentPeriod).Methods("POST")
	settlementsAPI.HandleFunc("/pay-all", settlementHandler.SettleAll).Methods("POST")

	// Expense entry
	expensesAPI := r.PathPrefix("/api/expenses").Subrouter()
	expensesAPI.HandleFunc("", expenseHandler.CreateExpense).Methods("POST")
	expensesAPI.HandleFunc("/{building_id}", expenseHandler.ListExpenses).Methods("GET")
	expensesAPI.HandleFunc("/{id}", expenseHandler.DeleteExpense).Methods("DELETE")

	// Building fee settings
	settingsAPI := r.PathPrefix("/api/fee-settings").Subrouter()
	settingsAPI.HandleFunc("", feeSettingHandler.UpsertSetting).Methods("PUT")
	settingsAPI.HandleFunc("/{building_id}", feeSettingHandler.ListSettings).Methods("GET")

	// Buildings and the merged unit view
	buildingsAPI := r.PathPrefix("/api/buildings").Subrouter()
	buildingsAPI.HandleFunc("", buildingHandler.ListBuildings).Methods("GET")
	buildingsAPI.HandleFunc("/{id}", buildingHandler.GetBuilding).Methods("GET")
	buildingsAPI.HandleFunc("/{id}/units", buildingHandler.ListUnits).Methods("GET")

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
