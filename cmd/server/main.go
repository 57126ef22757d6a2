package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/cache"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/config"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/database"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/db"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/handlers"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/health"
	h "github.com/GeorgiM13/professional-house-manager-sub000/internal/http"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/middleware"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/repositories"
	"github.com/GeorgiM13/professional-house-manager-sub000/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional, period and history lookups fall back to Postgres
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (lookups go straight to Postgres)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)

	// Repositories
	buildingRepo := repositories.NewBuildingRepository(pool)
	unitRepo := repositories.NewUnitRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	feeSettingRepo := repositories.NewFeeSettingRepository(pool)
	feeRecordRepo := repositories.NewFeeRecordRepository(pool)

	// Services
	generationService := services.NewFeeGenerationService(buildingRepo, expenseRepo, unitRepo, feeSettingRepo, feeRecordRepo)
	settlementService := services.NewSettlementService(feeRecordRepo)

	// Handlers
	feeHandler := handlers.NewFeeHandler(generationService, feeRecordRepo)
	settlementHandler := handlers.NewSettlementHandler(settlementService)
	expenseHandler := handlers.NewExpenseHandler(expenseRepo)
	feeSettingHandler := handlers.NewFeeSettingHandler(feeSettingRepo)
	buildingHandler := handlers.NewBuildingHandler(buildingRepo, unitRepo)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		feeHandler,
		settlementHandler,
		expenseHandler,
		feeSettingHandler,
		buildingHandler,
		healthHandler,
	)

	corsWrapper := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsWrapper(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("House manager fee service listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
