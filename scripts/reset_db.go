package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Fee Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("⚠️  WARNING: This will DELETE ALL BILLING DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all fee records")
	fmt.Println("  - Delete all expenses")
	fmt.Println("  - Delete all fee settings")
	fmt.Println("  - Delete all units and buildings")
	fmt.Println("  - Reset all ID sequences")
	fmt.Println("  - Seed one demo building with units and rates")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "house_manager")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	statements := []string{
		"DELETE FROM fee_records",
		"DELETE FROM expenses",
		"DELETE FROM fee_settings",
		"DELETE FROM apartments",
		"DELETE FROM offices",
		"DELETE FROM garages",
		"DELETE FROM retail_spaces",
		"DELETE FROM clients",
		"DELETE FROM buildings",
		"ALTER SEQUENCE fee_records_id_seq RESTART WITH 1",
		"ALTER SEQUENCE expenses_id_seq RESTART WITH 1",
		"ALTER SEQUENCE fee_settings_id_seq RESTART WITH 1",
		"ALTER SEQUENCE apartments_id_seq RESTART WITH 1",
		"ALTER SEQUENCE offices_id_seq RESTART WITH 1",
		"ALTER SEQUENCE garages_id_seq RESTART WITH 1",
		"ALTER SEQUENCE retail_spaces_id_seq RESTART WITH 1",
		"ALTER SEQUENCE clients_id_seq RESTART WITH 1",
		"ALTER SEQUENCE buildings_id_seq RESTART WITH 1",
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("Failed to execute %q: %v", stmt, err)
		}
	}
	fmt.Println("✓ All billing data deleted")

	seed := []string{
		`INSERT INTO buildings (name, address, fee_algorithm)
		 VALUES ('Demo Building', '12 Vitosha Blvd, Sofia', 'proportional')`,
		`INSERT INTO clients (name, email) VALUES
		 ('Ivan Petrov', 'ivan@example.com'),
		 ('Maria Georgieva', 'maria@example.com')`,
		`INSERT INTO apartments (building_id, client_id, object_number, floor, area) VALUES
		 (1, 1, 'A1', 1, 50.00),
		 (1, 2, 'A2', 2, 100.00)`,
		`INSERT INTO garages (building_id, client_id, object_number, floor, area) VALUES
		 (1, 1, 'G1', -1, 18.00)`,
		`INSERT INTO fee_settings (building_id, setting_key, setting_value) VALUES
		 (1, 'management_fee_m2', 1.00),
		 (1, 'fixed_fee', 25.00),
		 (1, 'fixed_fee_garage', 10.00)`,
		`INSERT INTO expenses (building_id, month, year, amount, category) VALUES
		 (1, 1, 2026, 200.00, 'electricity'),
		 (1, 1, 2026, 100.00, 'cleaning')`,
	}

	for _, stmt := range seed {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}
	fmt.Println("✓ Demo building seeded")
	fmt.Println()
	fmt.Println("Database reset complete.")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
