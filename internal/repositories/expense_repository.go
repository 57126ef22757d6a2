package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
)

type ExpenseRepository struct {
	DB *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, req *models.CreateExpenseRequest) (*models.Expense, error) {
	query := `
		INSERT INTO expenses (building_id, month, year, amount, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	e := &models.Expense{
		BuildingID: req.BuildingID,
		Month:      req.Month,
		Year:       req.Year,
		Amount:     req.Amount,
		Category:   req.Category,
	}
	err := r.DB.QueryRow(ctx, query,
		req.BuildingID, req.Month, req.Year, req.Amount.String(), req.Category,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return e, nil
}

func (r *ExpenseRepository) ListForPeriod(ctx context.Context, buildingID, month, year int) ([]models.Expense, error) {
	query := `
		SELECT id, building_id, month, year, amount::text, COALESCE(category, ''), created_at
		FROM expenses
		WHERE building_id = $1 AND month = $2 AND year = $3
		ORDER BY id
	`

	rows, err := r.DB.Query(ctx, query, buildingID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var amount string
		if err := rows.Scan(&e.ID, &e.BuildingID, &e.Month, &e.Year, &amount, &e.Category, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid expense amount %q: %w", amount, err)
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM expenses WHERE id = $1", id)
	return err
}
