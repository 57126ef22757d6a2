package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
)

// BuildingRepository reads building rows. Buildings are managed by the
// building administration screens; the fee core only reads them.
type BuildingRepository struct {
	DB *pgxpool.Pool
}

func NewBuildingRepository(db *pgxpool.Pool) *BuildingRepository {
	return &BuildingRepository{DB: db}
}

func (r *BuildingRepository) GetByID(ctx context.Context, id int) (*models.Building, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), COALESCE(fee_algorithm, ''), created_at
		FROM buildings
		WHERE id = $1
	`

	b := &models.Building{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Name,
		&b.Address,
		&b.FeeAlgorithm,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get building %d: %w", id, err)
	}

	return b, nil
}

func (r *BuildingRepository) List(ctx context.Context) ([]*models.Building, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), COALESCE(fee_algorithm, ''), created_at
		FROM buildings
		ORDER BY name
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []*models.Building
	for rows.Next() {
		b := &models.Building{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.FeeAlgorithm, &b.CreatedAt); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}

	return buildings, nil
}
