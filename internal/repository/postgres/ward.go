package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
)

type wardRepository struct {
	db *sqlx.DB
}

func NewWardRepository(db *sqlx.DB) repository.WardRepository {
	return &wardRepository{db: db}
}

func (r *wardRepository) Create(ctx context.Context, ward *model.Ward) error {
	query := `
		INSERT INTO wards (ward_name, total_beds, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	ward.CreatedAt = time.Now()
	ward.UpdatedAt = ward.CreatedAt

	err := r.db.QueryRowxContext(ctx, query,
		ward.WardName,
		ward.TotalBeds,
		ward.CreatedAt,
		ward.UpdatedAt,
	).Scan(&ward.ID)
	if err != nil {
		return fmt.Errorf("failed to create ward: %w", err)
	}
	return nil
}

func (r *wardRepository) Get(ctx context.Context, id int64) (*model.Ward, error) {
	query := `SELECT * FROM wards WHERE id = $1`
	var ward model.Ward
	if err := r.db.GetContext(ctx, &ward, query, id); err != nil {
		return nil, err
	}
	return &ward, nil
}

func (r *wardRepository) Update(ctx context.Context, ward *model.Ward) error {
	query := `UPDATE wards SET ward_name = $1, total_beds = $2, updated_at = $3 WHERE id = $4`
	ward.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, ward.WardName, ward.TotalBeds, ward.UpdatedAt, ward.ID)
	if err != nil {
		return fmt.Errorf("failed to update ward: %w", err)
	}
	return nil
}

func (r *wardRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM wards WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *wardRepository) ListWithOccupancy(ctx context.Context) ([]*model.WardOccupancy, error) {
	query := `
		SELECT w.*,
		       COALESCE((SELECT COUNT(*) FROM admissions
		                 WHERE ward_id = w.id AND status = 'admitted'), 0) AS occupied_beds
		FROM wards w
		ORDER BY w.ward_name
	`
	var wards []*model.WardOccupancy
	if err := r.db.SelectContext(ctx, &wards, query); err != nil {
		return nil, fmt.Errorf("failed to list wards: %w", err)
	}
	return wards, nil
}

func (r *wardRepository) OccupiedBeds(ctx context.Context, wardID int64) (int, error) {
	query := `SELECT COUNT(*) FROM admissions WHERE ward_id = $1 AND status = 'admitted'`
	var occupied int
	if err := r.db.GetContext(ctx, &occupied, query, wardID); err != nil {
		return 0, fmt.Errorf("failed to count occupied beds: %w", err)
	}
	return occupied, nil
}
