package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
)

type medicineRepository struct {
	db *sqlx.DB
}

func NewMedicineRepository(db *sqlx.DB) repository.MedicineRepository {
	return &medicineRepository{db: db}
}

func (r *medicineRepository) Create(ctx context.Context, medicine *model.Medicine) error {
	query := `
		INSERT INTO medicines (name, batch_no, quantity, expiry_date, purchase_price,
		                       selling_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	medicine.CreatedAt = time.Now()
	medicine.UpdatedAt = medicine.CreatedAt

	err := r.db.QueryRowxContext(ctx, query,
		medicine.Name,
		medicine.BatchNo,
		medicine.Quantity,
		medicine.ExpiryDate,
		medicine.PurchasePrice,
		medicine.SellingPrice,
		medicine.CreatedAt,
		medicine.UpdatedAt,
	).Scan(&medicine.ID)
	if err != nil {
		return fmt.Errorf("failed to create medicine: %w", err)
	}
	return nil
}

func (r *medicineRepository) Get(ctx context.Context, id int64) (*model.Medicine, error) {
	query := `SELECT * FROM medicines WHERE id = $1`
	var medicine model.Medicine
	if err := r.db.GetContext(ctx, &medicine, query, id); err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *medicineRepository) Update(ctx context.Context, medicine *model.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $1, batch_no = $2, quantity = $3, expiry_date = $4,
		    purchase_price = $5, selling_price = $6, updated_at = $7
		WHERE id = $8
	`
	medicine.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		medicine.Name,
		medicine.BatchNo,
		medicine.Quantity,
		medicine.ExpiryDate,
		medicine.PurchasePrice,
		medicine.SellingPrice,
		medicine.UpdatedAt,
		medicine.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medicine: %w", err)
	}
	return nil
}

func (r *medicineRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM medicines WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *medicineRepository) List(ctx context.Context, filter *model.MedicineFilter) ([]*model.Medicine, error) {
	query := `SELECT * FROM medicines WHERE 1=1`
	args := []interface{}{}

	if filter.SearchTerm != "" {
		args = append(args, "%"+filter.SearchTerm+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (name ILIKE $%d OR batch_no ILIKE $%d)", n, n)
	}

	filter.Normalize()
	args = append(args, filter.PageSize, filter.Offset())
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var medicines []*model.Medicine
	if err := r.db.SelectContext(ctx, &medicines, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return medicines, nil
}
