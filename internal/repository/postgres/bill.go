package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
)

type billRepository struct {
	db *sqlx.DB
}

func NewBillRepository(db *sqlx.DB) repository.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) CreateWithItems(ctx context.Context, bill *model.Bill, items []*model.BillItem) error {
	bill.CreatedAt = time.Now()
	bill.UpdatedAt = bill.CreatedAt

	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO bills (patient_id, admission_id, total_amount, tax_amount,
			                   status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		err := tx.QueryRowxContext(ctx, query,
			bill.PatientID,
			bill.AdmissionID,
			bill.TotalAmount,
			bill.TaxAmount,
			bill.Status,
			bill.CreatedAt,
			bill.UpdatedAt,
		).Scan(&bill.ID)
		if err != nil {
			return fmt.Errorf("failed to create bill: %w", err)
		}

		return insertBillItems(ctx, tx, bill.ID, items)
	})
}

func (r *billRepository) ReplaceWithItems(ctx context.Context, bill *model.Bill, items []*model.BillItem) error {
	bill.UpdatedAt = time.Now()

	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE bills
			SET patient_id = $1, admission_id = $2, total_amount = $3,
			    tax_amount = $4, updated_at = $5
			WHERE id = $6
		`
		_, err := tx.ExecContext(ctx, query,
			bill.PatientID,
			bill.AdmissionID,
			bill.TotalAmount,
			bill.TaxAmount,
			bill.UpdatedAt,
			bill.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM bill_items WHERE bill_id = $1`, bill.ID); err != nil {
			return fmt.Errorf("failed to clear bill items: %w", err)
		}

		return insertBillItems(ctx, tx, bill.ID, items)
	})
}

func insertBillItems(ctx context.Context, tx *sqlx.Tx, billID int64, items []*model.BillItem) error {
	query := `
		INSERT INTO bill_items (bill_id, description, amount)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	for _, item := range items {
		item.BillID = billID
		err := tx.QueryRowxContext(ctx, query,
			item.BillID,
			item.Description,
			item.Amount,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create bill item: %w", err)
		}
	}
	return nil
}

func (r *billRepository) Get(ctx context.Context, id int64) (*model.Bill, error) {
	query := `SELECT * FROM bills WHERE id = $1`
	var bill model.Bill
	if err := r.db.GetContext(ctx, &bill, query, id); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) GetItems(ctx context.Context, billID int64) ([]*model.BillItem, error) {
	query := `SELECT * FROM bill_items WHERE bill_id = $1 ORDER BY id`
	var items []*model.BillItem
	if err := r.db.SelectContext(ctx, &items, query, billID); err != nil {
		return nil, fmt.Errorf("failed to get bill items: %w", err)
	}
	return items, nil
}

func (r *billRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bills SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update bill status: %w", err)
	}
	return nil
}

func (r *billRepository) Delete(ctx context.Context, id int64) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM bill_items WHERE bill_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete bill items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM bills WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete bill: %w", err)
		}
		return nil
	})
}

func (r *billRepository) List(ctx context.Context, filter *model.BillFilter) ([]*model.BillDetail, error) {
	query := `
		SELECT b.*, p.name AS patient_name, p.patient_code
		FROM bills b
		JOIN patients p ON p.id = b.patient_id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND b.status = $%d", len(args))
	}
	if filter.PatientID != 0 {
		args = append(args, filter.PatientID)
		query += fmt.Sprintf(" AND b.patient_id = $%d", len(args))
	}

	filter.Normalize()
	args = append(args, filter.PageSize, filter.Offset())
	query += fmt.Sprintf(" ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var bills []*model.BillDetail
	if err := r.db.SelectContext(ctx, &bills, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}
