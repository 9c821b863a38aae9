package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
)

type prescriptionRepository struct {
	db *sqlx.DB
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) CreateWithItems(ctx context.Context, prescription *model.Prescription, items []*model.PrescriptionItem) error {
	prescription.CreatedAt = time.Now()
	prescription.UpdatedAt = prescription.CreatedAt

	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO prescriptions (patient_id, doctor_id, visit_date, symptoms, diagnosis,
			                           advice, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		err := tx.QueryRowxContext(ctx, query,
			prescription.PatientID,
			prescription.DoctorID,
			prescription.VisitDate,
			prescription.Symptoms,
			prescription.Diagnosis,
			prescription.Advice,
			prescription.Status,
			prescription.CreatedAt,
			prescription.UpdatedAt,
		).Scan(&prescription.ID)
		if err != nil {
			return fmt.Errorf("failed to create prescription: %w", err)
		}

		itemQuery := `
			INSERT INTO prescription_items (prescription_id, medicine_name, dosage, frequency, duration)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		for _, item := range items {
			item.PrescriptionID = prescription.ID
			if err := tx.QueryRowxContext(ctx, itemQuery,
				item.PrescriptionID,
				item.MedicineName,
				item.Dosage,
				item.Frequency,
				item.Duration,
			).Scan(&item.ID); err != nil {
				return fmt.Errorf("failed to create prescription item: %w", err)
			}
		}
		return nil
	})
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	query := `SELECT * FROM prescriptions WHERE id = $1`
	var prescription model.Prescription
	if err := r.db.GetContext(ctx, &prescription, query, id); err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) GetItems(ctx context.Context, prescriptionID int64) ([]*model.PrescriptionItem, error) {
	query := `SELECT * FROM prescription_items WHERE prescription_id = $1 ORDER BY id`
	var items []*model.PrescriptionItem
	if err := r.db.SelectContext(ctx, &items, query, prescriptionID); err != nil {
		return nil, fmt.Errorf("failed to get prescription items: %w", err)
	}
	return items, nil
}

// Dispense is status-guarded; a dispensed prescription cannot be
// dispensed again.
func (r *prescriptionRepository) Dispense(ctx context.Context, id int64) (int64, error) {
	query := `
		UPDATE prescriptions
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query,
		model.PrescriptionStatusDispensed,
		time.Now(),
		id,
		model.PrescriptionStatusPending,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to dispense prescription: %w", err)
	}
	return res.RowsAffected()
}

func (r *prescriptionRepository) List(ctx context.Context, filter *model.PrescriptionFilter) ([]*model.PrescriptionDetail, error) {
	query := `
		SELECT pr.*, p.name AS patient_name, p.patient_code, u.name AS doctor_name
		FROM prescriptions pr
		JOIN patients p ON pr.patient_id = p.id
		JOIN users u ON pr.doctor_id = u.id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND pr.status = $%d", len(args))
	}
	if filter.DoctorID != 0 {
		args = append(args, filter.DoctorID)
		query += fmt.Sprintf(" AND pr.doctor_id = $%d", len(args))
	}

	filter.Normalize()
	args = append(args, filter.PageSize, filter.Offset())
	query += fmt.Sprintf(" ORDER BY pr.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var prescriptions []*model.PrescriptionDetail
	if err := r.db.SelectContext(ctx, &prescriptions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	query := `SELECT * FROM prescriptions WHERE patient_id = $1 ORDER BY visit_date DESC`
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient prescriptions: %w", err)
	}
	return prescriptions, nil
}
