package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
)

type admissionRepository struct {
	db *sqlx.DB
}

func NewAdmissionRepository(db *sqlx.DB) repository.AdmissionRepository {
	return &admissionRepository{db: db}
}

func (r *admissionRepository) Create(ctx context.Context, admission *model.Admission) error {
	query := `
		INSERT INTO admissions (patient_id, doctor_id, ward_id, bed_number, admission_date,
		                        diagnosis, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	admission.CreatedAt = time.Now()
	admission.UpdatedAt = admission.CreatedAt

	err := r.db.QueryRowxContext(ctx, query,
		admission.PatientID,
		admission.DoctorID,
		admission.WardID,
		admission.BedNumber,
		admission.AdmissionDate,
		admission.Diagnosis,
		admission.Notes,
		admission.Status,
		admission.CreatedAt,
		admission.UpdatedAt,
	).Scan(&admission.ID)
	if err != nil {
		return fmt.Errorf("failed to create admission: %w", err)
	}
	return nil
}

func (r *admissionRepository) Get(ctx context.Context, id int64) (*model.Admission, error) {
	query := `SELECT * FROM admissions WHERE id = $1`
	var admission model.Admission
	if err := r.db.GetContext(ctx, &admission, query, id); err != nil {
		return nil, err
	}
	return &admission, nil
}

func (r *admissionRepository) Update(ctx context.Context, admission *model.Admission) error {
	query := `
		UPDATE admissions
		SET doctor_id = $1, ward_id = $2, bed_number = $3, diagnosis = $4, notes = $5, updated_at = $6
		WHERE id = $7
	`
	admission.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		admission.DoctorID,
		admission.WardID,
		admission.BedNumber,
		admission.Diagnosis,
		admission.Notes,
		admission.UpdatedAt,
		admission.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update admission: %w", err)
	}
	return nil
}

func (r *admissionRepository) UpdateNotes(ctx context.Context, id int64, notes string) error {
	query := `UPDATE admissions SET notes = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, notes, time.Now(), id)
	return err
}

// Discharge is status-guarded so a repeated discharge can never restamp
// the discharge date.
func (r *admissionRepository) Discharge(ctx context.Context, id int64, dischargedAt time.Time) (int64, error) {
	query := `
		UPDATE admissions
		SET status = $1, discharge_date = $2, updated_at = $3
		WHERE id = $4 AND status = $5
	`
	res, err := r.db.ExecContext(ctx, query,
		model.AdmissionStatusDischarged,
		dischargedAt,
		time.Now(),
		id,
		model.AdmissionStatusAdmitted,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to discharge admission: %w", err)
	}
	return res.RowsAffected()
}

func (r *admissionRepository) List(ctx context.Context, filter *model.AdmissionFilter) ([]*model.AdmissionDetail, error) {
	query := `
		SELECT ad.*, p.name AS patient_name, p.patient_code, w.ward_name, u.name AS doctor_name
		FROM admissions ad
		JOIN patients p ON ad.patient_id = p.id
		JOIN wards w ON ad.ward_id = w.id
		JOIN users u ON ad.doctor_id = u.id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND ad.status = $%d", len(args))
	}
	if filter.WardID != 0 {
		args = append(args, filter.WardID)
		query += fmt.Sprintf(" AND ad.ward_id = $%d", len(args))
	}

	filter.Normalize()
	args = append(args, filter.PageSize, filter.Offset())
	query += fmt.Sprintf(" ORDER BY ad.admission_date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var admissions []*model.AdmissionDetail
	if err := r.db.SelectContext(ctx, &admissions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list admissions: %w", err)
	}
	return admissions, nil
}

func (r *admissionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Admission, error) {
	query := `SELECT * FROM admissions WHERE patient_id = $1 ORDER BY admission_date DESC`
	var admissions []*model.Admission
	if err := r.db.SelectContext(ctx, &admissions, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient admissions: %w", err)
	}
	return admissions, nil
}
