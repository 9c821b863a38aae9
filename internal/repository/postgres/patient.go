package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
)

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (patient_code, name, age, gender, blood_group, phone,
		                      address, emergency_contact, medical_history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	return r.db.QueryRowxContext(ctx, query,
		patient.PatientCode,
		patient.Name,
		patient.Age,
		patient.Gender,
		patient.BloodGroup,
		patient.Phone,
		patient.Address,
		patient.EmergencyContact,
		patient.MedicalHistory,
		patient.CreatedAt,
		patient.UpdatedAt,
	).Scan(&patient.ID)
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, age = $2, gender = $3, blood_group = $4, phone = $5,
		    address = $6, emergency_contact = $7, medical_history = $8, updated_at = $9
		WHERE id = $10
	`
	patient.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		patient.Name,
		patient.Age,
		patient.Gender,
		patient.BloodGroup,
		patient.Phone,
		patient.Address,
		patient.EmergencyContact,
		patient.MedicalHistory,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM patients WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *patientRepository) List(ctx context.Context, filter *model.PatientFilter) ([]*model.Patient, error) {
	query := `SELECT * FROM patients WHERE 1=1`
	args := []interface{}{}

	if filter.SearchTerm != "" {
		args = append(args, "%"+filter.SearchTerm+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (name ILIKE $%d OR patient_code ILIKE $%d OR phone ILIKE $%d)", n, n, n)
	}

	filter.Normalize()
	args = append(args, filter.PageSize, filter.Offset())
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	query := `SELECT COUNT(*) FROM patients WHERE EXTRACT(YEAR FROM created_at) = $1`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, year); err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

func (r *patientRepository) HasDependents(ctx context.Context, id int64) (bool, error) {
	query := `
		SELECT EXISTS(SELECT 1 FROM appointments WHERE patient_id = $1)
		    OR EXISTS(SELECT 1 FROM admissions WHERE patient_id = $1)
		    OR EXISTS(SELECT 1 FROM prescriptions WHERE patient_id = $1)
		    OR EXISTS(SELECT 1 FROM lab_tests WHERE patient_id = $1)
		    OR EXISTS(SELECT 1 FROM bills WHERE patient_id = $1)
	`
	var has bool
	if err := r.db.GetContext(ctx, &has, query, id); err != nil {
		return false, fmt.Errorf("failed to check patient dependents: %w", err)
	}
	return has, nil
}
