package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
)

type labTestRepository struct {
	db *sqlx.DB
}

func NewLabTestRepository(db *sqlx.DB) repository.LabTestRepository {
	return &labTestRepository{db: db}
}

func (r *labTestRepository) Create(ctx context.Context, test *model.LabTest) error {
	query := `
		INSERT INTO lab_tests (patient_id, doctor_id, test_name, requested_date, status,
		                       result, report_file, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	test.CreatedAt = time.Now()
	test.UpdatedAt = test.CreatedAt

	err := r.db.QueryRowxContext(ctx, query,
		test.PatientID,
		test.DoctorID,
		test.TestName,
		test.RequestedDate,
		test.Status,
		test.Result,
		test.ReportFile,
		test.CreatedAt,
		test.UpdatedAt,
	).Scan(&test.ID)
	if err != nil {
		return fmt.Errorf("failed to create lab test: %w", err)
	}
	return nil
}

func (r *labTestRepository) Get(ctx context.Context, id int64) (*model.LabTest, error) {
	query := `SELECT * FROM lab_tests WHERE id = $1`
	var test model.LabTest
	if err := r.db.GetContext(ctx, &test, query, id); err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *labTestRepository) UpdateResult(ctx context.Context, test *model.LabTest) error {
	query := `
		UPDATE lab_tests
		SET status = $1, result = $2, report_file = $3, result_date = $4, updated_at = $5
		WHERE id = $6
	`
	test.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		test.Status,
		test.Result,
		test.ReportFile,
		test.ResultDate,
		test.UpdatedAt,
		test.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lab test: %w", err)
	}
	return nil
}

func (r *labTestRepository) List(ctx context.Context, filter *model.LabTestFilter) ([]*model.LabTestDetail, error) {
	query := `
		SELECT lt.*, p.name AS patient_name, p.patient_code, u.name AS doctor_name
		FROM lab_tests lt
		JOIN patients p ON lt.patient_id = p.id
		JOIN users u ON lt.doctor_id = u.id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND lt.status = $%d", len(args))
	}
	if filter.DoctorID != 0 {
		args = append(args, filter.DoctorID)
		query += fmt.Sprintf(" AND lt.doctor_id = $%d", len(args))
	}

	filter.Normalize()
	args = append(args, filter.PageSize, filter.Offset())
	query += fmt.Sprintf(" ORDER BY lt.requested_date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var tests []*model.LabTestDetail
	if err := r.db.SelectContext(ctx, &tests, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list lab tests: %w", err)
	}
	return tests, nil
}

func (r *labTestRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.LabTest, error) {
	query := `SELECT * FROM lab_tests WHERE patient_id = $1 ORDER BY requested_date DESC`
	var tests []*model.LabTest
	if err := r.db.SelectContext(ctx, &tests, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient lab tests: %w", err)
	}
	return tests, nil
}
