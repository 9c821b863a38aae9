package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return n, nil
}

func (r *statsRepository) CountPatients(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM patients`)
}

func (r *statsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *statsRepository) CountAppointmentsOn(ctx context.Context, date time.Time, doctorID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM appointments WHERE appointment_date = $1`
	args := []interface{}{date.Format("2006-01-02")}
	if doctorID != 0 {
		args = append(args, doctorID)
		query += fmt.Sprintf(" AND doctor_id = $%d", len(args))
	}
	return r.count(ctx, query, args...)
}

func (r *statsRepository) CountActiveAdmissions(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM admissions WHERE status = $1`, model.AdmissionStatusAdmitted)
}

func (r *statsRepository) CountLabTestsByStatus(ctx context.Context, status string, doctorID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM lab_tests WHERE status = $1`
	args := []interface{}{status}
	if doctorID != 0 {
		args = append(args, doctorID)
		query += fmt.Sprintf(" AND doctor_id = $%d", len(args))
	}
	return r.count(ctx, query, args...)
}

func (r *statsRepository) CountPrescriptionsByStatus(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM prescriptions WHERE status = $1`, status)
}

func (r *statsRepository) CountLowStockMedicines(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM medicines WHERE quantity < $1`, model.LowStockThreshold)
}

func (r *statsRepository) CountExpiringMedicines(ctx context.Context, within time.Duration) (int64, error) {
	cutoff := time.Now().Add(within)
	return r.count(ctx,
		`SELECT COUNT(*) FROM medicines WHERE expiry_date IS NOT NULL AND expiry_date <= $1`,
		cutoff)
}

func (r *statsRepository) CountBillsByStatus(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM bills WHERE status = $1`, status)
}

func (r *statsRepository) BedTotals(ctx context.Context) (int64, int64, error) {
	var totals struct {
		Occupied int64 `db:"occupied"`
		Total    int64 `db:"total"`
	}
	query := `
		SELECT
			COALESCE((SELECT COUNT(*) FROM admissions WHERE status = 'admitted'), 0) AS occupied,
			COALESCE((SELECT SUM(total_beds) FROM wards), 0) AS total
	`
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return 0, 0, fmt.Errorf("failed to get bed totals: %w", err)
	}
	return totals.Occupied, totals.Total, nil
}
