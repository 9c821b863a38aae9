package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

type fakeStatsRepo struct {
	repository.StatsRepository
	labDoctorID  int64
	apptDoctorID int64
}

func (f *fakeStatsRepo) CountPatients(ctx context.Context) (int64, error) { return 120, nil }
func (f *fakeStatsRepo) CountUsers(ctx context.Context) (int64, error)   { return 18, nil }

func (f *fakeStatsRepo) CountAppointmentsOn(ctx context.Context, date time.Time, doctorID int64) (int64, error) {
	f.apptDoctorID = doctorID
	return 7, nil
}

func (f *fakeStatsRepo) CountActiveAdmissions(ctx context.Context) (int64, error) { return 14, nil }

func (f *fakeStatsRepo) CountLabTestsByStatus(ctx context.Context, status string, doctorID int64) (int64, error) {
	f.labDoctorID = doctorID
	return 3, nil
}

func (f *fakeStatsRepo) CountPrescriptionsByStatus(ctx context.Context, status string) (int64, error) {
	return 5, nil
}

func (f *fakeStatsRepo) CountLowStockMedicines(ctx context.Context) (int64, error) { return 4, nil }

func (f *fakeStatsRepo) CountExpiringMedicines(ctx context.Context, within time.Duration) (int64, error) {
	return 2, nil
}

func (f *fakeStatsRepo) CountBillsByStatus(ctx context.Context, status string) (int64, error) {
	return 9, nil
}

func (f *fakeStatsRepo) BedTotals(ctx context.Context) (int64, int64, error) { return 14, 40, nil }

func TestAdminStats(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewService(repo, zerolog.Nop())

	stats, err := svc.Stats(context.Background(), 1, model.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, int64(120), *stats.TotalPatients)
	assert.Equal(t, int64(18), *stats.TotalStaff)
	assert.Equal(t, int64(7), *stats.TodayAppointments)
	assert.Equal(t, int64(14), *stats.ActiveAdmissions)
	assert.Equal(t, int64(9), *stats.UnpaidBills)
	assert.Equal(t, int64(40), *stats.TotalBeds)

	// Admins see hospital-wide counts, not their own
	assert.Zero(t, repo.apptDoctorID)
	assert.Nil(t, stats.LowStockMedicines)
}

func TestDoctorStatsAreScoped(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewService(repo, zerolog.Nop())

	stats, err := svc.Stats(context.Background(), 42, model.RoleDoctor)
	require.NoError(t, err)

	assert.Equal(t, int64(42), repo.apptDoctorID)
	assert.Equal(t, int64(42), repo.labDoctorID)
	assert.Equal(t, int64(7), *stats.TodayAppointments)
	assert.Equal(t, int64(3), *stats.PendingLabTests)
	assert.Nil(t, stats.TotalPatients)
}

func TestNurseStats(t *testing.T) {
	svc := NewService(&fakeStatsRepo{}, zerolog.Nop())

	stats, err := svc.Stats(context.Background(), 5, model.RoleNurse)
	require.NoError(t, err)

	assert.Equal(t, int64(14), *stats.ActiveAdmissions)
	assert.Equal(t, int64(14), *stats.OccupiedBeds)
	assert.Equal(t, int64(40), *stats.TotalBeds)
	assert.Nil(t, stats.TodayAppointments)
}

func TestPharmacistStats(t *testing.T) {
	svc := NewService(&fakeStatsRepo{}, zerolog.Nop())

	stats, err := svc.Stats(context.Background(), 5, model.RolePharmacist)
	require.NoError(t, err)

	assert.Equal(t, int64(4), *stats.LowStockMedicines)
	assert.Equal(t, int64(2), *stats.ExpiringMedicines)
	assert.Equal(t, int64(5), *stats.PendingDispense)
}

func TestUnknownRole(t *testing.T) {
	svc := NewService(&fakeStatsRepo{}, zerolog.Nop())

	_, err := svc.Stats(context.Background(), 5, model.Role("intern"))
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}
