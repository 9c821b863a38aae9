package admission

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

type fakeAdmissionRepo struct {
	repository.AdmissionRepository
	admissions map[int64]*model.Admission
	created    *model.Admission
}

func (f *fakeAdmissionRepo) Create(ctx context.Context, a *model.Admission) error {
	a.ID = 1
	f.created = a
	return nil
}

func (f *fakeAdmissionRepo) Get(ctx context.Context, id int64) (*model.Admission, error) {
	if a, ok := f.admissions[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdmissionRepo) Update(ctx context.Context, a *model.Admission) error {
	f.admissions[a.ID] = a
	return nil
}

// Discharge mimics the status-guarded UPDATE: only admitted rows transition.
func (f *fakeAdmissionRepo) Discharge(ctx context.Context, id int64, dischargedAt time.Time) (int64, error) {
	a := f.admissions[id]
	if a.Status != model.AdmissionStatusAdmitted {
		return 0, nil
	}
	a.Status = model.AdmissionStatusDischarged
	a.DischargeDate = &dischargedAt
	return 1, nil
}

type fakeWardRepo struct {
	repository.WardRepository
	wards    map[int64]*model.Ward
	occupied map[int64]int
}

func (f *fakeWardRepo) Get(ctx context.Context, id int64) (*model.Ward, error) {
	if w, ok := f.wards[id]; ok {
		return w, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeWardRepo) OccupiedBeds(ctx context.Context, wardID int64) (int, error) {
	return f.occupied[wardID], nil
}

type fakePatientRepo struct {
	repository.PatientRepository
	ids map[int64]bool
}

func (f *fakePatientRepo) Get(ctx context.Context, id int64) (*model.Patient, error) {
	if f.ids[id] {
		return &model.Patient{Base: model.Base{ID: id}}, nil
	}
	return nil, sql.ErrNoRows
}

func TestAdmitPatient(t *testing.T) {
	repo := &fakeAdmissionRepo{}
	wards := &fakeWardRepo{
		wards:    map[int64]*model.Ward{1: {Base: model.Base{ID: 1}, TotalBeds: 4}},
		occupied: map[int64]int{1: 3},
	}
	patients := &fakePatientRepo{ids: map[int64]bool{7: true}}
	svc := NewService(repo, wards, patients, zerolog.Nop())

	admission, err := svc.AdmitPatient(context.Background(), &model.CreateAdmissionRequest{
		PatientID: 7, DoctorID: 2, WardID: 1, BedNumber: "B-3", Diagnosis: "dengue",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.AdmissionStatusAdmitted, admission.Status)
	assert.Nil(t, admission.DischargeDate)
	assert.WithinDuration(t, time.Now(), admission.AdmissionDate, time.Second)
}

func TestAdmitPatientFullWard(t *testing.T) {
	wards := &fakeWardRepo{
		wards:    map[int64]*model.Ward{1: {Base: model.Base{ID: 1}, TotalBeds: 4}},
		occupied: map[int64]int{1: 4},
	}
	patients := &fakePatientRepo{ids: map[int64]bool{7: true}}
	svc := NewService(&fakeAdmissionRepo{}, wards, patients, zerolog.Nop())

	_, err := svc.AdmitPatient(context.Background(), &model.CreateAdmissionRequest{
		PatientID: 7, WardID: 1, BedNumber: "B-1",
	})

	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "ward has no free beds", err.Error())
}

func TestAdmitPatientUnknownWard(t *testing.T) {
	patients := &fakePatientRepo{ids: map[int64]bool{7: true}}
	svc := NewService(&fakeAdmissionRepo{}, &fakeWardRepo{}, patients, zerolog.Nop())

	_, err := svc.AdmitPatient(context.Background(), &model.CreateAdmissionRequest{
		PatientID: 7, WardID: 9,
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateAdmissionWardMoveNeedsFreeBed(t *testing.T) {
	repo := &fakeAdmissionRepo{admissions: map[int64]*model.Admission{
		1: {Base: model.Base{ID: 1}, WardID: 1, Status: model.AdmissionStatusAdmitted},
	}}
	wards := &fakeWardRepo{
		wards: map[int64]*model.Ward{
			1: {Base: model.Base{ID: 1}, TotalBeds: 4},
			2: {Base: model.Base{ID: 2}, TotalBeds: 2},
		},
		occupied: map[int64]int{1: 1, 2: 2},
	}
	svc := NewService(repo, wards, &fakePatientRepo{}, zerolog.Nop())

	target := int64(2)
	_, err := svc.UpdateAdmission(context.Background(), 1, &model.UpdateAdmissionRequest{WardID: &target})
	assert.True(t, apperrors.IsConflict(err))

	// Staying in the current ward never re-checks capacity
	current := int64(1)
	bed := "B-2"
	admission, err := svc.UpdateAdmission(context.Background(), 1, &model.UpdateAdmissionRequest{WardID: &current, BedNumber: &bed})
	assert.NoError(t, err)
	assert.Equal(t, "B-2", admission.BedNumber)
}

func TestDischargePatient(t *testing.T) {
	repo := &fakeAdmissionRepo{admissions: map[int64]*model.Admission{
		1: {Base: model.Base{ID: 1}, Status: model.AdmissionStatusAdmitted},
	}}
	svc := NewService(repo, &fakeWardRepo{}, &fakePatientRepo{}, zerolog.Nop())

	admission, err := svc.DischargePatient(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, model.AdmissionStatusDischarged, admission.Status)
	assert.NotNil(t, admission.DischargeDate)

	// Second discharge is rejected and the stamp untouched
	first := *admission.DischargeDate
	_, err = svc.DischargePatient(context.Background(), 1)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "patient already discharged", err.Error())
	assert.Equal(t, first, *repo.admissions[1].DischargeDate)
}

func TestDischargeUnknownAdmission(t *testing.T) {
	svc := NewService(&fakeAdmissionRepo{}, &fakeWardRepo{}, &fakePatientRepo{}, zerolog.Nop())

	_, err := svc.DischargePatient(context.Background(), 42)
	assert.True(t, apperrors.IsNotFound(err))
}
