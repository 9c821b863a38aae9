package patient

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

type fakePatientRepo struct {
	repository.PatientRepository
	yearCount     int64
	codes         map[string]bool
	createAttempt int
	deleted       bool
	hasDeps       bool
	patients      map[int64]*model.Patient
	getErr        error
}

func (f *fakePatientRepo) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	return f.yearCount, nil
}

func (f *fakePatientRepo) Create(ctx context.Context, p *model.Patient) error {
	f.createAttempt++
	if f.codes[p.PatientCode] {
		return &pq.Error{Code: "23505"}
	}
	p.ID = int64(f.createAttempt)
	return nil
}

func (f *fakePatientRepo) Get(ctx context.Context, id int64) (*model.Patient, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.patients[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakePatientRepo) HasDependents(ctx context.Context, id int64) (bool, error) {
	return f.hasDeps, nil
}

func (f *fakePatientRepo) Update(ctx context.Context, p *model.Patient) error {
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = true
	return nil
}

func newService(repo *fakePatientRepo) *Service {
	return NewService(repo, nil, nil, nil, nil, zerolog.Nop())
}

func TestFormatPatientCode(t *testing.T) {
	assert.Equal(t, "PT202600042", FormatPatientCode(2026, 42))
	assert.Equal(t, "PT202600001", FormatPatientCode(2026, 1))
	assert.Equal(t, "PT2026123456", FormatPatientCode(2026, 123456))
}

func TestRegisterPatientAssignsNextCode(t *testing.T) {
	repo := &fakePatientRepo{yearCount: 41}
	svc := newService(repo)

	patient, err := svc.RegisterPatient(context.Background(), &model.CreatePatientRequest{
		Name: "Ravi Kumar", Age: 34, Gender: "male", Phone: "9876543210",
	})

	assert.NoError(t, err)
	assert.Equal(t, FormatPatientCode(time.Now().Year(), 42), patient.PatientCode)
	assert.Equal(t, 1, repo.createAttempt)
}

func TestRegisterPatientRetriesOnCodeCollision(t *testing.T) {
	year := time.Now().Year()
	repo := &fakePatientRepo{
		yearCount: 41,
		codes:     map[string]bool{FormatPatientCode(year, 42): true},
	}
	svc := newService(repo)

	patient, err := svc.RegisterPatient(context.Background(), &model.CreatePatientRequest{
		Name: "Ravi Kumar", Age: 34, Gender: "male", Phone: "9876543210",
	})

	assert.NoError(t, err)
	assert.Equal(t, FormatPatientCode(year, 43), patient.PatientCode)
	assert.Equal(t, 2, repo.createAttempt)
}

func TestRegisterPatientGivesUpAfterRetries(t *testing.T) {
	year := time.Now().Year()
	codes := make(map[string]bool)
	for seq := int64(1); seq <= 10; seq++ {
		codes[FormatPatientCode(year, seq)] = true
	}
	repo := &fakePatientRepo{codes: codes}
	svc := newService(repo)

	_, err := svc.RegisterPatient(context.Background(), &model.CreatePatientRequest{
		Name: "Ravi Kumar", Age: 34, Gender: "male", Phone: "9876543210",
	})

	assert.Error(t, err)
	assert.Equal(t, codeRetries, repo.createAttempt)
}

func TestDeletePatientKeepsLinkedRecords(t *testing.T) {
	repo := &fakePatientRepo{
		hasDeps:  true,
		patients: map[int64]*model.Patient{5: {Base: model.Base{ID: 5}}},
	}
	svc := newService(repo)

	err := svc.DeletePatient(context.Background(), 5)
	assert.True(t, apperrors.IsConflict(err))
	assert.False(t, repo.deleted)
}

func TestDeletePatientWithoutRecords(t *testing.T) {
	repo := &fakePatientRepo{
		patients: map[int64]*model.Patient{5: {Base: model.Base{ID: 5}}},
	}
	svc := newService(repo)

	assert.NoError(t, svc.DeletePatient(context.Background(), 5))
	assert.True(t, repo.deleted)
}

func TestUpdatePatientAppliesPartialFields(t *testing.T) {
	repo := &fakePatientRepo{
		patients: map[int64]*model.Patient{5: {
			Base: model.Base{ID: 5}, Name: "Ravi Kumar", Age: 34, Phone: "9876543210",
		}},
	}
	svc := newService(repo)

	name := "Ravi K. Kumar"
	patient, err := svc.UpdatePatient(context.Background(), 5, &model.UpdatePatientRequest{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "Ravi K. Kumar", patient.Name)
	assert.Equal(t, 34, patient.Age)
	assert.Equal(t, "9876543210", patient.Phone)
}

func TestGetPatientNotFound(t *testing.T) {
	svc := newService(&fakePatientRepo{})

	_, err := svc.GetPatient(context.Background(), 99)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "patient not found", err.Error())
}

func TestGetPatientStorageFailure(t *testing.T) {
	svc := newService(&fakePatientRepo{getErr: errors.New("connection reset")})

	_, err := svc.GetPatient(context.Background(), 99)
	assert.False(t, apperrors.IsNotFound(err))
	appErr, ok := apperrors.AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrInternal, appErr.Code)
}
