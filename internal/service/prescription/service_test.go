package prescription

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

type fakePrescriptionRepo struct {
	repository.PrescriptionRepository
	prescriptions map[int64]*model.Prescription
	items         map[int64][]*model.PrescriptionItem
}

func (f *fakePrescriptionRepo) CreateWithItems(ctx context.Context, p *model.Prescription, items []*model.PrescriptionItem) error {
	p.ID = 1
	f.prescriptions[p.ID] = p
	f.items[p.ID] = items
	return nil
}

func (f *fakePrescriptionRepo) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	if p, ok := f.prescriptions[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakePrescriptionRepo) GetItems(ctx context.Context, prescriptionID int64) ([]*model.PrescriptionItem, error) {
	return f.items[prescriptionID], nil
}

// Dispense mimics the status-guarded UPDATE: only pending rows transition.
func (f *fakePrescriptionRepo) Dispense(ctx context.Context, id int64) (int64, error) {
	p := f.prescriptions[id]
	if p.Status != model.PrescriptionStatusPending {
		return 0, nil
	}
	p.Status = model.PrescriptionStatusDispensed
	return 1, nil
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

func newFakes() (*fakePrescriptionRepo, *Service) {
	repo := &fakePrescriptionRepo{
		prescriptions: map[int64]*model.Prescription{},
		items:         map[int64][]*model.PrescriptionItem{},
	}
	patients := &fakePatientRepo{ids: map[int64]bool{7: true}}
	return repo, NewService(repo, patients, zerolog.Nop())
}

func TestCreatePrescription(t *testing.T) {
	repo, svc := newFakes()

	prescription, err := svc.CreatePrescription(context.Background(), 2, &model.CreatePrescriptionRequest{
		PatientID: 7,
		Symptoms:  "fever, headache",
		Diagnosis: "viral fever",
		Items: []model.PrescriptionItemInput{
			{MedicineName: "Paracetamol 500mg", Dosage: "1 tablet", Frequency: "TID", Duration: "5 days"},
			{MedicineName: "  ", Dosage: "ignored"},
			{MedicineName: " Cetirizine ", Dosage: "1 tablet", Frequency: "OD", Duration: "3 days"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, model.PrescriptionStatusPending, prescription.Status)
	assert.Equal(t, int64(2), prescription.DoctorID)
	require.Len(t, repo.items[1], 2)
	assert.Equal(t, "Cetirizine", repo.items[1][1].MedicineName)
}

func TestCreatePrescriptionAdviceOnly(t *testing.T) {
	repo, svc := newFakes()

	prescription, err := svc.CreatePrescription(context.Background(), 2, &model.CreatePrescriptionRequest{
		PatientID: 7,
		Diagnosis: "tension headache",
		Advice:    "hydration and rest, review in a week",
		Items:     []model.PrescriptionItemInput{{MedicineName: "   "}},
	})

	require.NoError(t, err)
	assert.Empty(t, repo.items[1])
	assert.Equal(t, model.PrescriptionStatusPending, prescription.Status)
}

func TestDispensePrescription(t *testing.T) {
	repo, svc := newFakes()
	repo.prescriptions[5] = &model.Prescription{Base: model.Base{ID: 5}, Status: model.PrescriptionStatusPending}

	prescription, err := svc.DispensePrescription(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, model.PrescriptionStatusDispensed, prescription.Status)

	_, err = svc.DispensePrescription(context.Background(), 5)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "prescription already dispensed", err.Error())
}

func TestDispenseUnknownPrescription(t *testing.T) {
	_, svc := newFakes()

	_, err := svc.DispensePrescription(context.Background(), 42)
	assert.True(t, apperrors.IsNotFound(err))
}
