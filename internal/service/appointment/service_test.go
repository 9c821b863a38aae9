package appointment

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

type fakeAppointmentRepo struct {
	repository.AppointmentRepository
	appointments map[int64]*model.Appointment
	created      *model.Appointment
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	a.ID = 1
	f.created = a
	return nil
}

func (f *fakeAppointmentRepo) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	if a, ok := f.appointments[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, a *model.Appointment) error {
	f.appointments[a.ID] = a
	return nil
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

func TestBookAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	patients := &fakePatientRepo{ids: map[int64]bool{7: true}}
	svc := NewService(repo, patients, zerolog.Nop())

	tomorrow := time.Now().AddDate(0, 0, 1).Format(dateLayout)
	appointment, err := svc.BookAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID: 7, DoctorID: 2, AppointmentDate: tomorrow, AppointmentTime: "10:30", Department: "cardiology",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, appointment.Status)
	assert.Equal(t, tomorrow, appointment.AppointmentDate.Format(dateLayout))
}

func TestBookAppointmentToday(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	patients := &fakePatientRepo{ids: map[int64]bool{7: true}}
	svc := NewService(repo, patients, zerolog.Nop())

	today := time.Now().Format(dateLayout)
	_, err := svc.BookAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID: 7, DoctorID: 2, AppointmentDate: today, AppointmentTime: "09:00",
	})
	assert.NoError(t, err)
}

func TestBookAppointmentPastDate(t *testing.T) {
	patients := &fakePatientRepo{ids: map[int64]bool{7: true}}
	svc := NewService(&fakeAppointmentRepo{}, patients, zerolog.Nop())

	yesterday := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	_, err := svc.BookAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID: 7, DoctorID: 2, AppointmentDate: yesterday, AppointmentTime: "09:00",
	})

	assert.True(t, apperrors.IsValidation(err))
}

func TestBookAppointmentBadDate(t *testing.T) {
	patients := &fakePatientRepo{ids: map[int64]bool{7: true}}
	svc := NewService(&fakeAppointmentRepo{}, patients, zerolog.Nop())

	_, err := svc.BookAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID: 7, DoctorID: 2, AppointmentDate: "31-12-2026", AppointmentTime: "09:00",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestRescheduleIntoPastIsAllowed(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[int64]*model.Appointment{
		1: {Base: model.Base{ID: 1}, PatientID: 7, Status: model.AppointmentStatusPending},
	}}
	svc := NewService(repo, &fakePatientRepo{}, zerolog.Nop())

	yesterday := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	appointment, err := svc.UpdateAppointment(context.Background(), 1, &model.UpdateAppointmentRequest{
		AppointmentDate: &yesterday,
	})

	assert.NoError(t, err)
	assert.Equal(t, yesterday, appointment.AppointmentDate.Format(dateLayout))
}

func TestUpdateStatus(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[int64]*model.Appointment{
		1: {Base: model.Base{ID: 1}, Status: model.AppointmentStatusPending},
	}}
	svc := NewService(repo, &fakePatientRepo{}, zerolog.Nop())

	appointment, err := svc.UpdateStatus(context.Background(), 1, model.AppointmentStatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, appointment.Status)

	_, err = svc.UpdateStatus(context.Background(), 1, "no-show")
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.UpdateStatus(context.Background(), 99, model.AppointmentStatusCancelled)
	assert.True(t, apperrors.IsNotFound(err))
}
