package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	"github.com/medicore/hospital-api/internal/repository/postgres"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// AppointmentService manages doctor visit bookings
type AppointmentService interface {
	BookAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
	ListAppointments(ctx context.Context, filter *model.AppointmentFilter) ([]*model.AppointmentDetail, error)
}

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	logger      zerolog.Logger
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, patientRepo: patientRepo, logger: logger}
}

// BookAppointment schedules a visit. New bookings cannot be dated in
// the past; reschedules are exempt from that rule.
func (s *Service) BookAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if _, err := s.patientRepo.Get(ctx, req.PatientID); err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load patient: %w", err))
	}

	date, err := time.Parse(dateLayout, req.AppointmentDate)
	if err != nil {
		return nil, apperrors.Validation("appointment date must be YYYY-MM-DD")
	}

	today, _ := time.Parse(dateLayout, time.Now().Format(dateLayout))
	if date.Before(today) {
		return nil, apperrors.Validation("appointment date cannot be in the past")
	}

	appointment := &model.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		Department:      req.Department,
		Status:          model.AppointmentStatusPending,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create appointment: %w", err))
	}

	s.logger.Info().
		Int64("appointment_id", appointment.ID).
		Int64("patient_id", appointment.PatientID).
		Str("date", req.AppointmentDate).
		Msg("appointment booked")
	return appointment, nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load appointment: %w", err))
	}
	return appointment, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load appointment: %w", err))
	}

	if req.PatientID != nil {
		if _, err := s.patientRepo.Get(ctx, *req.PatientID); err != nil {
			return nil, apperrors.NotFound("patient")
		}
		appointment.PatientID = *req.PatientID
	}
	if req.DoctorID != nil {
		appointment.DoctorID = *req.DoctorID
	}
	if req.AppointmentDate != nil {
		date, err := time.Parse(dateLayout, *req.AppointmentDate)
		if err != nil {
			return nil, apperrors.Validation("appointment date must be YYYY-MM-DD")
		}
		appointment.AppointmentDate = date
	}
	if req.AppointmentTime != nil {
		appointment.AppointmentTime = *req.AppointmentTime
	}
	if req.Department != nil {
		appointment.Department = *req.Department
	}

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update appointment: %w", err))
	}
	return appointment, nil
}

// UpdateStatus moves an appointment to completed or cancelled, or back
// to pending.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*model.Appointment, error) {
	switch status {
	case model.AppointmentStatusPending, model.AppointmentStatusCompleted, model.AppointmentStatusCancelled:
	default:
		return nil, apperrors.Validation("unknown appointment status")
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load appointment: %w", err))
	}

	appointment.Status = status
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update appointment: %w", err))
	}
	return appointment, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFound("appointment")
		}
		return apperrors.Internal(fmt.Errorf("failed to load appointment: %w", err))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to delete appointment: %w", err))
	}
	return nil
}

func (s *Service) ListAppointments(ctx context.Context, filter *model.AppointmentFilter) ([]*model.AppointmentDetail, error) {
	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list appointments: %w", err))
	}
	return appointments, nil
}
