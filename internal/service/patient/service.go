package patient

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

// codeRetries bounds how many times registration retries a colliding
// patient code before giving up
const codeRetries = 3

// PatientService manages patient records
type PatientService interface {
	RegisterPatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	GetPatientSummary(ctx context.Context, id int64) (*model.PatientSummary, error)
	UpdatePatient(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, id int64) error
	ListPatients(ctx context.Context, filter *model.PatientFilter) ([]*model.Patient, error)
}

type Service struct {
	repo             repository.PatientRepository
	appointmentRepo  repository.AppointmentRepository
	admissionRepo    repository.AdmissionRepository
	prescriptionRepo repository.PrescriptionRepository
	labTestRepo      repository.LabTestRepository
	logger           zerolog.Logger
}

func NewService(
	repo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	admissionRepo repository.AdmissionRepository,
	prescriptionRepo repository.PrescriptionRepository,
	labTestRepo repository.LabTestRepository,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:             repo,
		appointmentRepo:  appointmentRepo,
		admissionRepo:    admissionRepo,
		prescriptionRepo: prescriptionRepo,
		labTestRepo:      labTestRepo,
		logger:           logger,
	}
}

// RegisterPatient creates a patient with a generated code of the form
// PT<year><5-digit sequence>, e.g. PT202600042. The sequence restarts
// each year. A unique index backs the code; on a collision with a
// concurrent registration the code is regenerated and the insert
// retried.
func (s *Service) RegisterPatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		Name:             req.Name,
		Age:              req.Age,
		Gender:           req.Gender,
		BloodGroup:       req.BloodGroup,
		Phone:            req.Phone,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		MedicalHistory:   req.MedicalHistory,
	}

	year := time.Now().Year()
	var lastErr error
	for attempt := 0; attempt < codeRetries; attempt++ {
		count, err := s.repo.CountCreatedInYear(ctx, year)
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("failed to count patients: %w", err))
		}

		patient.PatientCode = FormatPatientCode(year, count+1+int64(attempt))
		if err := s.repo.Create(ctx, patient); err != nil {
			if postgres.IsUniqueViolation(err) {
				lastErr = err
				continue
			}
			return nil, apperrors.Internal(fmt.Errorf("failed to create patient: %w", err))
		}

		s.logger.Info().Int64("patient_id", patient.ID).Str("code", patient.PatientCode).Msg("patient registered")
		return patient, nil
	}

	return nil, apperrors.Internal(fmt.Errorf("failed to allocate patient code after %d attempts: %w", codeRetries, lastErr))
}

// FormatPatientCode renders the registration code for the nth patient
// of a year.
func FormatPatientCode(year int, seq int64) string {
	return fmt.Sprintf("PT%d%05d", year, seq)
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load patient: %w", err))
	}
	return patient, nil
}

// GetPatientSummary loads the patient together with their appointments,
// admissions, prescriptions and lab tests for the detail view.
func (s *Service) GetPatientSummary(ctx context.Context, id int64) (*model.PatientSummary, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load patient: %w", err))
	}

	summary := &model.PatientSummary{Patient: patient}

	if summary.Appointments, err = s.appointmentRepo.ListByPatient(ctx, id); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to load appointments: %w", err))
	}
	if summary.Admissions, err = s.admissionRepo.ListByPatient(ctx, id); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to load admissions: %w", err))
	}
	if summary.Prescriptions, err = s.prescriptionRepo.ListByPatient(ctx, id); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to load prescriptions: %w", err))
	}
	if summary.LabTests, err = s.labTestRepo.ListByPatient(ctx, id); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to load lab tests: %w", err))
	}

	return summary, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load patient: %w", err))
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.BloodGroup != nil {
		patient.BloodGroup = *req.BloodGroup
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = *req.EmergencyContact
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = *req.MedicalHistory
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update patient: %w", err))
	}
	return patient, nil
}

// DeletePatient removes a patient record. Patients with any linked
// appointments, admissions, prescriptions, lab tests or bills are kept.
func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFound("patient")
		}
		return apperrors.Internal(fmt.Errorf("failed to load patient: %w", err))
	}

	hasDeps, err := s.repo.HasDependents(ctx, id)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to check patient records: %w", err))
	}
	if hasDeps {
		return apperrors.Conflict("patient has linked records and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to delete patient: %w", err))
	}
	s.logger.Info().Int64("patient_id", id).Msg("patient deleted")
	return nil
}

func (s *Service) ListPatients(ctx context.Context, filter *model.PatientFilter) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list patients: %w", err))
	}
	return patients, nil
}
