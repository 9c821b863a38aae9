package prescription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	"github.com/medicore/hospital-api/internal/repository/postgres"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

// PrescriptionService manages prescriptions and their dispensing
type PrescriptionService interface {
	CreatePrescription(ctx context.Context, doctorID int64, req *model.CreatePrescriptionRequest) (*model.Prescription, error)
	GetPrescription(ctx context.Context, id int64) (*model.Prescription, error)
	DispensePrescription(ctx context.Context, id int64) (*model.Prescription, error)
	ListPrescriptions(ctx context.Context, filter *model.PrescriptionFilter) ([]*model.PrescriptionDetail, error)
}

type Service struct {
	repo        repository.PrescriptionRepository
	patientRepo repository.PatientRepository
	logger      zerolog.Logger
}

func NewService(repo repository.PrescriptionRepository, patientRepo repository.PatientRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, patientRepo: patientRepo, logger: logger}
}

// CreatePrescription writes the prescription and its items in one
// transaction. Item lines with a blank medicine name are skipped; a
// prescription may carry no items at all (advice only).
func (s *Service) CreatePrescription(ctx context.Context, doctorID int64, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if _, err := s.patientRepo.Get(ctx, req.PatientID); err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load patient: %w", err))
	}

	items := make([]*model.PrescriptionItem, 0, len(req.Items))
	for _, in := range req.Items {
		if strings.TrimSpace(in.MedicineName) == "" {
			continue
		}
		items = append(items, &model.PrescriptionItem{
			MedicineName: strings.TrimSpace(in.MedicineName),
			Dosage:       in.Dosage,
			Frequency:    in.Frequency,
			Duration:     in.Duration,
		})
	}

	prescription := &model.Prescription{
		PatientID: req.PatientID,
		DoctorID:  doctorID,
		VisitDate: time.Now(),
		Symptoms:  req.Symptoms,
		Diagnosis: req.Diagnosis,
		Advice:    req.Advice,
		Status:    model.PrescriptionStatusPending,
	}

	if err := s.repo.CreateWithItems(ctx, prescription, items); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create prescription: %w", err))
	}
	prescription.Items = items

	s.logger.Info().
		Int64("prescription_id", prescription.ID).
		Int64("patient_id", prescription.PatientID).
		Int("items", len(items)).
		Msg("prescription created")
	return prescription, nil
}

func (s *Service) GetPrescription(ctx context.Context, id int64) (*model.Prescription, error) {
	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("prescription")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load prescription: %w", err))
	}

	items, err := s.repo.GetItems(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to load items: %w", err))
	}
	prescription.Items = items
	return prescription, nil
}

// DispensePrescription marks a pending prescription dispensed. A repeat
// dispense is rejected.
func (s *Service) DispensePrescription(ctx context.Context, id int64) (*model.Prescription, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("prescription")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load prescription: %w", err))
	}

	affected, err := s.repo.Dispense(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to dispense: %w", err))
	}
	if affected == 0 {
		return nil, apperrors.Conflict("prescription already dispensed")
	}

	s.logger.Info().Int64("prescription_id", id).Msg("prescription dispensed")
	return s.GetPrescription(ctx, id)
}

func (s *Service) ListPrescriptions(ctx context.Context, filter *model.PrescriptionFilter) ([]*model.PrescriptionDetail, error) {
	prescriptions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list prescriptions: %w", err))
	}
	return prescriptions, nil
}
