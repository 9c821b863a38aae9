package admission

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

// AdmissionService manages ward admissions and discharges
type AdmissionService interface {
	AdmitPatient(ctx context.Context, req *model.CreateAdmissionRequest) (*model.Admission, error)
	GetAdmission(ctx context.Context, id int64) (*model.Admission, error)
	UpdateAdmission(ctx context.Context, id int64, req *model.UpdateAdmissionRequest) (*model.Admission, error)
	UpdateNotes(ctx context.Context, id int64, notes string) error
	DischargePatient(ctx context.Context, id int64) (*model.Admission, error)
	ListAdmissions(ctx context.Context, filter *model.AdmissionFilter) ([]*model.AdmissionDetail, error)
}

type Service struct {
	repo        repository.AdmissionRepository
	wardRepo    repository.WardRepository
	patientRepo repository.PatientRepository
	logger      zerolog.Logger
}

func NewService(repo repository.AdmissionRepository, wardRepo repository.WardRepository, patientRepo repository.PatientRepository, logger zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		wardRepo:    wardRepo,
		patientRepo: patientRepo,
		logger:      logger,
	}
}

// AdmitPatient opens an admission in a ward with a free bed.
func (s *Service) AdmitPatient(ctx context.Context, req *model.CreateAdmissionRequest) (*model.Admission, error) {
	if _, err := s.patientRepo.Get(ctx, req.PatientID); err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load patient: %w", err))
	}

	ward, err := s.wardRepo.Get(ctx, req.WardID)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("ward")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load ward: %w", err))
	}

	occupied, err := s.wardRepo.OccupiedBeds(ctx, req.WardID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to count occupied beds: %w", err))
	}
	if occupied >= ward.TotalBeds {
		return nil, apperrors.Conflict("ward has no free beds")
	}

	admission := &model.Admission{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		WardID:        req.WardID,
		BedNumber:     req.BedNumber,
		AdmissionDate: time.Now(),
		Diagnosis:     req.Diagnosis,
		Notes:         req.Notes,
		Status:        model.AdmissionStatusAdmitted,
	}

	if err := s.repo.Create(ctx, admission); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create admission: %w", err))
	}

	s.logger.Info().
		Int64("admission_id", admission.ID).
		Int64("patient_id", admission.PatientID).
		Int64("ward_id", admission.WardID).
		Msg("patient admitted")
	return admission, nil
}

func (s *Service) GetAdmission(ctx context.Context, id int64) (*model.Admission, error) {
	admission, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("admission")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load admission: %w", err))
	}
	return admission, nil
}

// UpdateAdmission changes assignment fields. Moving the patient to a
// different ward requires a free bed there.
func (s *Service) UpdateAdmission(ctx context.Context, id int64, req *model.UpdateAdmissionRequest) (*model.Admission, error) {
	admission, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("admission")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load admission: %w", err))
	}

	if req.WardID != nil && *req.WardID != admission.WardID {
		ward, err := s.wardRepo.Get(ctx, *req.WardID)
		if err != nil {
			return nil, apperrors.NotFound("ward")
		}
		occupied, err := s.wardRepo.OccupiedBeds(ctx, *req.WardID)
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("failed to count occupied beds: %w", err))
		}
		if occupied >= ward.TotalBeds {
			return nil, apperrors.Conflict("ward has no free beds")
		}
		admission.WardID = *req.WardID
	}
	if req.DoctorID != nil {
		admission.DoctorID = *req.DoctorID
	}
	if req.BedNumber != nil {
		admission.BedNumber = *req.BedNumber
	}
	if req.Diagnosis != nil {
		admission.Diagnosis = *req.Diagnosis
	}
	if req.Notes != nil {
		admission.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, admission); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update admission: %w", err))
	}
	return admission, nil
}

// UpdateNotes replaces the care notes on an admission.
func (s *Service) UpdateNotes(ctx context.Context, id int64, notes string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFound("admission")
		}
		return apperrors.Internal(fmt.Errorf("failed to load admission: %w", err))
	}
	if err := s.repo.UpdateNotes(ctx, id, notes); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to update notes: %w", err))
	}
	return nil
}

// DischargePatient closes an admission, stamping the discharge date.
// An already discharged admission is rejected rather than restamped.
func (s *Service) DischargePatient(ctx context.Context, id int64) (*model.Admission, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("admission")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load admission: %w", err))
	}

	affected, err := s.repo.Discharge(ctx, id, time.Now())
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to discharge: %w", err))
	}
	if affected == 0 {
		return nil, apperrors.Conflict("patient already discharged")
	}

	admission, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to reload admission: %w", err))
	}

	s.logger.Info().Int64("admission_id", id).Msg("patient discharged")
	return admission, nil
}

func (s *Service) ListAdmissions(ctx context.Context, filter *model.AdmissionFilter) ([]*model.AdmissionDetail, error) {
	admissions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list admissions: %w", err))
	}
	return admissions, nil
}
