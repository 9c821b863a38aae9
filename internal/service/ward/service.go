package ward

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	"github.com/medicore/hospital-api/internal/repository/postgres"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

// WardService manages wards and their bed occupancy
type WardService interface {
	CreateWard(ctx context.Context, req *model.SaveWardRequest) (*model.Ward, error)
	GetWard(ctx context.Context, id int64) (*model.Ward, error)
	UpdateWard(ctx context.Context, id int64, req *model.SaveWardRequest) (*model.Ward, error)
	DeleteWard(ctx context.Context, id int64) error
	ListWards(ctx context.Context) ([]*model.WardOccupancy, error)
}

type Service struct {
	repo   repository.WardRepository
	logger zerolog.Logger
}

func NewService(repo repository.WardRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateWard(ctx context.Context, req *model.SaveWardRequest) (*model.Ward, error) {
	ward := &model.Ward{
		WardName:  req.WardName,
		TotalBeds: req.TotalBeds,
	}
	if err := s.repo.Create(ctx, ward); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create ward: %w", err))
	}
	return ward, nil
}

func (s *Service) GetWard(ctx context.Context, id int64) (*model.Ward, error) {
	ward, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("ward")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load ward: %w", err))
	}
	return ward, nil
}

// UpdateWard renames a ward or resizes it. The bed count cannot drop
// below the number of currently occupied beds.
func (s *Service) UpdateWard(ctx context.Context, id int64, req *model.SaveWardRequest) (*model.Ward, error) {
	ward, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("ward")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load ward: %w", err))
	}

	occupied, err := s.repo.OccupiedBeds(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to count occupied beds: %w", err))
	}
	if req.TotalBeds < occupied {
		return nil, apperrors.Validation(
			fmt.Sprintf("total beds cannot be less than the %d currently occupied", occupied))
	}

	ward.WardName = req.WardName
	ward.TotalBeds = req.TotalBeds
	if err := s.repo.Update(ctx, ward); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update ward: %w", err))
	}
	return ward, nil
}

// DeleteWard removes a ward with no active admissions.
func (s *Service) DeleteWard(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFound("ward")
		}
		return apperrors.Internal(fmt.Errorf("failed to load ward: %w", err))
	}

	occupied, err := s.repo.OccupiedBeds(ctx, id)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to count occupied beds: %w", err))
	}
	if occupied > 0 {
		return apperrors.Conflict("ward has active admissions and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to delete ward: %w", err))
	}
	s.logger.Info().Int64("ward_id", id).Msg("ward deleted")
	return nil
}

func (s *Service) ListWards(ctx context.Context) ([]*model.WardOccupancy, error) {
	wards, err := s.repo.ListWithOccupancy(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list wards: %w", err))
	}
	return wards, nil
}
