package medicine

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

// MedicineService manages the pharmacy inventory
type MedicineService interface {
	AddMedicine(ctx context.Context, req *model.SaveMedicineRequest) (*model.MedicineView, error)
	GetMedicine(ctx context.Context, id int64) (*model.MedicineView, error)
	UpdateMedicine(ctx context.Context, id int64, req *model.SaveMedicineRequest) (*model.MedicineView, error)
	DeleteMedicine(ctx context.Context, id int64) error
	ListMedicines(ctx context.Context, filter *model.MedicineFilter) ([]*model.MedicineView, error)
}

type Service struct {
	repo   repository.MedicineRepository
	logger zerolog.Logger
}

func NewService(repo repository.MedicineRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) AddMedicine(ctx context.Context, req *model.SaveMedicineRequest) (*model.MedicineView, error) {
	medicine := &model.Medicine{}
	if err := applyRequest(medicine, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, medicine); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create medicine: %w", err))
	}

	s.logger.Info().Int64("medicine_id", medicine.ID).Str("name", medicine.Name).Msg("medicine added")
	return view(medicine, time.Now()), nil
}

func (s *Service) GetMedicine(ctx context.Context, id int64) (*model.MedicineView, error) {
	medicine, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("medicine")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load medicine: %w", err))
	}
	return view(medicine, time.Now()), nil
}

func (s *Service) UpdateMedicine(ctx context.Context, id int64, req *model.SaveMedicineRequest) (*model.MedicineView, error) {
	medicine, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("medicine")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load medicine: %w", err))
	}

	if err := applyRequest(medicine, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, medicine); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update medicine: %w", err))
	}
	return view(medicine, time.Now()), nil
}

func (s *Service) DeleteMedicine(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFound("medicine")
		}
		return apperrors.Internal(fmt.Errorf("failed to load medicine: %w", err))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to delete medicine: %w", err))
	}
	return nil
}

func (s *Service) ListMedicines(ctx context.Context, filter *model.MedicineFilter) ([]*model.MedicineView, error) {
	medicines, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list medicines: %w", err))
	}

	now := time.Now()
	views := make([]*model.MedicineView, 0, len(medicines))
	for _, m := range medicines {
		views = append(views, view(m, now))
	}
	return views, nil
}

func applyRequest(medicine *model.Medicine, req *model.SaveMedicineRequest) error {
	medicine.Name = req.Name
	medicine.BatchNo = req.BatchNo
	medicine.Quantity = req.Quantity
	medicine.PurchasePrice = req.PurchasePrice
	medicine.SellingPrice = req.SellingPrice

	if req.ExpiryDate == "" {
		medicine.ExpiryDate = nil
		return nil
	}
	expiry, err := time.Parse(dateLayout, req.ExpiryDate)
	if err != nil {
		return apperrors.Validation("expiry date must be YYYY-MM-DD")
	}
	medicine.ExpiryDate = &expiry
	return nil
}

func view(m *model.Medicine, now time.Time) *model.MedicineView {
	return &model.MedicineView{
		Medicine:     *m,
		LowStock:     m.LowStock(),
		ExpiringSoon: m.ExpiringSoon(now),
	}
}
