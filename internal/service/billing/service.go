package billing

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	"github.com/medicore/hospital-api/internal/repository/postgres"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

// BillingService manages invoices
type BillingService interface {
	CreateBill(ctx context.Context, req *model.SaveBillRequest) (*model.Bill, error)
	GetBill(ctx context.Context, id int64) (*model.Bill, error)
	UpdateBill(ctx context.Context, id int64, req *model.SaveBillRequest) (*model.Bill, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Bill, error)
	DeleteBill(ctx context.Context, id int64) error
	ListBills(ctx context.Context, filter *model.BillFilter) ([]*model.BillDetail, error)
}

type Service struct {
	repo        repository.BillRepository
	patientRepo repository.PatientRepository
	logger      zerolog.Logger
}

func NewService(repo repository.BillRepository, patientRepo repository.PatientRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, patientRepo: patientRepo, logger: logger}
}

// CreateBill computes the subtotal and tax from item lines and writes
// the bill with its items in one transaction. Lines with a blank
// description are skipped. The tax rate defaults when absent and is
// applied at save time only; it is not stored.
func (s *Service) CreateBill(ctx context.Context, req *model.SaveBillRequest) (*model.Bill, error) {
	if _, err := s.patientRepo.Get(ctx, req.PatientID); err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load patient: %w", err))
	}

	items, subtotal, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	bill := &model.Bill{
		PatientID:   req.PatientID,
		AdmissionID: req.AdmissionID,
		TotalAmount: subtotal,
		TaxAmount:   computeTax(subtotal, req.TaxRate),
		Status:      model.BillStatusUnpaid,
	}

	if err := s.repo.CreateWithItems(ctx, bill, items); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create bill: %w", err))
	}
	bill.Items = items

	s.logger.Info().
		Int64("bill_id", bill.ID).
		Int64("patient_id", bill.PatientID).
		Float64("total", bill.GrandTotal()).
		Msg("bill created")
	return bill, nil
}

func (s *Service) GetBill(ctx context.Context, id int64) (*model.Bill, error) {
	bill, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("bill")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load bill: %w", err))
	}

	items, err := s.repo.GetItems(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to load items: %w", err))
	}
	bill.Items = items
	return bill, nil
}

// UpdateBill recomputes totals and swaps the full item set atomically.
func (s *Service) UpdateBill(ctx context.Context, id int64, req *model.SaveBillRequest) (*model.Bill, error) {
	bill, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("bill")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load bill: %w", err))
	}
	if _, err := s.patientRepo.Get(ctx, req.PatientID); err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load patient: %w", err))
	}

	items, subtotal, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	bill.PatientID = req.PatientID
	bill.AdmissionID = req.AdmissionID
	bill.TotalAmount = subtotal
	bill.TaxAmount = computeTax(subtotal, req.TaxRate)

	if err := s.repo.ReplaceWithItems(ctx, bill, items); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update bill: %w", err))
	}
	bill.Items = items
	return bill, nil
}

// UpdateStatus toggles a bill between paid and unpaid.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*model.Bill, error) {
	if status != model.BillStatusPaid && status != model.BillStatusUnpaid {
		return nil, apperrors.Validation("unknown bill status")
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("bill")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load bill: %w", err))
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update bill status: %w", err))
	}
	s.logger.Info().Int64("bill_id", id).Str("status", status).Msg("bill status updated")
	return s.GetBill(ctx, id)
}

func (s *Service) DeleteBill(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFound("bill")
		}
		return apperrors.Internal(fmt.Errorf("failed to load bill: %w", err))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to delete bill: %w", err))
	}
	return nil
}

func (s *Service) ListBills(ctx context.Context, filter *model.BillFilter) ([]*model.BillDetail, error) {
	bills, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list bills: %w", err))
	}
	return bills, nil
}

func buildItems(inputs []model.BillItemInput) ([]*model.BillItem, float64, error) {
	items := make([]*model.BillItem, 0, len(inputs))
	var subtotal float64
	for _, in := range inputs {
		desc := strings.TrimSpace(in.Description)
		if desc == "" {
			continue
		}
		if in.Amount < 0 {
			return nil, 0, apperrors.Validation("item amounts cannot be negative")
		}
		items = append(items, &model.BillItem{Description: desc, Amount: in.Amount})
		subtotal += in.Amount
	}
	if len(items) == 0 {
		return nil, 0, apperrors.Validation("at least one charge line is required")
	}
	return items, round2(subtotal), nil
}

func computeTax(subtotal float64, rate *float64) float64 {
	taxRate := model.DefaultTaxRate
	if rate != nil {
		taxRate = *rate
	}
	return round2(subtotal * taxRate / 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
