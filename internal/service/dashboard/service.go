package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

// DashboardService computes the per-role landing page counters
type DashboardService interface {
	Stats(ctx context.Context, userID int64, role model.Role) (*model.DashboardStats, error)
}

type Service struct {
	repo   repository.StatsRepository
	logger zerolog.Logger
}

func NewService(repo repository.StatsRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Stats returns the counters relevant to the role. Doctors see their
// own appointment and lab queues; other roles see hospital-wide counts.
func (s *Service) Stats(ctx context.Context, userID int64, role model.Role) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}
	today := time.Now()

	switch role {
	case model.RoleAdmin:
		if err := s.adminStats(ctx, stats, today); err != nil {
			return nil, err
		}
	case model.RoleDoctor:
		if err := s.doctorStats(ctx, stats, today, userID); err != nil {
			return nil, err
		}
	case model.RoleNurse:
		if err := s.fill(ctx, stats, countActiveAdmissions, bedTotals); err != nil {
			return nil, err
		}
	case model.RoleReceptionist:
		appts, err := s.repo.CountAppointmentsOn(ctx, today, 0)
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("failed to load stats: %w", err))
		}
		stats.TodayAppointments = &appts
		if err := s.fill(ctx, stats, countActiveAdmissions, countUnpaidBills); err != nil {
			return nil, err
		}
	case model.RoleLab:
		pending, err := s.repo.CountLabTestsByStatus(ctx, model.LabStatusRequested, 0)
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("failed to load stats: %w", err))
		}
		stats.PendingLabTests = &pending
	case model.RolePharmacist:
		if err := s.pharmacyStats(ctx, stats); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.Forbidden("unknown role")
	}

	return stats, nil
}

type filler func(ctx context.Context, repo repository.StatsRepository, stats *model.DashboardStats) error

func (s *Service) fill(ctx context.Context, stats *model.DashboardStats, fillers ...filler) error {
	for _, f := range fillers {
		if err := f(ctx, s.repo, stats); err != nil {
			return apperrors.Internal(fmt.Errorf("failed to load stats: %w", err))
		}
	}
	return nil
}

func (s *Service) adminStats(ctx context.Context, stats *model.DashboardStats, today time.Time) error {
	patients, err := s.repo.CountPatients(ctx)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to load stats: %w", err))
	}
	staff, err := s.repo.CountUsers(ctx)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to load stats: %w", err))
	}
	appts, err := s.repo.CountAppointmentsOn(ctx, today, 0)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to load stats: %w", err))
	}
	stats.TotalPatients = &patients
	stats.TotalStaff = &staff
	stats.TodayAppointments = &appts
	return s.fill(ctx, stats, countActiveAdmissions, bedTotals, countUnpaidBills)
}

func (s *Service) doctorStats(ctx context.Context, stats *model.DashboardStats, today time.Time, doctorID int64) error {
	appts, err := s.repo.CountAppointmentsOn(ctx, today, doctorID)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to load stats: %w", err))
	}
	pendingLabs, err := s.repo.CountLabTestsByStatus(ctx, model.LabStatusRequested, doctorID)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to load stats: %w", err))
	}
	stats.TodayAppointments = &appts
	stats.PendingLabTests = &pendingLabs
	return nil
}

func (s *Service) pharmacyStats(ctx context.Context, stats *model.DashboardStats) error {
	lowStock, err := s.repo.CountLowStockMedicines(ctx)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to load stats: %w", err))
	}
	expiring, err := s.repo.CountExpiringMedicines(ctx, model.ExpiringSoonWindow)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to load stats: %w", err))
	}
	pendingDispense, err := s.repo.CountPrescriptionsByStatus(ctx, model.PrescriptionStatusPending)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to load stats: %w", err))
	}
	stats.LowStockMedicines = &lowStock
	stats.ExpiringMedicines = &expiring
	stats.PendingDispense = &pendingDispense
	return nil
}

func countActiveAdmissions(ctx context.Context, repo repository.StatsRepository, stats *model.DashboardStats) error {
	n, err := repo.CountActiveAdmissions(ctx)
	if err != nil {
		return err
	}
	stats.ActiveAdmissions = &n
	return nil
}

func countUnpaidBills(ctx context.Context, repo repository.StatsRepository, stats *model.DashboardStats) error {
	n, err := repo.CountBillsByStatus(ctx, model.BillStatusUnpaid)
	if err != nil {
		return err
	}
	stats.UnpaidBills = &n
	return nil
}

func bedTotals(ctx context.Context, repo repository.StatsRepository, stats *model.DashboardStats) error {
	occupied, total, err := repo.BedTotals(ctx)
	if err != nil {
		return err
	}
	stats.OccupiedBeds = &occupied
	stats.TotalBeds = &total
	return nil
}
