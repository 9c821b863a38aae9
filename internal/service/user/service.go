package user

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-api/internal/email"
	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	"github.com/medicore/hospital-api/internal/repository/postgres"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
	"github.com/medicore/hospital-api/pkg/security"
)

// UserService manages staff accounts
type UserService interface {
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, req *model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id, actorID int64) error
	ListUsers(ctx context.Context, filter *model.UserFilter) ([]*model.User, error)
	ListDoctors(ctx context.Context) ([]*model.User, error)
}

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
	mailer email.Service
	logger zerolog.Logger
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher, mailer email.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		mailer: mailer,
		logger: logger,
	}
}

func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	taken, err := s.repo.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to check email: %w", err))
	}
	if taken {
		return nil, apperrors.Conflict("email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("password does not meet requirements")
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.Role(req.Role),
		Department:   req.Department,
		Phone:        req.Phone,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	// Welcome mail is best effort; account creation already succeeded
	if err := s.mailer.SendWelcome(ctx, user.Email, user.Name, user.Role.DisplayName()); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to send welcome email")
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("staff account created")
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load user: %w", err))
	}
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int64, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load user: %w", err))
	}

	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.repo.EmailTaken(ctx, *req.Email, id)
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("failed to check email: %w", err))
		}
		if taken {
			return nil, apperrors.Conflict("email already registered")
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = model.Role(*req.Role)
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Password != nil && *req.Password != "" {
		if req.ConfirmPassword == nil || *req.ConfirmPassword != *req.Password {
			return nil, apperrors.Validation("passwords do not match")
		}
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, apperrors.Validation("password does not meet requirements")
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update user: %w", err))
	}
	return user, nil
}

// DeleteUser removes a staff account. Users cannot delete themselves.
func (s *Service) DeleteUser(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return apperrors.Conflict("cannot delete your own account")
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		if postgres.IsNoRows(err) {
			return apperrors.NotFound("user")
		}
		return apperrors.Internal(fmt.Errorf("failed to load user: %w", err))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to delete user: %w", err))
	}
	s.logger.Info().Int64("user_id", id).Int64("deleted_by", actorID).Msg("staff account deleted")
	return nil
}

func (s *Service) ListUsers(ctx context.Context, filter *model.UserFilter) ([]*model.User, error) {
	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list users: %w", err))
	}
	return users, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.User, error) {
	doctors, err := s.repo.ListByRole(ctx, model.RoleDoctor)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list doctors: %w", err))
	}
	return doctors, nil
}
