package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	"github.com/medicore/hospital-api/internal/repository/postgres"
	"github.com/medicore/hospital-api/internal/session"
	"github.com/medicore/hospital-api/pkg/auth"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
	"github.com/medicore/hospital-api/pkg/security"
)

// AuthService authenticates staff and manages their sessions
type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, *session.Session, error)
	Logout(ctx context.Context, sessionID string) error
	IssueServiceToken(ctx context.Context, req *model.TokenRequest) (*model.TokenResponse, error)
}

type Service struct {
	userRepo repository.UserRepository
	sessions session.Store
	hasher   security.PasswordHasher
	jwt      auth.JWTService
	tokenTTL int
	logger   zerolog.Logger
}

func NewService(userRepo repository.UserRepository, sessions session.Store, hasher security.PasswordHasher, jwt auth.JWTService, tokenExpirySeconds int, logger zerolog.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		sessions: sessions,
		hasher:   hasher,
		jwt:      jwt,
		tokenTTL: tokenExpirySeconds,
		logger:   logger,
	}
}

// Login verifies credentials and opens a session. Failures are reported
// with the same message regardless of which check failed.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, *session.Session, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, nil, err
	}

	sess := session.NewSession(user.ID, user.Name, user.Email, user.Role)
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, nil, apperrors.Internal(fmt.Errorf("failed to create session: %w", err))
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return &model.LoginResponse{
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		RedirectTo: model.DashboardRoute(user.Role),
	}, sess, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to delete session: %w", err))
	}
	return nil
}

// IssueServiceToken exchanges credentials for a bearer token used by
// non-browser clients.
func (s *Service) IssueServiceToken(ctx context.Context, req *model.TokenRequest) (*model.TokenResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.tokenTTL,
	}, nil
}

func (s *Service) authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load user: %w", err))
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	return user, nil
}
