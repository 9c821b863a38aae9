package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	"github.com/medicore/hospital-api/internal/session"
	"github.com/medicore/hospital-api/pkg/auth"
	"github.com/medicore/hospital-api/pkg/security"
)

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*model.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func newAuthService(t *testing.T) (*Service, session.Store) {
	t.Helper()
	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*model.User{
		"asha@medicore.in": {
			Base:         model.Base{ID: 3},
			Name:         "Dr. Asha Verma",
			Email:        "asha@medicore.in",
			PasswordHash: hash,
			Role:         model.RoleDoctor,
		},
	}}

	sessions := session.NewMemoryStore(time.Minute)
	jwtSvc := auth.NewJWTService("test-secret", time.Hour, "hospital-api")
	return NewService(users, sessions, hasher, jwtSvc, 3600, zerolog.Nop()), sessions
}

func TestLogin(t *testing.T) {
	svc, sessions := newAuthService(t)

	resp, sess, err := svc.Login(context.Background(), &model.LoginRequest{
		Email: "asha@medicore.in", Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.UserID)
	assert.Equal(t, model.RoleDoctor, resp.Role)
	assert.Equal(t, "/doctor/dashboard", resp.RedirectTo)

	stored, err := sessions.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.UserID)
	assert.Equal(t, "Dr. Asha Verma", stored.Name)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, badUser := svc.Login(context.Background(), &model.LoginRequest{
		Email: "nobody@medicore.in", Password: "correct-horse",
	})
	_, _, badPass := svc.Login(context.Background(), &model.LoginRequest{
		Email: "asha@medicore.in", Password: "wrong",
	})

	require.Error(t, badUser)
	require.Error(t, badPass)
	assert.Equal(t, badUser.Error(), badPass.Error())
	assert.Equal(t, "invalid email or password", badUser.Error())
}

func TestLogoutRemovesSession(t *testing.T) {
	svc, sessions := newAuthService(t)

	_, sess, err := svc.Login(context.Background(), &model.LoginRequest{
		Email: "asha@medicore.in", Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), sess.ID))
	_, err = sessions.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestIssueServiceToken(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.IssueServiceToken(context.Background(), &model.TokenRequest{
		Email: "asha@medicore.in", Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)

	jwtSvc := auth.NewJWTService("test-secret", time.Hour, "hospital-api")
	claims, err := jwtSvc.Validate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, string(model.RoleDoctor), claims.Role)
}
