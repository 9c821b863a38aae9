package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "hospital-api")

	token, err := svc.Generate(3, "asha@medicore.in", "doctor")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "asha@medicore.in", claims.Email)
	assert.Equal(t, "doctor", claims.Role)
	assert.Equal(t, "hospital-api", claims.Issuer)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, "hospital-api")

	token, err := svc.Generate(3, "asha@medicore.in", "doctor")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, "hospital-api")
	verifier := NewJWTService("secret-b", time.Hour, "hospital-api")

	token, err := issuer.Generate(3, "asha@medicore.in", "doctor")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "hospital-api")

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
