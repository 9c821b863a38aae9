package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hospital-api/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess := NewSession(3, "Dr. Asha Verma", "asha@medicore.in", model.RoleDoctor)
	require.NotEmpty(t, sess.ID)
	require.NoError(t, store.Create(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.UserID)
	assert.Equal(t, model.RoleDoctor, got.Role)

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()

	sess := NewSession(1, "Sanjay Rao", "sanjay@medicore.in", model.RoleAdmin)
	require.NoError(t, store.Create(ctx, sess))

	time.Sleep(50 * time.Millisecond)
	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := NewSession(1, "A", "a@medicore.in", model.RoleAdmin)
	b := NewSession(1, "A", "a@medicore.in", model.RoleAdmin)
	assert.NotEqual(t, a.ID, b.ID)
}
