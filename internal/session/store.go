package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/medicore/hospital-api/internal/model"
)

// CookieName is the session cookie set on login
const CookieName = "hms_session"

// DefaultTTL is how long an idle session survives
const DefaultTTL = 8 * time.Hour

var ErrNotFound = errors.New("session not found")

// Session is the server-side record behind an opaque cookie value
type Session struct {
	ID        string     `json:"id"`
	UserID    int64      `json:"user_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

// Store persists sessions keyed by their opaque id
type Store interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// NewSession builds a session with a fresh opaque id
func NewSession(userID int64, name, email string, role model.Role) *Session {
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
}

type memoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore returns an in-process store for single-node deployments
func NewMemoryStore(ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &memoryStore{
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

func (s *memoryStore) Create(_ context.Context, sess *Session) error {
	s.cache.SetDefault(sess.ID, sess)
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*Session, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	sess, ok := v.(*Session)
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
