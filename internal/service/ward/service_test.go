package ward

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

type fakeWardRepo struct {
	repository.WardRepository
	wards    map[int64]*model.Ward
	occupied map[int64]int
	deleted  bool
}

func (f *fakeWardRepo) Get(ctx context.Context, id int64) (*model.Ward, error) {
	if w, ok := f.wards[id]; ok {
		return w, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeWardRepo) OccupiedBeds(ctx context.Context, wardID int64) (int, error) {
	return f.occupied[wardID], nil
}

func (f *fakeWardRepo) Update(ctx context.Context, w *model.Ward) error {
	f.wards[w.ID] = w
	return nil
}

func (f *fakeWardRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = true
	return nil
}

func TestUpdateWardCannotShrinkBelowOccupancy(t *testing.T) {
	repo := &fakeWardRepo{
		wards:    map[int64]*model.Ward{1: {Base: model.Base{ID: 1}, WardName: "General", TotalBeds: 10}},
		occupied: map[int64]int{1: 6},
	}
	svc := NewService(repo, zerolog.Nop())

	_, err := svc.UpdateWard(context.Background(), 1, &model.SaveWardRequest{WardName: "General", TotalBeds: 5})
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "6 currently occupied")

	// Shrinking down to exactly the occupied count is allowed
	ward, err := svc.UpdateWard(context.Background(), 1, &model.SaveWardRequest{WardName: "General", TotalBeds: 6})
	assert.NoError(t, err)
	assert.Equal(t, 6, ward.TotalBeds)
}

func TestDeleteWardWithActiveAdmissions(t *testing.T) {
	repo := &fakeWardRepo{
		wards:    map[int64]*model.Ward{1: {Base: model.Base{ID: 1}, TotalBeds: 10}},
		occupied: map[int64]int{1: 1},
	}
	svc := NewService(repo, zerolog.Nop())

	err := svc.DeleteWard(context.Background(), 1)
	assert.True(t, apperrors.IsConflict(err))
	assert.False(t, repo.deleted)
}

func TestDeleteEmptyWard(t *testing.T) {
	repo := &fakeWardRepo{
		wards:    map[int64]*model.Ward{1: {Base: model.Base{ID: 1}, TotalBeds: 10}},
		occupied: map[int64]int{},
	}
	svc := NewService(repo, zerolog.Nop())

	assert.NoError(t, svc.DeleteWard(context.Background(), 1))
	assert.True(t, repo.deleted)
}

func TestDeleteUnknownWard(t *testing.T) {
	svc := NewService(&fakeWardRepo{}, zerolog.Nop())
	assert.True(t, apperrors.IsNotFound(svc.DeleteWard(context.Background(), 9)))
}
