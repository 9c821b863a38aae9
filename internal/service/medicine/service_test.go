package medicine

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
	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

type fakeMedicineRepo struct {
	repository.MedicineRepository
	medicines map[int64]*model.Medicine
}

func (f *fakeMedicineRepo) Create(ctx context.Context, m *model.Medicine) error {
	m.ID = 1
	f.medicines[m.ID] = m
	return nil
}

func (f *fakeMedicineRepo) Get(ctx context.Context, id int64) (*model.Medicine, error) {
	if m, ok := f.medicines[id]; ok {
		return m, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeMedicineRepo) Update(ctx context.Context, m *model.Medicine) error {
	f.medicines[m.ID] = m
	return nil
}

func (f *fakeMedicineRepo) List(ctx context.Context, filter *model.MedicineFilter) ([]*model.Medicine, error) {
	out := make([]*model.Medicine, 0, len(f.medicines))
	for _, m := range f.medicines {
		out = append(out, m)
	}
	return out, nil
}

func TestAddMedicineClassifications(t *testing.T) {
	repo := &fakeMedicineRepo{medicines: map[int64]*model.Medicine{}}
	svc := NewService(repo, zerolog.Nop())

	soon := time.Now().AddDate(0, 0, 10).Format(dateLayout)
	view, err := svc.AddMedicine(context.Background(), &model.SaveMedicineRequest{
		Name: "Amoxicillin 250mg", BatchNo: "AMX-2206", Quantity: 12,
		ExpiryDate: soon, PurchasePrice: 4.50, SellingPrice: 6.00,
	})

	require.NoError(t, err)
	assert.True(t, view.LowStock)
	assert.True(t, view.ExpiringSoon)
}

func TestAddMedicineHealthyStock(t *testing.T) {
	repo := &fakeMedicineRepo{medicines: map[int64]*model.Medicine{}}
	svc := NewService(repo, zerolog.Nop())

	nextYear := time.Now().AddDate(1, 0, 0).Format(dateLayout)
	view, err := svc.AddMedicine(context.Background(), &model.SaveMedicineRequest{
		Name: "Paracetamol 500mg", Quantity: 500, ExpiryDate: nextYear,
	})

	require.NoError(t, err)
	assert.False(t, view.LowStock)
	assert.False(t, view.ExpiringSoon)
}

func TestAddMedicineNoExpiry(t *testing.T) {
	repo := &fakeMedicineRepo{medicines: map[int64]*model.Medicine{}}
	svc := NewService(repo, zerolog.Nop())

	view, err := svc.AddMedicine(context.Background(), &model.SaveMedicineRequest{
		Name: "Gauze rolls", Quantity: 200,
	})

	require.NoError(t, err)
	assert.Nil(t, view.ExpiryDate)
	assert.False(t, view.ExpiringSoon)
}

func TestAddMedicineBadExpiry(t *testing.T) {
	svc := NewService(&fakeMedicineRepo{medicines: map[int64]*model.Medicine{}}, zerolog.Nop())

	_, err := svc.AddMedicine(context.Background(), &model.SaveMedicineRequest{
		Name: "Paracetamol", ExpiryDate: "12/2026",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateMedicineReclassifies(t *testing.T) {
	repo := &fakeMedicineRepo{medicines: map[int64]*model.Medicine{
		1: {Base: model.Base{ID: 1}, Name: "Insulin", Quantity: 100},
	}}
	svc := NewService(repo, zerolog.Nop())

	view, err := svc.UpdateMedicine(context.Background(), 1, &model.SaveMedicineRequest{
		Name: "Insulin", Quantity: 3,
	})

	require.NoError(t, err)
	assert.True(t, view.LowStock)
}
