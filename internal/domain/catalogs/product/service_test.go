package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	corenum "shopledger/internal/core/numerator"
	"shopledger/internal/core/types"
	"shopledger/internal/domain"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	byID map[id.ID]*Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[id.ID]*Product)}
}

func (r *fakeRepo) Create(_ context.Context, p *Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, entityID id.ID) (*Product, error) {
	p, ok := r.byID[entityID]
	if !ok {
		return nil, apperror.NewNotFound("product", entityID)
	}
	return p, nil
}

func (r *fakeRepo) GetByCode(_ context.Context, code string) (*Product, error) {
	for _, p := range r.byID {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", code)
}

func (r *fakeRepo) GetByBarcode(_ context.Context, barcode string) (*Product, error) {
	for _, p := range r.byID {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", barcode)
}

func (r *fakeRepo) Update(_ context.Context, p *Product) error {
	if _, ok := r.byID[p.ID]; !ok {
		return apperror.NewNotFound("product", p.ID)
	}
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) SetDeletionMark(_ context.Context, entityID id.ID, marked bool) error {
	p, ok := r.byID[entityID]
	if !ok {
		return apperror.NewNotFound("product", entityID)
	}
	p.DeletionMark = marked
	return nil
}

func (r *fakeRepo) List(_ context.Context, f domain.ListFilter) (domain.ListResult[*Product], error) {
	var items []*Product
	for _, p := range r.byID {
		if p.DeletionMark && !f.IncludeDeleted {
			continue
		}
		items = append(items, p)
	}
	return domain.ListResult[*Product]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *fakeRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, err := r.GetByCode(context.Background(), code)
	if apperror.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, corenum.NewMock(), fakeTxManager{})
}

func TestCreate_AssignsCodeWhenEmpty(t *testing.T) {
	svc := newTestService(newFakeRepo())
	p := NewProduct("", "Instant Coffee 200g", UnitPiece)
	p.DefaultPrice = types.MustMoney("8.99")

	require.NoError(t, svc.Create(context.Background(), p))
	assert.Equal(t, "PRD-000001", p.Code)
}

func TestCreate_KeepsProvidedCode(t *testing.T) {
	svc := newTestService(newFakeRepo())
	p := NewProduct("COFFEE-200", "Instant Coffee 200g", UnitPiece)

	require.NoError(t, svc.Create(context.Background(), p))
	assert.Equal(t, "COFFEE-200", p.Code)
}

func TestCreate_RejectsDuplicateBarcode(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	first := NewProduct("", "Milk 1L", UnitPiece)
	first.Barcode = "4006381333931"
	require.NoError(t, svc.Create(context.Background(), first))

	second := NewProduct("", "Milk 2L", UnitPiece)
	second.Barcode = "4006381333931"
	err := svc.Create(context.Background(), second)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreate_RejectsInvalidUnit(t *testing.T) {
	svc := newTestService(newFakeRepo())
	p := NewProduct("", "Bulk Rice", Unit("sack"))

	err := svc.Create(context.Background(), p)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestDelete_IsSoft(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	p := NewProduct("", "Soap Bar", UnitPiece)
	require.NoError(t, svc.Create(context.Background(), p))

	require.NoError(t, svc.Delete(context.Background(), p.ID))

	// The row survives with a mark; default listings hide it.
	got, err := svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, got.DeletionMark)

	res, err := svc.List(context.Background(), domain.DefaultListFilter())
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	res, err = svc.List(context.Background(), domain.ListFilter{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
}

func TestGetByBarcode(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	p := NewProduct("", "Juice 1L", UnitPiece)
	p.Barcode = "5901234123457"
	require.NoError(t, svc.Create(context.Background(), p))

	got, err := svc.GetByBarcode(context.Background(), "5901234123457")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.GetByBarcode(context.Background(), "0000000000000")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
