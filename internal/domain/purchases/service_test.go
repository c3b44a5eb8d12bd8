package purchases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	corenum "shopledger/internal/core/numerator"
	"shopledger/internal/core/types"
	"shopledger/internal/domain/inventory"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePurchaseRepo struct {
	purchases map[id.ID]*Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[id.ID]*Purchase)}
}

func (r *fakePurchaseRepo) Create(_ context.Context, p *Purchase) error {
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) GetByID(_ context.Context, purchaseID id.ID) (*Purchase, error) {
	p, ok := r.purchases[purchaseID]
	if !ok {
		return nil, apperror.NewNotFound("purchase", purchaseID)
	}
	cp := *p
	return &cp, nil
}

func (r *fakePurchaseRepo) List(_ context.Context, _ Filter) ([]Purchase, error) {
	out := make([]Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePurchaseRepo) MarkReceived(_ context.Context, purchaseID id.ID, receivedAt time.Time) error {
	p, ok := r.purchases[purchaseID]
	if !ok || p.Status != StatusPending {
		return apperror.NewNotFound("purchase", purchaseID)
	}
	p.Status = StatusCompleted
	p.ReceivedAt = &receivedAt
	return nil
}

// fakeStock is an in-memory inventory surface keyed by (product, shop).
type fakeStock struct {
	records  map[[2]id.ID]*inventory.Record
	applied  []inventory.MovementInput
	applyErr error
}

func newFakeStock() *fakeStock {
	return &fakeStock{records: make(map[[2]id.ID]*inventory.Record)}
}

func (f *fakeStock) key(productID, shopID id.ID) [2]id.ID {
	return [2]id.ID{productID, shopID}
}

func (f *fakeStock) ApplyMovement(_ context.Context, in inventory.MovementInput) (*inventory.Movement, error) {
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	rec, ok := f.records[f.key(in.ProductID, in.ShopID)]
	if !ok {
		return nil, apperror.NewNotFound("inventory record", in.ProductID)
	}
	prev := rec.Quantity
	rec.Quantity += in.Type.Direction() * in.Quantity
	f.applied = append(f.applied, in)
	return &inventory.Movement{
		ID: id.New(), Type: in.Type, Quantity: in.Quantity,
		PreviousQty: prev, NewQty: rec.Quantity,
		ProductID: in.ProductID, ShopID: in.ShopID,
	}, nil
}

func (f *fakeStock) GetByProductShop(_ context.Context, productID, shopID id.ID) (*inventory.Record, error) {
	rec, ok := f.records[f.key(productID, shopID)]
	if !ok {
		return nil, apperror.NewNotFound("inventory record", productID)
	}
	return rec, nil
}

func (f *fakeStock) CreateRecord(_ context.Context, in inventory.CreateRecordInput) (*inventory.Record, error) {
	rec := &inventory.Record{
		ID:           id.New(),
		ProductID:    in.ProductID,
		ShopID:       in.ShopID,
		Quantity:     in.InitialQuantity,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
	}
	f.records[f.key(in.ProductID, in.ShopID)] = rec
	return rec, nil
}

func newTestService(repo *fakePurchaseRepo, stock *fakeStock) *Service {
	return NewService(repo, stock, corenum.NewMock(), fakeTxManager{})
}

func validInput() CreatePurchaseInput {
	return CreatePurchaseInput{
		ShopID:     id.New(),
		SupplierID: id.New(),
		CreatedBy:  id.New(),
		Items: []CreateItemInput{
			{ProductID: id.New(), Quantity: 10, UnitPrice: types.MustMoney("100.00"), Discount: types.Zero()},
		},
	}
}

func TestCreatePurchase_AppliesVAT(t *testing.T) {
	repo := newFakePurchaseRepo()
	stock := newFakeStock()
	svc := newTestService(repo, stock)

	p, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "PUR-000001", p.Number)
	assert.Equal(t, StatusPending, p.Status)
	assert.Equal(t, "1000.00", p.TotalAmount.StringFixed(2))
	// 16.5% VAT on top of the net total.
	assert.Equal(t, "165.00", p.TaxAmount.StringFixed(2))
	assert.Equal(t, "1165.00", p.FinalAmount.StringFixed(2))

	// Ordering has no inventory effect.
	assert.Empty(t, stock.applied)
}

func TestCreatePurchase_KeepsDeliveryDate(t *testing.T) {
	repo := newFakePurchaseRepo()
	stock := newFakeStock()
	svc := newTestService(repo, stock)

	promised := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	in := validInput()
	in.DeliveryDate = &promised

	p, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, p.DeliveryDate)
	assert.Equal(t, promised, *p.DeliveryDate)
	// The promised date is independent of the actual receipt time.
	assert.Nil(t, p.ReceivedAt)
}

func TestReceivePurchase_PostsStockAndCompletes(t *testing.T) {
	repo := newFakePurchaseRepo()
	stock := newFakeStock()
	svc := newTestService(repo, stock)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	received, err := svc.Receive(context.Background(), created.ID, id.New())
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, received.Status)
	require.NotNil(t, received.ReceivedAt)

	require.Len(t, stock.applied, 1)
	mv := stock.applied[0]
	assert.Equal(t, inventory.MovementIn, mv.Type)
	assert.Equal(t, "Purchase received", mv.Reason)
	assert.Equal(t, created.ID.String(), mv.Reference)

	item := created.Items[0]
	rec, err := stock.GetByProductShop(context.Background(), item.ProductID, created.ShopID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), rec.Quantity)
	assert.True(t, rec.CostPrice.Equal(item.UnitPrice))
}

func TestReceivePurchase_ExistingRecordKeepsPrices(t *testing.T) {
	repo := newFakePurchaseRepo()
	stock := newFakeStock()
	svc := newTestService(repo, stock)

	in := validInput()
	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	existing, err := stock.CreateRecord(context.Background(), inventory.CreateRecordInput{
		ProductID:       in.Items[0].ProductID,
		ShopID:          in.ShopID,
		InitialQuantity: 5,
		CostPrice:       types.MustMoney("90.00"),
		SellingPrice:    types.MustMoney("120.00"),
	})
	require.NoError(t, err)

	_, err = svc.Receive(context.Background(), created.ID, id.New())
	require.NoError(t, err)

	assert.Equal(t, int64(15), existing.Quantity)
	assert.Equal(t, "90.00", existing.CostPrice.StringFixed(2))
}

func TestReceivePurchase_OnlyPendingReceivable(t *testing.T) {
	repo := newFakePurchaseRepo()
	stock := newFakeStock()
	svc := newTestService(repo, stock)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Receive(context.Background(), created.ID, id.New())
	require.NoError(t, err)

	// Second receipt conflicts, and posts nothing.
	_, err = svc.Receive(context.Background(), created.ID, id.New())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePurchaseNotReceivable, appErr.Code)
	assert.Len(t, stock.applied, 1)
}

func TestReceivePurchase_UnknownPurchase(t *testing.T) {
	svc := newTestService(newFakePurchaseRepo(), newFakeStock())

	_, err := svc.Receive(context.Background(), id.New(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreatePurchase_SequentialNumbers(t *testing.T) {
	svc := newTestService(newFakePurchaseRepo(), newFakeStock())

	first, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "PUR-000001", first.Number)
	assert.Equal(t, "PUR-000002", second.Number)
}

func TestCreatePurchase_Validation(t *testing.T) {
	svc := newTestService(newFakePurchaseRepo(), newFakeStock())

	cases := []struct {
		name string
		in   CreatePurchaseInput
	}{
		{"no supplier", CreatePurchaseInput{ShopID: id.New(),
			Items: []CreateItemInput{{ProductID: id.New(), Quantity: 1, UnitPrice: types.MustMoney("1")}}}},
		{"no items", CreatePurchaseInput{ShopID: id.New(), SupplierID: id.New()}},
		{"zero quantity", CreatePurchaseInput{ShopID: id.New(), SupplierID: id.New(),
			Items: []CreateItemInput{{ProductID: id.New(), Quantity: 0, UnitPrice: types.MustMoney("1")}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}
