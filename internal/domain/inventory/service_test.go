package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	"shopledger/internal/core/types"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo guards its maps with a mutex so tests can drive the service
// from parallel goroutines. AdjustQuantity checks and applies the delta
// under the same lock, mirroring the conditional UPDATE the postgres
// repo uses.
type fakeRepo struct {
	mu        sync.Mutex
	records   map[id.ID]*Record
	movements []Movement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[id.ID]*Record)}
}

func (r *fakeRepo) Create(_ context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.ProductID == rec.ProductID && existing.ShopID == rec.ShopID {
			return apperror.NewDuplicateRecord(rec.ProductID.String(), rec.ShopID.String())
		}
	}
	cp := *rec
	r.records[rec.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, recordID id.ID) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[recordID]
	if !ok {
		return nil, apperror.NewNotFound("inventory record", recordID)
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRepo) GetByProductShop(_ context.Context, productID, shopID id.ID) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ProductID == productID && rec.ShopID == shopID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("inventory record", productID)
}

func (r *fakeRepo) List(_ context.Context, _ RecordFilter) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *fakeRepo) AdjustQuantity(_ context.Context, recordID id.ID, delta int64) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[recordID]
	if !ok || rec.Quantity+delta < 0 {
		return 0, 0, apperror.NewNotFound("inventory record", recordID)
	}
	prev := rec.Quantity
	rec.Quantity += delta
	rec.LastUpdated = time.Now().UTC()
	return prev, rec.Quantity, nil
}

func (r *fakeRepo) SetQuantity(_ context.Context, recordID id.ID, target int64) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[recordID]
	if !ok {
		return 0, 0, apperror.NewNotFound("inventory record", recordID)
	}
	prev := rec.Quantity
	rec.Quantity = target
	rec.LastUpdated = time.Now().UTC()
	return prev, rec.Quantity, nil
}

func (r *fakeRepo) UpdatePrices(_ context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.records[rec.ID]
	if !ok {
		return apperror.NewNotFound("inventory record", rec.ID)
	}
	stored.CostPrice = rec.CostPrice
	stored.SellingPrice = rec.SellingPrice
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, recordID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[recordID]; !ok {
		return apperror.NewNotFound("inventory record", recordID)
	}
	delete(r.records, recordID)
	return nil
}

func (r *fakeRepo) InsertMovement(_ context.Context, mv *Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, *mv)
	return nil
}

func (r *fakeRepo) ListMovements(_ context.Context, _ MovementFilter) ([]Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.movements, nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, fakeTxManager{}, nil)
}

func seedRecord(t *testing.T, s *Service, qty int64) *Record {
	t.Helper()
	rec, err := s.CreateRecord(context.Background(), CreateRecordInput{
		ProductID:       id.New(),
		ShopID:          id.New(),
		InitialQuantity: qty,
		CostPrice:       types.MustMoney("10.00"),
		SellingPrice:    types.MustMoney("15.50"),
	})
	require.NoError(t, err)
	return rec
}

func TestCreateRecord_DuplicatePair(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rec := seedRecord(t, svc, 5)

	_, err := svc.CreateRecord(context.Background(), CreateRecordInput{
		ProductID:    rec.ProductID,
		ShopID:       rec.ShopID,
		CostPrice:    types.MustMoney("1"),
		SellingPrice: types.MustMoney("2"),
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicateRecord, appErr.Code)
}

func TestApplyMovement_InIncreasesQuantity(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rec := seedRecord(t, svc, 10)

	mv, err := svc.ApplyMovement(context.Background(), MovementInput{
		Type:      MovementIn,
		Quantity:  7,
		Reason:    "Restock",
		ProductID: rec.ProductID,
		ShopID:    rec.ShopID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), mv.PreviousQty)
	assert.Equal(t, int64(17), mv.NewQty)
	assert.Equal(t, int64(7), mv.Quantity)

	got, err := svc.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(17), got.Quantity)
}

func TestApplyMovement_OutInsufficientStock(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rec := seedRecord(t, svc, 3)

	_, err := svc.ApplyMovement(context.Background(), MovementInput{
		Type:      MovementOut,
		Quantity:  5,
		Reason:    "Sale",
		ProductID: rec.ProductID,
		ShopID:    rec.ShopID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// No partial effects: quantity unchanged, ledger empty.
	got, err := svc.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Quantity)
	assert.Empty(t, repo.movements)
}

func TestApplyMovement_OutExactBalanceReachesZero(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rec := seedRecord(t, svc, 5)

	mv, err := svc.ApplyMovement(context.Background(), MovementInput{
		Type:      MovementOut,
		Quantity:  5,
		Reason:    "Sale",
		ProductID: rec.ProductID,
		ShopID:    rec.ShopID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), mv.NewQty)
}

func TestApplyMovement_ConcurrentOutsOneWinner(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rec := seedRecord(t, svc, 5)

	// Two simultaneous removals of 3 against a balance of 5. The
	// conditional decrement admits exactly one; the other must fail
	// without touching the record or the ledger.
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ApplyMovement(context.Background(), MovementInput{
				Type:      MovementOut,
				Quantity:  3,
				Reason:    "Sale",
				ProductID: rec.ProductID,
				ShopID:    rec.ShopID,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, insufficient int
	for err := range errs {
		if err == nil {
			successes++
			continue
		}
		require.True(t, apperror.IsInsufficientStock(err))
		insufficient++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, insufficient)

	got, err := svc.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Quantity)
	assert.Len(t, repo.movements, 1)
}

func TestApplyMovement_AdjustmentOverwrites(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rec := seedRecord(t, svc, 42)

	mv, err := svc.ApplyMovement(context.Background(), MovementInput{
		Type:      MovementAdjustment,
		Quantity:  0,
		Reason:    "Stocktake correction",
		ProductID: rec.ProductID,
		ShopID:    rec.ShopID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), mv.PreviousQty)
	assert.Equal(t, int64(0), mv.NewQty)
}

func TestApplyMovement_RejectsNegativeAdjustmentTarget(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.ApplyMovement(context.Background(), MovementInput{
		Type:      MovementAdjustment,
		Quantity:  -1,
		ProductID: id.New(),
		ShopID:    id.New(),
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestApplyMovement_RejectsZeroQuantityDelta(t *testing.T) {
	svc := newTestService(newFakeRepo())

	for _, mt := range []MovementType{MovementIn, MovementOut, MovementReturn, MovementDamage} {
		_, err := svc.ApplyMovement(context.Background(), MovementInput{
			Type:      mt,
			Quantity:  0,
			ProductID: id.New(),
			ShopID:    id.New(),
		})
		require.Error(t, err, "type %s", mt)
	}
}

func TestApplyMovement_UnknownRecord(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.ApplyMovement(context.Background(), MovementInput{
		Type:      MovementIn,
		Quantity:  1,
		ProductID: id.New(),
		ShopID:    id.New(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestApplyMovement_DamageDecreases(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rec := seedRecord(t, svc, 10)

	mv, err := svc.ApplyMovement(context.Background(), MovementInput{
		Type:      MovementDamage,
		Quantity:  4,
		Reason:    "Water damage",
		ProductID: rec.ProductID,
		ShopID:    rec.ShopID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), mv.NewQty)
}

func TestTransfer_MovesBetweenShops(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	src := seedRecord(t, svc, 20)
	dstShop := id.New()

	dst, err := svc.CreateRecord(context.Background(), CreateRecordInput{
		ProductID:       src.ProductID,
		ShopID:          dstShop,
		InitialQuantity: 2,
		CostPrice:       src.CostPrice,
		SellingPrice:    src.SellingPrice,
	})
	require.NoError(t, err)

	out, in, err := svc.Transfer(context.Background(), TransferInput{
		ProductID: src.ProductID,
		SrcShopID: src.ShopID,
		DstShopID: dstShop,
		Quantity:  8,
		Reason:    "Rebalance",
	})
	require.NoError(t, err)
	assert.Equal(t, MovementTransfer, out.Type)
	assert.Equal(t, int64(12), out.NewQty)
	assert.Equal(t, MovementIn, in.Type)
	assert.Equal(t, int64(10), in.NewQty)

	gotSrc, _ := svc.Get(context.Background(), src.ID)
	gotDst, _ := svc.Get(context.Background(), dst.ID)
	assert.Equal(t, int64(12), gotSrc.Quantity)
	assert.Equal(t, int64(10), gotDst.Quantity)
}

func TestTransfer_CreatesDestinationRecord(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	src := seedRecord(t, svc, 20)
	dstShop := id.New()

	_, in, err := svc.Transfer(context.Background(), TransferInput{
		ProductID: src.ProductID,
		SrcShopID: src.ShopID,
		DstShopID: dstShop,
		Quantity:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), in.NewQty)

	dst, err := svc.GetByProductShop(context.Background(), src.ProductID, dstShop)
	require.NoError(t, err)
	assert.Equal(t, int64(5), dst.Quantity)
	assert.True(t, dst.CostPrice.Equal(src.CostPrice))
	assert.True(t, dst.SellingPrice.Equal(src.SellingPrice))
}

func TestTransfer_InsufficientSourceStock(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	src := seedRecord(t, svc, 3)

	_, _, err := svc.Transfer(context.Background(), TransferInput{
		ProductID: src.ProductID,
		SrcShopID: src.ShopID,
		DstShopID: id.New(),
		Quantity:  4,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
}

func TestTransfer_SameShopRejected(t *testing.T) {
	svc := newTestService(newFakeRepo())
	shop := id.New()

	_, _, err := svc.Transfer(context.Background(), TransferInput{
		ProductID: id.New(),
		SrcShopID: shop,
		DstShopID: shop,
		Quantity:  1,
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestMovementLedger_RecordsSnapshots(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rec := seedRecord(t, svc, 0)

	steps := []struct {
		in   MovementInput
		prev int64
		next int64
	}{
		{MovementInput{Type: MovementIn, Quantity: 10, ProductID: rec.ProductID, ShopID: rec.ShopID}, 0, 10},
		{MovementInput{Type: MovementOut, Quantity: 3, ProductID: rec.ProductID, ShopID: rec.ShopID}, 10, 7},
		{MovementInput{Type: MovementReturn, Quantity: 1, ProductID: rec.ProductID, ShopID: rec.ShopID}, 7, 8},
		{MovementInput{Type: MovementAdjustment, Quantity: 20, ProductID: rec.ProductID, ShopID: rec.ShopID}, 8, 20},
	}
	for _, step := range steps {
		mv, err := svc.ApplyMovement(context.Background(), step.in)
		require.NoError(t, err)
		assert.Equal(t, step.prev, mv.PreviousQty)
		assert.Equal(t, step.next, mv.NewQty)
	}

	mvs, err := svc.ListMovements(context.Background(), MovementFilter{})
	require.NoError(t, err)
	require.Len(t, mvs, len(steps))
}
