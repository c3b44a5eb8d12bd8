package numerator

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corenum "shopledger/internal/core/numerator"
	"shopledger/internal/infrastructure/storage/postgres"
)

type stubRow struct {
	val int64
	err error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if p, ok := dest[0].(*int64); ok {
		*p = r.val
	}
	return nil
}

type stubQuerier struct {
	row      stubRow
	execErr  error
	lastSQL  string
	lastArgs []any
}

func (q *stubQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.lastSQL = sql
	q.lastArgs = args
	return pgconn.CommandTag{}, q.execErr
}

func (q *stubQuerier) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (q *stubQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL = sql
	q.lastArgs = args
	return q.row
}

type stubProvider struct {
	q *stubQuerier
}

func (p stubProvider) GetQuerier(_ context.Context) postgres.Querier {
	return p.q
}

func TestNext_FormatsNumber(t *testing.T) {
	q := &stubQuerier{row: stubRow{val: 42}}
	svc := NewService(stubProvider{q})

	num, err := svc.Next(context.Background(), corenum.SaleConfig)
	require.NoError(t, err)
	assert.Equal(t, "SALE-000042", num)
	assert.Equal(t, []any{"SALE"}, q.lastArgs)
}

func TestNext_FirstValueIsOne(t *testing.T) {
	q := &stubQuerier{row: stubRow{val: 1}}
	svc := NewService(stubProvider{q})

	num, err := svc.Next(context.Background(), corenum.PurchaseConfig)
	require.NoError(t, err)
	assert.Equal(t, "PUR-000001", num)
}

func TestNext_PropagatesError(t *testing.T) {
	q := &stubQuerier{row: stubRow{err: errors.New("connection reset")}}
	svc := NewService(stubProvider{q})

	_, err := svc.Next(context.Background(), corenum.SaleConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SALE")
}

func TestSetNext_WritesPrecedingValue(t *testing.T) {
	q := &stubQuerier{}
	svc := NewService(stubProvider{q})

	err := svc.SetNext(context.Background(), corenum.SaleConfig, 100)
	require.NoError(t, err)
	require.Len(t, q.lastArgs, 2)
	assert.Equal(t, "SALE", q.lastArgs[0])
	assert.Equal(t, int64(99), q.lastArgs[1])
}
