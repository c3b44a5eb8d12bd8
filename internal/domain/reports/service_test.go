package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopledger/internal/core/types"
)

// fakeTxManager counts read-only scopes so tests can assert reports
// never run outside one.
type fakeTxManager struct {
	readOnlyCalls int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.readOnlyCalls++
	return fn(ctx)
}

type fakeRepo struct {
	profitLoss *ProfitLossReport
	cashFlow   *CashFlowReport
	dashboard  *Dashboard

	lastProfitLossFilter ProfitLossFilter
}

func (r *fakeRepo) GetProfitLoss(_ context.Context, filter ProfitLossFilter) (*ProfitLossReport, error) {
	r.lastProfitLossFilter = filter
	return r.profitLoss, nil
}

func (r *fakeRepo) GetCashFlow(_ context.Context, _ CashFlowFilter) (*CashFlowReport, error) {
	return r.cashFlow, nil
}

func (r *fakeRepo) GetDashboard(_ context.Context, _ DashboardFilter) (*Dashboard, error) {
	return r.dashboard, nil
}

func TestGetProfitLoss_RunsReadOnly(t *testing.T) {
	repo := &fakeRepo{profitLoss: &ProfitLossReport{Revenue: types.MustMoney("100.00")}}
	txm := &fakeTxManager{}
	svc := NewService(repo, txm)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	report, err := svc.GetProfitLoss(context.Background(), ProfitLossFilter{From: from, To: to})
	require.NoError(t, err)
	assert.Equal(t, "100.00", report.Revenue.StringFixed(2))
	assert.Equal(t, 1, txm.readOnlyCalls)
	assert.Equal(t, from, repo.lastProfitLossFilter.From)
}

func TestGetProfitLoss_DefaultsPeriodToTrailingMonth(t *testing.T) {
	repo := &fakeRepo{profitLoss: &ProfitLossReport{}}
	svc := NewService(repo, &fakeTxManager{})

	_, err := svc.GetProfitLoss(context.Background(), ProfitLossFilter{})
	require.NoError(t, err)
	assert.False(t, repo.lastProfitLossFilter.From.IsZero())
	assert.True(t, repo.lastProfitLossFilter.From.Before(repo.lastProfitLossFilter.To))
}

func TestGetProfitLoss_RejectsInvertedPeriod(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeTxManager{})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetProfitLoss(context.Background(), ProfitLossFilter{From: from, To: to})
	require.Error(t, err)
}

func TestGetCashFlowAndDashboard_RunReadOnly(t *testing.T) {
	repo := &fakeRepo{cashFlow: &CashFlowReport{}, dashboard: &Dashboard{}}
	txm := &fakeTxManager{}
	svc := NewService(repo, txm)

	_, err := svc.GetCashFlow(context.Background(), CashFlowFilter{})
	require.NoError(t, err)
	_, err = svc.GetDashboard(context.Background(), DashboardFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, txm.readOnlyCalls)
}
