package reports

import (
	"context"
	"fmt"
	"time"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/tx"
)

// Service provides report generation. Every report runs inside a
// read-only transaction so multi-query reports see one consistent
// snapshot.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
}

// NewService creates a reports service.
func NewService(repo Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

func normalizePeriod(from, to *time.Time) error {
	if from.IsZero() {
		*from = time.Now().UTC().AddDate(0, -1, 0)
	}
	if to.IsZero() {
		*to = time.Now().UTC()
	}
	if from.After(*to) {
		return apperror.NewValidation("from must be before to").
			WithDetail("from", from.Format(time.RFC3339)).
			WithDetail("to", to.Format(time.RFC3339))
	}
	return nil
}

// GetProfitLoss generates the profit and loss report. The period
// defaults to the trailing month.
func (s *Service) GetProfitLoss(ctx context.Context, filter ProfitLossFilter) (*ProfitLossReport, error) {
	if err := normalizePeriod(&filter.From, &filter.To); err != nil {
		return nil, err
	}
	var report *ProfitLossReport
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		report, err = s.repo.GetProfitLoss(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get profit loss report: %w", err)
	}
	return report, nil
}

// GetCashFlow generates the cash flow report.
func (s *Service) GetCashFlow(ctx context.Context, filter CashFlowFilter) (*CashFlowReport, error) {
	if err := normalizePeriod(&filter.From, &filter.To); err != nil {
		return nil, err
	}
	var report *CashFlowReport
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		report, err = s.repo.GetCashFlow(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get cash flow report: %w", err)
	}
	return report, nil
}

// GetDashboard returns the operational snapshot.
func (s *Service) GetDashboard(ctx context.Context, filter DashboardFilter) (*Dashboard, error) {
	if filter.LowStockThreshold <= 0 {
		filter.LowStockThreshold = 10
	}
	var report *Dashboard
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		report, err = s.repo.GetDashboard(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get dashboard: %w", err)
	}
	return report, nil
}
