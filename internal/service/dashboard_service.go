package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
)

// DashboardService assembles the read-only overview of an owner's business.
type DashboardService struct {
	cashService *CashService
	lotService  *LotService
	showService *ShowService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(cashService *CashService, lotService *LotService, showService *ShowService) *DashboardService {
	return &DashboardService{
		cashService: cashService,
		lotService:  lotService,
		showService: showService,
	}
}

// Overview loads the cash balance and the lot and show rollups concurrently.
// The first failing load cancels the others.
func (s *DashboardService) Overview(ctx context.Context, ownerID string) (model.Overview, error) {
	overview := model.Overview{OwnerID: ownerID}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		balance, err := s.cashService.GetCashBalance(gctx, ownerID)
		if err != nil {
			return err
		}
		overview.CashBalance = balance.Balance
		return nil
	})

	g.Go(func() error {
		lots, err := s.lotService.ListLotSummaries(gctx, ownerID)
		if err != nil {
			return err
		}
		overview.Lots = lots
		return nil
	})

	g.Go(func() error {
		shows, err := s.showService.ListShowSummaries(gctx, ownerID)
		if err != nil {
			return err
		}
		overview.Shows = shows
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.Overview{}, err
	}
	return overview, nil
}
