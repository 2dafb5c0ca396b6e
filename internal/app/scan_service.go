package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/staletick/internal/core/orderdate"
	"github.com/example/staletick/internal/models"
	"github.com/example/staletick/internal/ports/primary"
	"github.com/example/staletick/internal/ports/secondary"
)

const (
	// maxScanPages is the hard ceiling on order-list pages per scan.
	maxScanPages = 10

	// pageDelay is the pause between page fetches, respecting the order
	// source's informal rate limits.
	pageDelay = time.Second
)

// ScanServiceImpl discovers stale paid orders: it paginates the order
// source, applies the age cutoff and the sent-ledger dedup filter, and
// collects a bounded batch of candidate IDs.
type ScanServiceImpl struct {
	orders   secondary.OrderSource
	settings primary.SettingsService
	account  secondary.Account

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// NewScanService creates a new ScanService with injected dependencies.
func NewScanService(orders secondary.OrderSource, settings primary.SettingsService, account secondary.Account) *ScanServiceImpl {
	return &ScanServiceImpl{
		orders:   orders,
		settings: settings,
		account:  account,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Scan returns at most maxBatch IDs of paid orders older than maxAgeHours
// that are not yet in the sent ledger, in discovery order.
//
// Pagination stops early once a page's oldest parseable order is still
// newer than the cutoff: the source is assumed to list orders newest
// first, so later pages cannot contain older orders. If that ordering
// guarantee ever breaks, the scan may miss eligible orders; the heuristic
// is kept regardless to bound work against a source with no query API.
func (s *ScanServiceImpl) Scan(ctx context.Context, maxAgeHours, maxBatch int) ([]string, error) {
	if maxAgeHours < 1 {
		return nil, fmt.Errorf("maxAgeHours must be positive, got %d", maxAgeHours)
	}
	if maxBatch < 1 {
		return nil, fmt.Errorf("maxBatch must be positive, got %d", maxBatch)
	}

	cutoff := s.now().Add(-time.Duration(maxAgeHours) * time.Hour).Unix()
	sent := s.settings.Current()

	var candidates []string
	cursor := ""
	pageCount := 0

	for len(candidates) < maxBatch && pageCount < maxScanPages {
		page, err := s.orders.ListOrders(ctx, cursor, models.OrderStatusPaid, s.account.Locale)
		pageCount++
		if err != nil {
			slog.Error("failed to fetch order page, stopping scan", "page", pageCount, "error", err)
			break
		}
		if page == nil || len(page.Orders) == 0 {
			break
		}

		var minTimestamp int64
		for _, order := range page.Orders {
			ts := orderdate.Resolve(order, s.now())
			if ts == orderdate.Unparseable {
				continue
			}
			if minTimestamp == 0 || ts < minTimestamp {
				minTimestamp = ts
			}

			if ts < cutoff && !sent.HasSent(order.ID) {
				candidates = append(candidates, order.ID)
			}
			if len(candidates) >= maxBatch {
				break
			}
		}

		if minTimestamp != 0 && minTimestamp >= cutoff {
			slog.Info("oldest order in page is newer than cutoff, stopping scan", "page", pageCount)
			break
		}

		cursor = page.NextCursor
		if cursor == "" {
			break
		}
		s.sleep(ctx, pageDelay)
	}

	if pageCount >= maxScanPages {
		slog.Warn("page limit reached, older orders may be missing from results", "pages", pageCount)
	}

	if len(candidates) > maxBatch {
		candidates = candidates[:maxBatch]
	}
	return candidates, nil
}

// sleepContext pauses for d or until the context is done.
func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
