package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/staletick/internal/models"
	"github.com/example/staletick/internal/ports/primary"
	"github.com/example/staletick/internal/ports/secondary"
)

// submitDelay is the pause between ticket submissions, avoiding rate
// limiting and abuse detection on the support portal.
const submitDelay = 2 * time.Second

// ticketAcceptedPhrase is the portal's localized confirmation message
// ("request sent"). Matched case-insensitively.
const ticketAcceptedPhrase = "заявка отправлена"

// orderScanner is the discovery dependency of the orchestrator.
type orderScanner interface {
	Scan(ctx context.Context, maxAgeHours, maxBatch int) ([]string, error)
}

// EscalationServiceImpl implements the EscalationService interface: it
// drives candidate orders one at a time through status re-validation,
// session bootstrap and ticket submission, then merges successes into the
// sent ledger once per run.
type EscalationServiceImpl struct {
	scanner  orderScanner
	orders   secondary.OrderSource
	support  secondary.SupportGateway
	settings primary.SettingsService
	runs     secondary.RunRepository

	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration)
	newRunID func() string
}

// NewEscalationService creates a new EscalationService with injected
// dependencies.
func NewEscalationService(
	scanner orderScanner,
	orders secondary.OrderSource,
	support secondary.SupportGateway,
	settings primary.SettingsService,
	runs secondary.RunRepository,
) *EscalationServiceImpl {
	return &EscalationServiceImpl{
		scanner:  scanner,
		orders:   orders,
		support:  support,
		settings: settings,
		runs:     runs,
		now:      time.Now,
		sleep:    sleepContext,
		newRunID: uuid.NewString,
	}
}

// Scan delegates order discovery without submitting anything.
func (s *EscalationServiceImpl) Scan(ctx context.Context, maxAgeHours, maxBatch int) ([]string, error) {
	return s.scanner.Scan(ctx, maxAgeHours, maxBatch)
}

// Run executes one full escalation run. Individual order failures are
// contained; the ledger is updated exactly once, after the whole batch.
func (s *EscalationServiceImpl) Run(ctx context.Context, maxAgeHours, maxBatch int) (*models.EscalationResult, error) {
	startedAt := s.now()

	candidates, err := s.scanner.Scan(ctx, maxAgeHours, maxBatch)
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}

	sent := s.runBatch(ctx, candidates)
	result := &models.EscalationResult{
		Considered:   len(candidates),
		SentOrderIDs: sent,
	}

	if len(sent) > 0 {
		if err := s.settings.MarkSent(sent); err != nil {
			// Tickets are already filed; surface the ledger failure so the
			// operator knows dedup state is behind.
			return result, fmt.Errorf("tickets sent but ledger update failed: %w", err)
		}
	}

	record := &models.RunRecord{
		ID:         s.newRunID(),
		StartedAt:  startedAt,
		FinishedAt: s.now(),
		Considered: result.Considered,
		SentCount:  len(sent),
		SentIDs:    sent,
	}
	if err := s.runs.Create(ctx, record); err != nil {
		slog.Error("failed to record escalation run", "run", record.ID, "error", err)
	}

	return result, nil
}

// runBatch files one ticket per order ID sequentially, pacing between
// submissions, and returns the IDs that were escalated successfully.
func (s *EscalationServiceImpl) runBatch(ctx context.Context, orderIDs []string) []string {
	slog.Info("starting ticket submission", "orders", len(orderIDs))

	var sent []string
	for i, orderID := range orderIDs {
		if i > 0 {
			s.sleep(ctx, submitDelay)
		}
		if s.escalateOrder(ctx, orderID) {
			sent = append(sent, orderID)
		}
	}
	return sent
}

// escalateOrder re-validates one order and submits a ticket for it. All
// failures are logged and reported as false; none abort the batch.
func (s *EscalationServiceImpl) escalateOrder(ctx context.Context, orderID string) bool {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		slog.Warn("failed to fetch order status, skipping", "order", orderID, "error", err)
		return false
	}
	if order.Status != models.OrderStatusPaid {
		slog.Info("order no longer awaiting confirmation, skipping", "order", orderID, "status", order.Status)
		return false
	}

	session, err := s.support.Bootstrap(ctx)
	if err != nil {
		slog.Error("failed to bootstrap support session", "order", orderID, "error", err)
		return false
	}

	comment := fmt.Sprintf("Покупатель не подтверждает выполнение заказа #%s.", orderID)
	resp, err := session.CreateTicket(ctx, orderID, comment)
	if err != nil {
		slog.Error("failed to submit ticket", "order", orderID, "error", err)
		return false
	}

	if !ticketAccepted(resp) {
		slog.Error("support portal rejected ticket", "order", orderID,
			"action", resp.Action, "message", resp.Message, "url", resp.URL)
		return false
	}

	slog.Info("ticket submitted", "order", orderID, "url", resp.URL)
	return true
}

// ticketAccepted interprets the portal's response: only a "message" action
// carrying the localized confirmation phrase and a ticket URL counts as
// success. Anything else is a definitive failure, not an error.
func ticketAccepted(resp *secondary.TicketResponse) bool {
	return resp.Action == "message" &&
		strings.Contains(strings.ToLower(resp.Message), ticketAcceptedPhrase) &&
		strings.Contains(resp.URL, "/tickets/")
}

// Ensure EscalationServiceImpl implements the interface
var _ primary.EscalationService = (*EscalationServiceImpl)(nil)
