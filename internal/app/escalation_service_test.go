package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/staletick/internal/models"
	"github.com/example/staletick/internal/ports/secondary"
)

type escalationFixture struct {
	service  *EscalationServiceImpl
	scanner  *fixedScanner
	source   *mockOrderSource
	gateway  *mockSupportGateway
	settings *SettingsServiceImpl
	store    *memorySettingsStore
	runs     *mockRunRepository
	sleeps   int
}

func newEscalationFixture(candidateIDs []string) *escalationFixture {
	f := &escalationFixture{
		scanner: &fixedScanner{ids: candidateIDs},
		source:  &mockOrderSource{orders: map[string]*models.Order{}},
		gateway: &mockSupportGateway{session: &mockSupportSession{
			responses: map[string]*secondary.TicketResponse{},
		}},
		store: &memorySettingsStore{},
		runs:  &mockRunRepository{},
	}
	for _, id := range candidateIDs {
		order := paidOrder(id, 48)
		f.source.orders[id] = &order
	}
	f.settings = NewSettingsService(f.store)

	f.service = NewEscalationService(f.scanner, f.source, f.gateway, f.settings, f.runs)
	f.service.now = func() time.Time { return testNow }
	f.service.sleep = func(ctx context.Context, d time.Duration) { f.sleeps++ }
	f.service.newRunID = func() string { return "run-1" }
	return f
}

func TestRunEscalatesAllCandidates(t *testing.T) {
	f := newEscalationFixture([]string{"100", "200", "300"})

	result, err := f.service.Run(context.Background(), 24, 10)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Considered != 3 {
		t.Errorf("Considered = %d, want 3", result.Considered)
	}
	if len(result.SentOrderIDs) != 3 {
		t.Errorf("SentOrderIDs = %v, want all 3", result.SentOrderIDs)
	}
	if result.Skipped() != 0 {
		t.Errorf("Skipped = %d, want 0", result.Skipped())
	}
	if f.gateway.bootstraps != 3 {
		t.Errorf("bootstraps = %d, want one fresh session per order", f.gateway.bootstraps)
	}
}

func TestRunPacesBetweenSubmissions(t *testing.T) {
	f := newEscalationFixture([]string{"100", "200", "300"})

	if _, err := f.service.Run(context.Background(), 24, 10); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Pause before every order except the first.
	if f.sleeps != 2 {
		t.Errorf("sleeps = %d, want 2", f.sleeps)
	}
}

func TestRunMergesLedgerOnceAfterBatch(t *testing.T) {
	f := newEscalationFixture([]string{"100", "200"})

	if _, err := f.service.Run(context.Background(), 24, 10); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if f.store.saveCalls != 1 {
		t.Errorf("saveCalls = %d, want exactly 1 ledger write per run", f.store.saveCalls)
	}
	settings := f.settings.Current()
	if !settings.HasSent("100") || !settings.HasSent("200") {
		t.Errorf("sent ledger = %v, want both IDs", settings.SentOrderIDs)
	}
}

func TestRunTwiceKeepsLedgerDuplicateFree(t *testing.T) {
	f := newEscalationFixture([]string{"100", "200"})

	for i := 0; i < 2; i++ {
		if _, err := f.service.Run(context.Background(), 24, 10); err != nil {
			t.Fatalf("Run %d failed: %v", i+1, err)
		}
	}

	got := f.settings.Current().SentOrderIDs
	if len(got) != 2 {
		t.Errorf("sent ledger after two runs = %v, want each ID exactly once", got)
	}
}

func TestRunSkipsOrdersNoLongerPaid(t *testing.T) {
	f := newEscalationFixture([]string{"100", "200"})
	f.source.orders["200"].Status = models.OrderStatusClosed

	result, err := f.service.Run(context.Background(), 24, 10)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.SentOrderIDs) != 1 || result.SentOrderIDs[0] != "100" {
		t.Errorf("SentOrderIDs = %v, want [100]", result.SentOrderIDs)
	}
	if result.Skipped() != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped())
	}
	if f.settings.Current().HasSent("200") {
		t.Error("closed order reached the sent ledger")
	}
}

func TestRunSkipsOrdersWithFailedStatusFetch(t *testing.T) {
	f := newEscalationFixture([]string{"100"})
	delete(f.source.orders, "100")

	result, err := f.service.Run(context.Background(), 24, 10)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.SentOrderIDs) != 0 {
		t.Errorf("SentOrderIDs = %v, want empty", result.SentOrderIDs)
	}
}

func TestRunContainsBootstrapFailures(t *testing.T) {
	f := newEscalationFixture([]string{"100", "200"})
	f.gateway.bootstrapErr = errors.New("portal unreachable")

	result, err := f.service.Run(context.Background(), 24, 10)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.SentOrderIDs) != 0 {
		t.Errorf("SentOrderIDs = %v, want empty", result.SentOrderIDs)
	}
	if f.store.saveCalls != 0 {
		t.Errorf("ledger written on a zero-success run")
	}
}

func TestRunTreatsRejectedResponseAsFailure(t *testing.T) {
	f := newEscalationFixture([]string{"100", "200"})
	f.gateway.session.responses["200"] = &secondary.TicketResponse{
		Action:  "error",
		Message: "Что-то пошло не так",
	}

	result, err := f.service.Run(context.Background(), 24, 10)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.SentOrderIDs) != 1 || result.SentOrderIDs[0] != "100" {
		t.Errorf("SentOrderIDs = %v, want [100]", result.SentOrderIDs)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	f := newEscalationFixture([]string{"100", "200"})
	f.source.orders["200"].Status = models.OrderStatusRefunded

	if _, err := f.service.Run(context.Background(), 24, 10); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(f.runs.records) != 1 {
		t.Fatalf("run records = %d, want 1", len(f.runs.records))
	}
	record := f.runs.records[0]
	if record.ID != "run-1" || record.Considered != 2 || record.SentCount != 1 {
		t.Errorf("record = %+v, want run-1 considered=2 sent=1", record)
	}
}

func TestRunPropagatesScanError(t *testing.T) {
	f := newEscalationFixture(nil)
	f.scanner.err = errors.New("scan broke")

	if _, err := f.service.Run(context.Background(), 24, 10); err == nil {
		t.Fatal("Run succeeded, want scan error")
	}
}

func TestTicketAccepted(t *testing.T) {
	tests := []struct {
		name string
		resp secondary.TicketResponse
		want bool
	}{
		{
			name: "accepted",
			resp: secondary.TicketResponse{Action: "message", Message: "Заявка отправлена", URL: "/tickets/55"},
			want: true,
		},
		{
			name: "accepted case insensitive",
			resp: secondary.TicketResponse{Action: "message", Message: "ЗАЯВКА ОТПРАВЛЕНА", URL: "/tickets/55"},
			want: true,
		},
		{
			name: "error action",
			resp: secondary.TicketResponse{Action: "error", Message: "Заявка отправлена", URL: "/tickets/55"},
			want: false,
		},
		{
			name: "wrong message",
			resp: secondary.TicketResponse{Action: "message", Message: "Доступ запрещён", URL: "/tickets/55"},
			want: false,
		},
		{
			name: "missing ticket url",
			resp: secondary.TicketResponse{Action: "message", Message: "Заявка отправлена", URL: "/home"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ticketAccepted(&tt.resp); got != tt.want {
				t.Errorf("ticketAccepted(%+v) = %v, want %v", tt.resp, got, tt.want)
			}
		})
	}
}
