package app

import (
	"context"
	"errors"
	"time"

	"github.com/example/staletick/internal/models"
	"github.com/example/staletick/internal/ports/secondary"
)

// testNow is the fixed reference time used across service tests.
var testNow = time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)

// noSleep replaces the pacing sleeps in tests.
func noSleep(ctx context.Context, d time.Duration) {}

// memorySettingsStore implements secondary.SettingsStore in memory.
type memorySettingsStore struct {
	saved     *models.Settings
	saveCalls int
	loadErr   error
	saveErr   error
}

func (m *memorySettingsStore) Load() (*models.Settings, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.saved == nil {
		return models.DefaultSettings(), nil
	}
	return m.saved.Clone(), nil
}

func (m *memorySettingsStore) Save(settings *models.Settings) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = settings.Clone()
	return nil
}

// mockOrderSource implements secondary.OrderSource over fixed pages keyed
// by cursor. Cursor "" is the first page.
type mockOrderSource struct {
	pages     map[string]*secondary.OrderPage
	orders    map[string]*models.Order
	listErr   error
	listCalls int
}

func (m *mockOrderSource) ListOrders(ctx context.Context, cursor string, status models.OrderStatus, locale string) (*secondary.OrderPage, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	page, ok := m.pages[cursor]
	if !ok {
		return &secondary.OrderPage{}, nil
	}
	return page, nil
}

func (m *mockOrderSource) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, ok := m.orders[orderID]
	if !ok {
		return nil, errors.New("order not found")
	}
	return order, nil
}

// mockSupportGateway implements secondary.SupportGateway with canned
// per-order responses.
type mockSupportGateway struct {
	bootstrapErr error
	bootstraps   int
	session      *mockSupportSession
}

func (m *mockSupportGateway) Bootstrap(ctx context.Context) (secondary.SupportSession, error) {
	m.bootstraps++
	if m.bootstrapErr != nil {
		return nil, m.bootstrapErr
	}
	return m.session, nil
}

type mockSupportSession struct {
	responses map[string]*secondary.TicketResponse
	createErr error
	created   []string
}

func (m *mockSupportSession) CreateTicket(ctx context.Context, orderID, comment string) (*secondary.TicketResponse, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, orderID)
	if resp, ok := m.responses[orderID]; ok {
		return resp, nil
	}
	return acceptedResponse(orderID), nil
}

// acceptedResponse is the portal's success shape for a filed ticket.
func acceptedResponse(orderID string) *secondary.TicketResponse {
	return &secondary.TicketResponse{
		Action:  "message",
		Message: "Заявка отправлена",
		URL:     "/tickets/" + orderID,
	}
}

// mockRunRepository implements secondary.RunRepository in memory.
type mockRunRepository struct {
	records   []*models.RunRecord
	createErr error
}

func (m *mockRunRepository) Create(ctx context.Context, run *models.RunRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, run)
	return nil
}

func (m *mockRunRepository) List(ctx context.Context) ([]*models.RunRecord, error) {
	out := make([]*models.RunRecord, len(m.records))
	for i, r := range m.records {
		out[len(m.records)-1-i] = r
	}
	return out, nil
}

func (m *mockRunRepository) GetByID(ctx context.Context, id string) (*models.RunRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.New("not found")
}

// fixedScanner satisfies orderScanner with a canned candidate list.
type fixedScanner struct {
	ids []string
	err error
}

func (f *fixedScanner) Scan(ctx context.Context, maxAgeHours, maxBatch int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ids, nil
}

// paidOrder builds a paid order dated hoursOld before testNow.
func paidOrder(id string, hoursOld int) models.Order {
	return models.Order{
		ID:       id,
		Status:   models.OrderStatusPaid,
		PlacedAt: testNow.Add(-time.Duration(hoursOld) * time.Hour),
	}
}

func newTestSettingsService(store *memorySettingsStore) *SettingsServiceImpl {
	if store == nil {
		store = &memorySettingsStore{}
	}
	return NewSettingsService(store)
}
