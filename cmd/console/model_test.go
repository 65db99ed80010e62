package main

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refnet-client/internal/backend"
	"refnet-client/internal/dispatch"
	"refnet-client/internal/logger"
	"refnet-client/internal/notify"
	"refnet-client/internal/order"
	"refnet-client/internal/profile"
	"refnet-client/internal/session"
)

// stubService returns canned data without a network.
type stubService struct {
	services []order.ServiceRequest
}

func (s stubService) CheckUser(ctx context.Context, email string) (order.Customer, error) {
	return order.Customer{FullName: "Jane Wambui", Email: email, UserID: 7}, nil
}

func (s stubService) CustomerOrders(ctx context.Context, userID uint) ([]order.Order, error) {
	return nil, nil
}

func (s stubService) RequestedServices(ctx context.Context, userID uint) ([]order.ServiceRequest, error) {
	return s.services, nil
}

func (s stubService) SubmitFeedback(ctx context.Context, fb order.Feedback) (backend.FeedbackResult, error) {
	return backend.FeedbackResult{Outcome: backend.FeedbackSubmitted}, nil
}

func (s stubService) Orders(ctx context.Context) ([]order.Order, error) {
	return nil, nil
}

func (s stubService) Drivers(ctx context.Context) ([]order.Driver, error) {
	return nil, nil
}

func (s stubService) AssignDriver(ctx context.Context, orderID string, driverID uint) error {
	return nil
}

func newTestModel(t *testing.T, svc backend.Service) (model, *notify.Spy) {
	t.Helper()
	spy := &notify.Spy{}
	sess := session.Session{Email: "customer@refnet.test", Token: "tok"}
	m := newModel(profile.New(svc, nil, spy, sess), dispatch.New(svc, spy), spy, spy)

	next, _ := m.Update(initMsg{})
	return next.(model), spy
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOpCtxCarriesRequestID(t *testing.T) {
	a := opCtx()
	b := opCtx()

	assert.NotEmpty(t, logger.RequestIDFrom(a))
	assert.NotEmpty(t, logger.RequestIDFrom(b))
	assert.NotEqual(t, logger.RequestIDFrom(a), logger.RequestIDFrom(b))
}

func TestServicesModalBindsCards(t *testing.T) {
	svc := stubService{services: []order.ServiceRequest{
		{
			ID:               11,
			CompletionStatus: order.ServiceIncomplete,
			ServiceDetails:   order.ServiceDetails{Name: "AC Repair", Price: 30},
		},
		{
			ID:               12,
			CompletionStatus: order.ServiceComplete,
			ServiceDetails:   order.ServiceDetails{Name: "Plumbing", Price: 45},
			TechnicianName:   "Amina Hassan",
		},
	}}
	m, spy := newTestModel(t, svc)

	next, _ := m.Update(keyRunes("s"))
	m = next.(model)

	require.Len(t, m.cards, 2)
	assert.Equal(t, "Unassigned", m.cards[0].AssigneeLabel())
	assert.Equal(t, "Amina Hassan", m.cards[1].AssigneeLabel())

	// Enter on the unassigned row files a technician request.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)

	last, ok := spy.Last()
	require.True(t, ok)
	assert.Equal(t, "Technician requested for AC Repair", last.Message)
	assert.Equal(t, notify.SeveritySuccess, last.Severity)
}

func TestServicesModalEnterOnAssignedRowIsInert(t *testing.T) {
	svc := stubService{services: []order.ServiceRequest{
		{
			ID:             13,
			ServiceDetails: order.ServiceDetails{Name: "Plumbing", Price: 45},
			TechnicianName: "Amina Hassan",
		},
	}}
	m, spy := newTestModel(t, svc)

	next, _ := m.Update(keyRunes("s"))
	m = next.(model)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, ok := spy.Last()
	assert.False(t, ok)
}
