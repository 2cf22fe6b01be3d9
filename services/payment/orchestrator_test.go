package payment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"doit/backend"
	"doit/models"
	"doit/services/booking"
	"doit/services/catalog"
	"doit/services/draft"
	"doit/services/session"
	"doit/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", utils.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type stubBackend struct {
	backend.Client

	createErr error
	created   []models.BookingPayload
}

func (s *stubBackend) ServicePrices(context.Context) ([]models.ServiceCatalogEntry, error) {
	return []models.ServiceCatalogEntry{
		{ServiceName: "Plumbing", Price: "$45.00"},
		{ServiceName: "House Cleaning", Price: "$30.00"},
	}, nil
}

func (s *stubBackend) CreateBooking(_ context.Context, payload models.BookingPayload) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, payload)
	return nil
}

// stubSessions answers Current from a fixed session.
type stubSessions struct {
	session.Service
	sess *models.Session
	err  error
}

func (s *stubSessions) Current(context.Context, string) (*models.Session, error) {
	return s.sess, s.err
}

type fakePayPal struct {
	orderID    string
	createErr  error
	captureErr error
	captured   []string
}

func (p *fakePayPal) CreateOrder(_ context.Context, cart models.Cart) (string, error) {
	if p.createErr != nil {
		return "", p.createErr
	}
	return p.orderID, nil
}

func (p *fakePayPal) CaptureOrder(_ context.Context, orderID string) error {
	if p.captureErr != nil {
		return p.captureErr
	}
	p.captured = append(p.captured, orderID)
	return nil
}

type fakeCheckout struct {
	redirect models.CheckoutRedirect
	err      error
	created  int
}

func (f *fakeCheckout) Create(_ context.Context, service string, amount models.Money) (models.CheckoutRedirect, error) {
	if f.err != nil {
		return models.CheckoutRedirect{}, f.err
	}
	f.created++
	return f.redirect, nil
}

type fixture struct {
	orc    *Orchestrator
	drafts *draft.Service
	be     *stubBackend
	paypal *fakePayPal
	checko *fakeCheckout
}

func newFixture(sess *models.Session) *fixture {
	be := &stubBackend{}
	drafts := &draft.Service{Store: newMemKV(), Logger: zap.NewNop()}
	cat := &catalog.Service{Backend: be, Cache: newMemKV(), Logger: zap.NewNop()}
	fin := &booking.Finalizer{Backend: be, Drafts: drafts, Logger: zap.NewNop()}
	paypal := &fakePayPal{orderID: "ORDER1"}
	checko := &fakeCheckout{redirect: models.CheckoutRedirect{SessionID: "cs_1", URL: "https://pay.example/cs_1"}}

	orc := &Orchestrator{
		Sessions:  &stubSessions{sess: sess},
		Drafts:    drafts,
		Catalog:   cat,
		Finalizer: fin,
		PayPal:    paypal,
		Checkout:  checko,
		Store:     newMemKV(),
		Logger:    zap.NewNop(),
	}
	return &fixture{orc: orc, drafts: drafts, be: be, paypal: paypal, checko: checko}
}

func homeownerSession() *models.Session {
	return &models.Session{
		User: models.User{
			UserID:    "u1",
			Name:      "Ann Lee",
			Email:     "ann@example.com",
			MobNumber: "5550001111",
			Role:      models.RoleHomeowner,
		},
		Token: "tok-1",
	}
}

func fillDraft(t *testing.T, drafts *draft.Service, scope string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, drafts.SetService(ctx, scope, "Plumbing"))
	require.NoError(t, drafts.SetDate(ctx, scope, "2026-09-01"))
	require.NoError(t, drafts.SetTimeSlot(ctx, scope, "10:00 AM"))
	require.NoError(t, drafts.SetAddress(ctx, scope, "12 Elm St"))
}

func TestMethodDefaultsToPayPal(t *testing.T) {
	f := newFixture(homeownerSession())
	ctx := context.Background()

	assert.Equal(t, models.MethodPayPal, f.orc.Method(ctx, "client-1"))

	require.NoError(t, f.orc.SelectMethod(ctx, "client-1", models.MethodCard))
	assert.Equal(t, models.MethodCard, f.orc.Method(ctx, "client-1"))

	assert.Error(t, f.orc.SelectMethod(ctx, "client-1", "bitcoin"))
	assert.Equal(t, models.MethodCard, f.orc.Method(ctx, "client-1"))
}

func TestCartResolvesPriceFromCatalog(t *testing.T) {
	f := newFixture(homeownerSession())
	ctx := context.Background()
	fillDraft(t, f.drafts, "client-1")

	cart, err := f.orc.Cart(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Plumbing", cart.Items[0].Name)
	assert.Equal(t, int64(4500), cart.Items[0].Price.Cents)
	assert.Equal(t, "$45.00", cart.Total().Display())

	// The resolved price sticks to the draft.
	d, err := f.drafts.Get(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4500), d.Price.Cents)
}

func TestCartWithoutServiceIsRefused(t *testing.T) {
	f := newFixture(homeownerSession())
	_, err := f.orc.Cart(context.Background(), "client-1")
	assert.ErrorIs(t, err, booking.ErrDraftIncomplete)
}

func TestPayPalFlowEndToEnd(t *testing.T) {
	f := newFixture(homeownerSession())
	ctx := context.Background()
	scope := "client-1"
	fillDraft(t, f.drafts, scope)

	orderID, err := f.orc.CreateOrder(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, "ORDER1", orderID)

	require.NoError(t, f.orc.Approve(ctx, scope, orderID))

	assert.Equal(t, []string{"ORDER1"}, f.paypal.captured)
	require.Len(t, f.be.created, 1)
	assert.Equal(t, "u1", f.be.created[0].UserID)
	assert.Equal(t, "Plumbing", f.be.created[0].ServiceType)

	// The draft is spent.
	d, err := f.drafts.Get(ctx, scope)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
}

func TestCreateOrderFailureIsProviderError(t *testing.T) {
	f := newFixture(homeownerSession())
	fillDraft(t, f.drafts, "client-1")
	f.paypal.createErr = errors.New("paypal 500")

	_, err := f.orc.CreateOrder(context.Background(), "client-1")
	assert.True(t, IsProviderFailure(err))
	assert.False(t, IsCaptureFailure(err))
}

func TestCaptureFailureIsTerminal(t *testing.T) {
	f := newFixture(homeownerSession())
	ctx := context.Background()
	fillDraft(t, f.drafts, "client-1")
	f.paypal.captureErr = errors.New("capture declined")

	err := f.orc.Approve(ctx, "client-1", "ORDER1")
	assert.True(t, IsCaptureFailure(err))
	assert.Empty(t, f.be.created, "no booking without a captured payment")

	// The draft survives for another attempt.
	d, err := f.drafts.Get(ctx, "client-1")
	require.NoError(t, err)
	assert.False(t, d.IsEmpty())
}

func TestCreateCheckoutSessionStagesDraft(t *testing.T) {
	f := newFixture(homeownerSession())
	ctx := context.Background()
	scope := "client-1"
	fillDraft(t, f.drafts, scope)

	redirect, err := f.orc.CreateCheckoutSession(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, "cs_1", redirect.SessionID)
	assert.Equal(t, "https://pay.example/cs_1", redirect.URL)

	// The pending copy now carries everything the completion handler needs
	// after the redirect.
	pending, ok, err := f.drafts.Pending(ctx, scope)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Plumbing", pending.SelectedService)
	assert.True(t, pending.IsComplete())
}

func TestCreateCheckoutSessionProviderFailure(t *testing.T) {
	f := newFixture(homeownerSession())
	fillDraft(t, f.drafts, "client-1")
	f.checko.err = errors.New("stripe 500")

	_, err := f.orc.CreateCheckoutSession(context.Background(), "client-1")
	assert.True(t, IsProviderFailure(err))
}
