package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"doit/backend"
	"doit/models"
	"doit/services/draft"
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
	updates   map[string]map[string]any
}

func (s *stubBackend) CreateBooking(_ context.Context, payload models.BookingPayload) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, payload)
	return nil
}

func (s *stubBackend) UpdateBooking(_ context.Context, bookingID string, patch map[string]any) error {
	if s.updates == nil {
		s.updates = map[string]map[string]any{}
	}
	s.updates[bookingID] = patch
	return nil
}

type recordingAlerter struct {
	scope   string
	payload models.BookingPayload
	cause   error
	hits    int
}

func (a *recordingAlerter) PaymentWithoutBooking(_ context.Context, scope string, payload models.BookingPayload, cause error) error {
	a.hits++
	a.scope = scope
	a.payload = payload
	a.cause = cause
	return nil
}

func completeDraft() models.BookingDraft {
	return models.BookingDraft{
		SelectedService: "Plumbing",
		Price:           models.Money{Cents: 4500, Currency: "USD"},
		Date:            "2026-09-01",
		TimeSlot:        "10:00 AM",
		Address:         "12 Elm St",
	}
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

func newTestFinalizer(be *stubBackend, alerter SupportAlerter) (*Finalizer, *draft.Service) {
	drafts := &draft.Service{Store: newMemKV(), Logger: zap.NewNop()}
	return &Finalizer{Backend: be, Drafts: drafts, Alerter: alerter, Logger: zap.NewNop()}, drafts
}

func TestFinalizeRequiresSession(t *testing.T) {
	be := &stubBackend{}
	f, _ := newTestFinalizer(be, nil)
	ctx := context.Background()

	err := f.Finalize(ctx, "client-1", nil, completeDraft(), true)
	assert.ErrorIs(t, err, ErrSessionMissing)

	err = f.Finalize(ctx, "client-1", &models.Session{}, completeDraft(), true)
	assert.ErrorIs(t, err, ErrSessionMissing)

	assert.Empty(t, be.created, "no booking may be posted without an identity")
}

func TestFinalizeRefusesIncompleteDraft(t *testing.T) {
	be := &stubBackend{}
	f, _ := newTestFinalizer(be, nil)

	d := completeDraft()
	d.TimeSlot = ""
	err := f.Finalize(context.Background(), "client-1", homeownerSession(), d, true)

	assert.ErrorIs(t, err, ErrDraftIncomplete)
	assert.Empty(t, be.created, "a partial draft must never reach the backend")
}

func TestFinalizeCreatesBookingAndClearsDraft(t *testing.T) {
	be := &stubBackend{}
	alerter := &recordingAlerter{}
	f, drafts := newTestFinalizer(be, alerter)
	ctx := context.Background()
	scope := "client-1"

	require.NoError(t, drafts.SetService(ctx, scope, "Plumbing"))
	_, err := drafts.Stage(ctx, scope)
	require.NoError(t, err)

	err = f.Finalize(ctx, scope, homeownerSession(), completeDraft(), true)
	require.NoError(t, err)

	require.Len(t, be.created, 1)
	p := be.created[0]
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "Plumbing", p.ServiceType)
	assert.Equal(t, models.BookingPending, p.Status)
	assert.Zero(t, alerter.hits)

	// Both draft copies are gone; the next booking starts clean.
	_, ok, err := drafts.Pending(ctx, scope)
	require.NoError(t, err)
	assert.False(t, ok)
	d, err := drafts.Get(ctx, scope)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
}

func TestFinalizeAlertsSupportWhenPaymentCapturedButPersistenceFails(t *testing.T) {
	cause := errors.New("backend down")
	be := &stubBackend{createErr: cause}
	alerter := &recordingAlerter{}
	f, drafts := newTestFinalizer(be, alerter)
	ctx := context.Background()
	scope := "client-1"

	require.NoError(t, drafts.SetService(ctx, scope, "Plumbing"))
	_, err := drafts.Stage(ctx, scope)
	require.NoError(t, err)

	err = f.Finalize(ctx, scope, homeownerSession(), completeDraft(), true)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, pe.Err, cause)

	require.Equal(t, 1, alerter.hits)
	assert.Equal(t, scope, alerter.scope)
	assert.Equal(t, "Plumbing", alerter.payload.ServiceType)
	assert.ErrorIs(t, alerter.cause, cause)

	// The pending draft survives for reconciliation.
	_, ok, err := drafts.Pending(ctx, scope)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFinalizeWithoutCaptureFailsPlainly(t *testing.T) {
	cause := errors.New("backend down")
	be := &stubBackend{createErr: cause}
	alerter := &recordingAlerter{}
	f, _ := newTestFinalizer(be, alerter)

	err := f.Finalize(context.Background(), "client-1", homeownerSession(), completeDraft(), false)

	assert.ErrorIs(t, err, cause)
	var pe *PersistenceError
	assert.False(t, errors.As(err, &pe), "no money moved, so this is a plain failure")
	assert.Zero(t, alerter.hits)
}

func TestLifecycleUpdates(t *testing.T) {
	be := &stubBackend{}
	svc := &Service{Backend: be, Logger: zap.NewNop()}
	ctx := context.Background()

	provider := models.ProviderDetails{ProviderID: "p1", ProviderName: "Bo Diaz"}
	require.NoError(t, svc.Accept(ctx, "b1", provider))
	require.NoError(t, svc.Decline(ctx, "b2"))
	require.NoError(t, svc.Complete(ctx, "b3"))

	assert.Equal(t, provider, be.updates["b1"]["providerDetails"])
	assert.Equal(t, models.BookingDeclined, be.updates["b2"]["status"])
	assert.Equal(t, models.BookingCompleted, be.updates["b3"]["status"])
}
