package draft

import (
	"context"
	"sync"
	"testing"
	"time"

	"doit/models"
	"doit/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memKV is an in-memory stand-in for the redis store.
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

func newTestService() (*Service, *memKV) {
	kv := newMemKV()
	return &Service{Store: kv, Logger: zap.NewNop()}, kv
}

func TestDraftRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	scope := "client-1"

	// No draft yet reads as empty, not as an error.
	d, err := svc.Get(ctx, scope)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())

	require.NoError(t, svc.SetService(ctx, scope, "Plumbing"))
	require.NoError(t, svc.SetPrice(ctx, scope, models.Money{Cents: 4500, Currency: "USD"}))
	require.NoError(t, svc.SetDate(ctx, scope, "2026-09-01"))
	require.NoError(t, svc.SetTimeSlot(ctx, scope, "10:00 AM"))
	require.NoError(t, svc.SetAddress(ctx, scope, "12 Elm St"))
	require.NoError(t, svc.SetDetails(ctx, scope, "leaky faucet"))

	d, err = svc.Get(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", d.SelectedService)
	assert.Equal(t, int64(4500), d.Price.Cents)
	assert.Equal(t, "2026-09-01", d.Date)
	assert.Equal(t, "10:00 AM", d.TimeSlot)
	assert.Equal(t, "12 Elm St", d.Address)
	assert.True(t, d.IsComplete())
}

func TestSettersAreIndependent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	scope := "client-1"

	require.NoError(t, svc.SetService(ctx, scope, "Plumbing"))
	require.NoError(t, svc.SetDate(ctx, scope, "2026-09-01"))
	require.NoError(t, svc.SetService(ctx, scope, "Cleaning"))

	d, err := svc.Get(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, "Cleaning", d.SelectedService)
	assert.Equal(t, "2026-09-01", d.Date, "changing the service must not touch the date")
}

func TestSetTimeSlotRejectsUnknownSlot(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	err := svc.SetTimeSlot(ctx, "client-1", "03:37 AM")
	assert.Error(t, err)

	// Clearing the slot is allowed.
	assert.NoError(t, svc.SetTimeSlot(ctx, "client-1", ""))
}

func TestScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	require.NoError(t, svc.SetService(ctx, "client-a", "Plumbing"))

	d, err := svc.Get(ctx, "client-b")
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
}

func TestStageAndPending(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	scope := "client-1"

	_, ok, err := svc.Pending(ctx, scope)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.SetService(ctx, scope, "Plumbing"))
	require.NoError(t, svc.SetDate(ctx, scope, "2026-09-01"))

	staged, err := svc.Stage(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", staged.SelectedService)

	pending, ok, err := svc.Pending(ctx, scope)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, staged, pending)

	// Edits after staging change the working copy, not the pending one.
	require.NoError(t, svc.SetService(ctx, scope, "Cleaning"))
	pending, ok, err = svc.Pending(ctx, scope)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Plumbing", pending.SelectedService)
}

func TestCheckPendingBookingResetsOnlyWithoutPending(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	scope := "client-1"

	require.NoError(t, svc.SetService(ctx, scope, "Plumbing"))

	// No pending draft: the working fields get reset.
	require.NoError(t, svc.CheckPendingBooking(ctx, scope))
	d, err := svc.Get(ctx, scope)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())

	// With a pending draft the working copy survives.
	require.NoError(t, svc.SetService(ctx, scope, "Cleaning"))
	_, err = svc.Stage(ctx, scope)
	require.NoError(t, err)
	require.NoError(t, svc.CheckPendingBooking(ctx, scope))
	d, err = svc.Get(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, "Cleaning", d.SelectedService)
}

func TestClearRemovesBothCopies(t *testing.T) {
	ctx := context.Background()
	svc, kv := newTestService()
	scope := "client-1"

	require.NoError(t, svc.SetService(ctx, scope, "Plumbing"))
	_, err := svc.Stage(ctx, scope)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, scope))

	_, ok, err := svc.Pending(ctx, scope)
	require.NoError(t, err)
	assert.False(t, ok)
	d, err := svc.Get(ctx, scope)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
	assert.Empty(t, kv.data)
}
