package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCompletion(f *fixture) *CompletionHandler {
	return &CompletionHandler{
		Sessions:  f.orc.Sessions,
		Drafts:    f.drafts,
		Finalizer: f.orc.Finalizer,
		Logger:    zap.NewNop(),
	}
}

func stagePaidDraft(t *testing.T, f *fixture, scope string) {
	t.Helper()
	fillDraft(t, f.drafts, scope)
	_, err := f.drafts.Stage(context.Background(), scope)
	require.NoError(t, err)
}

func TestCompleteSuccessConfirmsBooking(t *testing.T) {
	f := newFixture(homeownerSession())
	h := newCompletion(f)
	ctx := context.Background()
	scope := "client-1"
	stagePaidDraft(t, f, scope)

	outcome := h.Complete(ctx, scope, StatusSuccess)

	assert.Equal(t, "confirmed", outcome.Result)
	assert.Equal(t, "/dashboard", outcome.RedirectTo)
	assert.Equal(t, 3, outcome.DelaySeconds)
	assert.Contains(t, outcome.Message, "Plumbing")
	assert.Contains(t, outcome.Message, "September 1, 2026")
	assert.Contains(t, outcome.Message, "10:00 AM")

	require.Len(t, f.be.created, 1)

	// The pending draft is spent; hitting the return URL again cannot
	// create a second booking.
	outcome = h.Complete(ctx, scope, StatusSuccess)
	assert.Equal(t, "failed", outcome.Result)
	assert.Len(t, f.be.created, 1)
}

func TestCompleteSuccessWithoutPendingDraft(t *testing.T) {
	f := newFixture(homeownerSession())
	h := newCompletion(f)

	outcome := h.Complete(context.Background(), "client-1", StatusSuccess)

	assert.Equal(t, "failed", outcome.Result)
	assert.Equal(t, "/booking", outcome.RedirectTo, "back to intake when the details are gone")
	assert.Empty(t, f.be.created)
}

func TestCompleteSuccessWithoutSession(t *testing.T) {
	f := newFixture(nil)
	h := newCompletion(f)
	stagePaidDraft(t, f, "client-1")

	outcome := h.Complete(context.Background(), "client-1", StatusSuccess)

	assert.Equal(t, "failed", outcome.Result)
	assert.Equal(t, "/booking", outcome.RedirectTo)
	assert.Empty(t, f.be.created)
}

func TestCompleteSuccessPersistenceFailure(t *testing.T) {
	f := newFixture(homeownerSession())
	h := newCompletion(f)
	ctx := context.Background()
	scope := "client-1"
	stagePaidDraft(t, f, scope)
	f.be.createErr = errors.New("backend down")

	outcome := h.Complete(ctx, scope, StatusSuccess)

	assert.Equal(t, "failed", outcome.Result)
	assert.Equal(t, "/dashboard", outcome.RedirectTo)
	assert.Equal(t, 5, outcome.DelaySeconds)
	assert.Contains(t, outcome.Message, "payment was successful")
	assert.Contains(t, outcome.Message, "team has been notified")

	// The pending draft is kept for reconciliation.
	_, ok, err := f.drafts.Pending(ctx, scope)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompleteCancelKeepsDraft(t *testing.T) {
	f := newFixture(homeownerSession())
	h := newCompletion(f)
	ctx := context.Background()
	scope := "client-1"
	stagePaidDraft(t, f, scope)

	outcome := h.Complete(ctx, scope, StatusCancel)

	assert.Equal(t, "canceled", outcome.Result)
	assert.Equal(t, "/payment", outcome.RedirectTo)
	assert.Empty(t, f.be.created)

	// Nothing was consumed; the user can retry without re-entering fields.
	d, err := f.drafts.Get(ctx, scope)
	require.NoError(t, err)
	assert.False(t, d.IsEmpty())
	_, ok, err := f.drafts.Pending(ctx, scope)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompleteUnknownStatus(t *testing.T) {
	f := newFixture(homeownerSession())
	h := newCompletion(f)

	outcome := h.Complete(context.Background(), "client-1", "definitely-not-a-status")

	assert.Equal(t, "unknown", outcome.Result)
	assert.Equal(t, "/dashboard", outcome.RedirectTo)
	assert.Empty(t, f.be.created)
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "September 1, 2026", displayDate("2026-09-01"))
	assert.Equal(t, "not-a-date", displayDate("not-a-date"))
}

func TestRedirectOutcomeShape(t *testing.T) {
	// The client navigates on RedirectTo after DelaySeconds; both must
	// always be present on every branch.
	f := newFixture(homeownerSession())
	h := newCompletion(f)

	for _, status := range []string{StatusSuccess, StatusCancel, "garbage"} {
		outcome := h.Complete(context.Background(), "client-1", status)
		assert.NotEmpty(t, outcome.RedirectTo, "status %q", status)
		assert.Positive(t, outcome.DelaySeconds, "status %q", status)
		assert.NotEmpty(t, outcome.Title, "status %q", status)
	}
}
