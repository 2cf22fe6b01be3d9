package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDisplayPrice(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		cents int64
	}{
		{"dollar sign with cents", "$45.00", 4500},
		{"dollar sign whole", "$45", 4500},
		{"bare whole", "45", 4500},
		{"single fraction digit", "45.5", 4550},
		{"surrounding whitespace", "  $120.25  ", 12025},
		{"zero", "$0.00", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := ParseDisplayPrice(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.cents, m.Cents)
			assert.Equal(t, "USD", m.Currency)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		for _, in := range []string{"", "$", "free", "-5", "$-5.00"} {
			_, err := ParseDisplayPrice(in)
			assert.Error(t, err, "input %q", in)
		}
	})
}

func TestMoneyFormatting(t *testing.T) {
	m := Money{Cents: 4500, Currency: "USD"}
	assert.Equal(t, "$45.00", m.Display())
	assert.Equal(t, "45.00", m.DecimalString())

	odd := Money{Cents: 12025, Currency: "USD"}
	assert.Equal(t, "$120.25", odd.Display())
	assert.Equal(t, "120.25", odd.DecimalString())

	assert.Equal(t, "", Money{}.Display())
}

func TestParseThenFormatRoundTrip(t *testing.T) {
	m, err := ParseDisplayPrice("$45.00")
	require.NoError(t, err)
	assert.Equal(t, "$45.00", m.Display())
}

func TestCartTotal(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{Name: "Plumbing", Price: Money{Cents: 4500, Currency: "USD"}},
		{Name: "Cleaning", Price: Money{Cents: 3050, Currency: "USD"}},
	}}
	total := cart.Total()
	assert.Equal(t, int64(7550), total.Cents)
	assert.Equal(t, "USD", total.Currency)

	assert.True(t, Cart{}.Total().IsZero())
}

func TestBookingDraftCompleteness(t *testing.T) {
	d := BookingDraft{
		SelectedService: "Plumbing",
		Date:            "2026-09-01",
		TimeSlot:        "10:00 AM",
		Address:         "12 Elm St",
	}
	assert.True(t, d.IsComplete())

	// Details stays optional.
	d.Details = ""
	assert.True(t, d.IsComplete())

	d.Address = ""
	assert.False(t, d.IsComplete())

	assert.True(t, BookingDraft{}.IsEmpty())
	assert.False(t, d.IsEmpty())
}

func TestNewBookingPayload(t *testing.T) {
	user := User{
		UserID:    "u1",
		Name:      "Ann Lee",
		Email:     "ann@example.com",
		MobNumber: "5550001111",
		Role:      RoleHomeowner,
	}
	draft := BookingDraft{
		SelectedService: "Plumbing",
		Date:            "2026-09-01",
		TimeSlot:        "10:00 AM",
		Address:         "12 Elm St",
		Details:         "leaky faucet",
	}

	p := NewBookingPayload(user, draft)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "ann@example.com", p.UserEmail)
	assert.Equal(t, "Ann Lee", p.HomeownerName)
	assert.Equal(t, "Plumbing", p.ServiceType)
	assert.Equal(t, "10:00 AM", p.Time)
	assert.Equal(t, BookingPending, p.Status)
}

func TestSessionRoleChecks(t *testing.T) {
	var nilSess *Session
	assert.False(t, nilSess.IsAuthenticated())
	assert.False(t, nilSess.IsAdmin())

	user := &Session{User: User{Role: RoleHomeowner}}
	assert.True(t, user.IsAuthenticated())
	assert.False(t, user.IsAdmin())

	admin := &Session{User: User{Role: RoleAdmin}, Kind: CredentialAdmin}
	assert.True(t, admin.IsAdmin())
}
