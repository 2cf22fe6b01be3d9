// File: utils/constants.go
package utils

import "time"

// AuthRecordPrefix is the prefix for durable credential records.
const AuthRecordPrefix = "auth-session:"

// WorkingDraftPrefix is the prefix for the editable booking draft.
const WorkingDraftPrefix = "booking-draft:"

// PendingDraftPrefix is the prefix for the draft handed off to payment.
// It must survive the redirect away to the card processor.
const PendingDraftPrefix = "pending-booking:"

// PaymentMethodPrefix is the prefix for the selected payment method.
const PaymentMethodPrefix = "payment-method:"

// CatalogCacheKey holds the fetched service catalog.
const CatalogCacheKey = "service-catalog"

// AuthRecordTTL bounds how long an unused credential survives.
const AuthRecordTTL = 30 * 24 * time.Hour

// DraftTTL bounds an abandoned draft. Long enough to cover any realistic
// round trip through the card processor.
const DraftTTL = 7 * 24 * time.Hour

// CatalogTTL bounds catalog staleness across processes. There is no
// refresh-on-stale inside a process.
const CatalogTTL = 12 * time.Hour

// TimeSlots is the fixed set of bookable appointment slots.
var TimeSlots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM",
}

// IsValidTimeSlot reports whether slot is one of the bookable slots.
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
