package models

// Payment methods the orchestrator can drive. Exactly one is active.
const (
	MethodPayPal = "paypal"
	MethodCard   = "card"
)

// Payment flow states.
const (
	PaymentIdle             = "idle"
	PaymentAwaitingApproval = "awaiting_approval"
	PaymentCaptured         = "captured"
	PaymentCreatingSession  = "creating_session"
	PaymentRedirecting      = "redirecting"
	PaymentBookingCreated   = "booking_created"
	PaymentFailed           = "failed"
)

// CartItem is a single order line derived from the draft.
type CartItem struct {
	Name  string `json:"name"`
	Price Money  `json:"price"`
}

// Cart is the order summary shown at checkout. The total is advisory for
// display; the card processor recomputes the charge server-side.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Total sums the line-item amounts.
func (c Cart) Total() Money {
	var total Money
	for _, item := range c.Items {
		total = total.Add(item.Price)
	}
	return total
}

// CheckoutRedirect is the hand-off to the card processor's hosted page.
type CheckoutRedirect struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// RedirectOutcome is what the completion handler reports after the browser
// returns from the card processor. The delay lets the user read the message
// before navigation.
type RedirectOutcome struct {
	Result       string `json:"result"` // "confirmed", "failed", "canceled", "unknown"
	Title        string `json:"title"`
	Message      string `json:"message"`
	RedirectTo   string `json:"redirectTo"`
	DelaySeconds int    `json:"delaySeconds"`
}
