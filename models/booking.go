package models

// Booking statuses assigned by the backend.
const (
	BookingPending   = "pending"
	BookingCompleted = "completed"
	BookingCanceled  = "canceled"
	BookingDeclined  = "declined"
)

// Booking is the server-owned booking record. The gateway references it
// but never assigns its ID or status.
type Booking struct {
	ID                string           `json:"_id"`
	UserID            string           `json:"userId"`
	UserEmail         string           `json:"useremail"`
	UserMobile        string           `json:"userMobile"`
	HomeownerName     string           `json:"homeownername"`
	ServiceType       string           `json:"serviceType"`
	Date              string           `json:"date"`
	Time              string           `json:"time"`
	ServiceAddress    string           `json:"serviceAddress"`
	AdditionalDetails string           `json:"additionalDetails"`
	Status            string           `json:"status"`
	ProviderDetails   *ProviderDetails `json:"providerDetails,omitempty"`
}

// ProviderDetails is the assigned-provider identity on an accepted booking.
type ProviderDetails struct {
	ProviderID   string `json:"providerId"`
	ProviderName string `json:"providerName"`
	Mobile       string `json:"mobile,omitempty"`
}

// BookingPayload is what the gateway submits to create a booking. Status is
// always "pending"; the backend assigns identity and lifecycle from there.
type BookingPayload struct {
	UserID            string `json:"userId"`
	UserEmail         string `json:"useremail"`
	UserMobile        string `json:"userMobile"`
	HomeownerName     string `json:"homeownername"`
	ServiceType       string `json:"serviceType"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	ServiceAddress    string `json:"serviceAddress"`
	AdditionalDetails string `json:"additionalDetails"`
	Status            string `json:"status"`
}

// NewBookingPayload builds the create-booking payload from session identity
// and draft fields.
func NewBookingPayload(user User, draft BookingDraft) BookingPayload {
	return BookingPayload{
		UserID:            user.UserID,
		UserEmail:         user.Email,
		UserMobile:        user.MobNumber,
		HomeownerName:     user.Name,
		ServiceType:       draft.SelectedService,
		Date:              draft.Date,
		Time:              draft.TimeSlot,
		ServiceAddress:    draft.Address,
		AdditionalDetails: draft.Details,
		Status:            BookingPending,
	}
}
