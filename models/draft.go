package models

// BookingDraft holds the in-progress, not-yet-paid booking fields. The
// date travels as "YYYY-MM-DD" text so the draft serializes portably
// across the payment redirect.
type BookingDraft struct {
	SelectedService string `json:"selectedService"`
	Price           Money  `json:"price"`
	Date            string `json:"date"`
	TimeSlot        string `json:"timeSlot"`
	Address         string `json:"address"`
	Details         string `json:"details,omitempty"`
}

// IsComplete reports whether the draft may proceed to booking creation.
// Details is deliberately optional.
func (d BookingDraft) IsComplete() bool {
	return d.SelectedService != "" && d.Date != "" && d.TimeSlot != "" && d.Address != ""
}

// IsEmpty reports whether every field has been reset.
func (d BookingDraft) IsEmpty() bool {
	return d == BookingDraft{}
}
