package models

// ServiceCatalogEntry is one offerable service and its price as the
// backend publishes it (price arrives as a display string).
type ServiceCatalogEntry struct {
	ServiceName string `json:"serviceName"`
	Price       string `json:"price"`
}

// UserCounts is the admin dashboard headline numbers.
type UserCounts struct {
	HomeownerCount       int `json:"homeownerCount"`
	ServiceProviderCount int `json:"serviceProviderCount"`
	AdminCount           int `json:"adminCount"`
	TotalUsers           int `json:"totalUsers"`
}

// UserDetails is the admin listing of registered users.
type UserDetails struct {
	Homeowners       []User `json:"homeowners"`
	ServiceProviders []User `json:"serviceProviders"`
	AllUsers         []User `json:"allUsers"`
}

// BookingTotals is the admin booking statistics response.
type BookingTotals struct {
	TotalBookings     int       `json:"totalBookings"`
	CompletedBookings int       `json:"completedBookings"`
	PendingBookings   int       `json:"pendingBookings"`
	AllBookings       []Booking `json:"allBookings"`
}
