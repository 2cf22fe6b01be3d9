package handlers

// HandlerBundle groups every handler the router needs.
type HandlerBundle struct {
	Auth     *AuthHandler
	Booking  *BookingHandler
	Payment  *PaymentHandler
	Catalog  *CatalogHandler
	Admin    *AdminHandler
	Identity *IdentityHandler
}
