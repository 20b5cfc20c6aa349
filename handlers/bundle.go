package handlers

import (
	userRepo "fixly/database/repository/user"
)

// HandlerBundle aggregates the HTTP handlers and the repositories the
// middleware needs.
type HandlerBundle struct {
	Auth     *AuthHandler
	User     *UserHandler
	Provider *ProviderHandler
	Listing  *ListingHandler
	Booking  *BookingHandler
	Review   *ReviewHandler
	Category *CategoryHandler
	Admin    *AdminHandler

	UserRepo userRepo.UserRepository
}
