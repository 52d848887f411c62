package router

import (
	"nyumba/internal/handlers/auth"
	"nyumba/internal/handlers/booking"
	"nyumba/internal/handlers/inquiry"
	"nyumba/internal/handlers/listing"
	"nyumba/internal/handlers/payment"
	"nyumba/internal/handlers/user"
	"nyumba/internal/handlers/wallet"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	User    user.Handler
	Listing listing.Handler
	Booking booking.Handler
	Payment payment.Handler
	Wallet  wallet.Handler
	Inquiry inquiry.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Listing.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Wallet.Router(routerGroup)
		r.DomainHandlers.Inquiry.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
