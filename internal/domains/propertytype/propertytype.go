package propertytype

import (
	"github.com/rs/zerolog/log"
)

type Type string

const (
	TypeHotel          Type = "hotel"
	TypeFullyFurnished Type = "fully_furnished"
	TypeRental         Type = "rental"
)

// Config describes what a property type supports and what the platform
// keeps from each booking. Exactly one of BookingEnabled and InquiryEnabled
// is set per type.
type Config struct {
	CommissionRate float64
	BookingEnabled bool
	PaymentEnabled bool
	InquiryEnabled bool
}

// Registry is the immutable lookup table for property-type capabilities.
// It is built once and injected where needed.
type Registry struct {
	configs  map[Type]Config
	fallback Config
}

// NewRegistry builds the fixed capability table. The rates are a business
// rule, not configuration: hotels pay 15%, fully-furnished units 12%,
// long-term rentals are inquiry-only and uncommissioned.
func NewRegistry() *Registry {
	rental := Config{
		CommissionRate: 0,
		BookingEnabled: false,
		PaymentEnabled: false,
		InquiryEnabled: true,
	}

	return &Registry{
		configs: map[Type]Config{
			TypeHotel: {
				CommissionRate: 15,
				BookingEnabled: true,
				PaymentEnabled: true,
				InquiryEnabled: false,
			},
			TypeFullyFurnished: {
				CommissionRate: 12,
				BookingEnabled: true,
				PaymentEnabled: true,
				InquiryEnabled: false,
			},
			TypeRental: rental,
		},
		fallback: rental,
	}
}

// ConfigFor returns the capability config for the given type. An
// unrecognized type degrades to the rental config (non-bookable,
// uncommissioned) with a warning rather than failing the request.
func (r *Registry) ConfigFor(t Type) Config {
	cfg, ok := r.configs[t]
	if !ok {
		log.Warn().Str("property_type", string(t)).Msg("unknown property type, falling back to rental defaults")

		return r.fallback
	}

	return cfg
}

// IsBookable reports whether the type supports online booking.
func (r *Registry) IsBookable(t Type) bool {
	return r.ConfigFor(t).BookingEnabled
}

// HasCommission reports whether the platform takes a cut for the type.
func (r *Registry) HasCommission(t Type) bool {
	return r.ConfigFor(t).CommissionRate > 0
}

// Rate returns the commission percentage for the type.
func (r *Registry) Rate(t Type) float64 {
	return r.ConfigFor(t).CommissionRate
}

// IsInquiryOnly reports whether guests must contact the host directly.
func (r *Registry) IsInquiryOnly(t Type) bool {
	return r.ConfigFor(t).InquiryEnabled
}

// Known reports whether the type is one of the registered types.
func (r *Registry) Known(t Type) bool {
	_, ok := r.configs[t]

	return ok
}
