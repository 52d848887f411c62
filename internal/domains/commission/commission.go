package commission

import (
	"net/http"
	"nyumba/internal/domains/propertytype"
	"nyumba/shared/failure"
)

// ErrInvalidPropertyType is returned when a commission is requested for a
// type that does not support online booking. The booking flow never reaches
// this for inquiry-only types, so hitting it indicates a caller bug.
var ErrInvalidPropertyType = &failure.Failure{
	Code:    http.StatusUnprocessableEntity,
	Message: "property type does not support online booking",
}

// Breakdown is the commission split for a single booking amount. Values keep
// full floating precision; rounding happens at the presentation layer only.
type Breakdown struct {
	Subtotal         float64 `json:"subtotal"`
	CommissionRate   float64 `json:"commission_rate"`
	CommissionAmount float64 `json:"commission_amount"`
	HostEarnings     float64 `json:"host_earnings"`
}

// Calculator computes commission splits from the property-type registry.
type Calculator struct {
	types *propertytype.Registry
}

func NewCalculator(types *propertytype.Registry) *Calculator {
	return &Calculator{
		types: types,
	}
}

// Calculate returns the commission breakdown for the given amount and
// property type. It is a pure function: no rounding, no side effects.
// Invariant: CommissionAmount + HostEarnings == Subtotal.
func (c *Calculator) Calculate(amount float64, t propertytype.Type) (Breakdown, error) {
	if !c.types.IsBookable(t) {
		return Breakdown{}, ErrInvalidPropertyType
	}

	rate := c.types.Rate(t)

	commissionAmount := float64(0)
	if c.types.HasCommission(t) {
		commissionAmount = amount * rate / 100
	}

	return Breakdown{
		Subtotal:         amount,
		CommissionRate:   rate,
		CommissionAmount: commissionAmount,
		HostEarnings:     amount - commissionAmount,
	}, nil
}
