package commission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nyumba/internal/domains/commission"
	"nyumba/internal/domains/propertytype"
)

func TestCalculator_Calculate(t *testing.T) {
	calc := commission.NewCalculator(propertytype.NewRegistry())

	tests := []struct {
		name           string
		amount         float64
		propertyType   propertytype.Type
		wantCommission float64
		wantEarnings   float64
		wantRate       float64
		wantErr        bool
	}{
		{
			name:           "hotel takes 15 percent",
			amount:         1000,
			propertyType:   propertytype.TypeHotel,
			wantCommission: 150,
			wantEarnings:   850,
			wantRate:       15,
		},
		{
			name:           "fully furnished takes 12 percent",
			amount:         500,
			propertyType:   propertytype.TypeFullyFurnished,
			wantCommission: 60,
			wantEarnings:   440,
			wantRate:       12,
		},
		{
			name:           "zero amount",
			amount:         0,
			propertyType:   propertytype.TypeHotel,
			wantCommission: 0,
			wantEarnings:   0,
			wantRate:       15,
		},
		{
			name:         "rental is not bookable",
			amount:       1000,
			propertyType: propertytype.TypeRental,
			wantErr:      true,
		},
		{
			name:         "unknown type is not bookable",
			amount:       1000,
			propertyType: propertytype.Type("castle"),
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown, err := calc.Calculate(tt.amount, tt.propertyType)

			if tt.wantErr {
				assert.ErrorIs(t, err, commission.ErrInvalidPropertyType)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.amount, breakdown.Subtotal)
			assert.Equal(t, tt.wantRate, breakdown.CommissionRate)
			assert.Equal(t, tt.wantCommission, breakdown.CommissionAmount)
			assert.Equal(t, tt.wantEarnings, breakdown.HostEarnings)
		})
	}
}

func TestCalculator_SplitAddsUp(t *testing.T) {
	calc := commission.NewCalculator(propertytype.NewRegistry())

	amounts := []float64{1, 99.99, 1234.56, 100000}

	for _, amount := range amounts {
		for _, propertyType := range []propertytype.Type{propertytype.TypeHotel, propertytype.TypeFullyFurnished} {
			breakdown, err := calc.Calculate(amount, propertyType)

			assert.NoError(t, err)
			assert.InDelta(t, amount, breakdown.CommissionAmount+breakdown.HostEarnings, 1e-9)
		}
	}
}
