package propertytype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nyumba/internal/domains/propertytype"
)

func TestRegistry_ConfigFor(t *testing.T) {
	registry := propertytype.NewRegistry()

	tests := []struct {
		name         string
		propertyType propertytype.Type
		wantRate     float64
		wantBookable bool
		wantInquiry  bool
	}{
		{
			name:         "hotel",
			propertyType: propertytype.TypeHotel,
			wantRate:     15,
			wantBookable: true,
			wantInquiry:  false,
		},
		{
			name:         "fully furnished",
			propertyType: propertytype.TypeFullyFurnished,
			wantRate:     12,
			wantBookable: true,
			wantInquiry:  false,
		},
		{
			name:         "rental",
			propertyType: propertytype.TypeRental,
			wantRate:     0,
			wantBookable: false,
			wantInquiry:  true,
		},
		{
			name:         "unknown type falls back to rental defaults",
			propertyType: propertytype.Type("castle"),
			wantRate:     0,
			wantBookable: false,
			wantInquiry:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := registry.ConfigFor(tt.propertyType)

			assert.Equal(t, tt.wantRate, cfg.CommissionRate)
			assert.Equal(t, tt.wantBookable, cfg.BookingEnabled)
			assert.Equal(t, tt.wantInquiry, cfg.InquiryEnabled)
		})
	}
}

func TestRegistry_Capabilities(t *testing.T) {
	registry := propertytype.NewRegistry()

	assert.True(t, registry.IsBookable(propertytype.TypeHotel))
	assert.True(t, registry.IsBookable(propertytype.TypeFullyFurnished))
	assert.False(t, registry.IsBookable(propertytype.TypeRental))

	assert.True(t, registry.HasCommission(propertytype.TypeHotel))
	assert.True(t, registry.HasCommission(propertytype.TypeFullyFurnished))
	assert.False(t, registry.HasCommission(propertytype.TypeRental))

	assert.Equal(t, float64(15), registry.Rate(propertytype.TypeHotel))
	assert.Equal(t, float64(12), registry.Rate(propertytype.TypeFullyFurnished))
	assert.Equal(t, float64(0), registry.Rate(propertytype.TypeRental))

	assert.False(t, registry.IsInquiryOnly(propertytype.TypeHotel))
	assert.True(t, registry.IsInquiryOnly(propertytype.TypeRental))
}

func TestRegistry_Known(t *testing.T) {
	registry := propertytype.NewRegistry()

	assert.True(t, registry.Known(propertytype.TypeHotel))
	assert.True(t, registry.Known(propertytype.TypeFullyFurnished))
	assert.True(t, registry.Known(propertytype.TypeRental))
	assert.False(t, registry.Known(propertytype.Type("castle")))
}
