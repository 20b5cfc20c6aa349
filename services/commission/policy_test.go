package commission

import (
	"testing"

	"fixly/models"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name           string
		amount         float64
		rate           float64
		wantCommission float64
		wantEarning    float64
	}{
		{"default rate", 1000, 10, 100, 900},
		{"zero rate", 500, 0, 0, 500},
		{"max rate", 200, 30, 60, 140},
		{"fractional amount", 99.99, 10, 9.999, 89.991},
		{"sub-cent amount", 0.015, 10, 0.0015, 0.0135},
		{"non-cent-aligned", 33.333, 10, 3.3333, 29.9997},
		{"zero amount", 0, 10, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			commission, earning := Split(tc.amount, tc.rate)
			assert.InDelta(t, tc.wantCommission, commission, 1e-9)
			assert.InDelta(t, tc.wantEarning, earning, 1e-9)
			assert.InDelta(t, tc.amount, commission+earning, 1e-12)
		})
	}
}

func TestSplitKeepsFullPrecision(t *testing.T) {
	// Cent-rounding either side would turn 3.3333 into 3.33 and break the
	// sum for sub-cent amounts.
	commission, earning := Split(33.333, 10)
	assert.InDelta(t, 3.3333, commission, 1e-9)
	assert.InDelta(t, 33.333, commission+earning, 1e-12)

	commission, earning = Split(0.015, 10)
	assert.InDelta(t, 0.0015, commission, 1e-9)
	assert.InDelta(t, 0.015, commission+earning, 1e-12)
}

func TestRateFor(t *testing.T) {
	assert.Equal(t, models.DefaultCommissionRate, RateFor(nil))

	valid := &models.Provider{ID: "p1", CommissionRate: 15}
	assert.Equal(t, 15.0, RateFor(valid))

	zero := &models.Provider{ID: "p2", CommissionRate: 0}
	assert.Equal(t, 0.0, RateFor(zero))

	tooHigh := &models.Provider{ID: "p3", CommissionRate: 45}
	assert.Equal(t, models.DefaultCommissionRate, RateFor(tooHigh))

	negative := &models.Provider{ID: "p4", CommissionRate: -5}
	assert.Equal(t, models.DefaultCommissionRate, RateFor(negative))
}
