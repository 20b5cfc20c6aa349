package commission

import (
	"fixly/models"
	"fixly/utils"

	"go.uber.org/zap"
)

// Split divides a booking amount into the platform commission and the
// provider's earning. No rounding is applied: both sides carry full
// floating precision so that they sum back to the amount exactly.
func Split(amount, rate float64) (commissionAmount, providerEarning float64) {
	commissionAmount = amount * rate / 100
	providerEarning = amount - commissionAmount
	return commissionAmount, providerEarning
}

// RateFor returns the commission rate to apply for a provider. Rates
// outside the allowed band fall back to the platform default.
func RateFor(p *models.Provider) float64 {
	if p == nil {
		return models.DefaultCommissionRate
	}
	rate := p.CommissionRate
	if rate < 0 || rate > models.MaxCommissionRate {
		utils.GetLogger().Warn("Provider has an out-of-range commission rate, using default",
			zap.String("providerId", p.ID),
			zap.Float64("rate", rate))
		return models.DefaultCommissionRate
	}
	return rate
}
