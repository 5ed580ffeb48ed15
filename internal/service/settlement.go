package service

import (
	"github.com/shopspring/decimal"

	"dispatch/internal/domain"
)

// DefaultPenaltyFee is what the platform keeps when a cancellation carries a
// driver penalty.
var DefaultPenaltyFee = decimal.NewFromInt(120)

var hundred = decimal.NewFromInt(100)

// SettlementEngine derives the money fields of finished rides.
type SettlementEngine struct {
	penaltyFee decimal.Decimal
}

// NewSettlementEngine creates a SettlementEngine that charges penaltyFee on
// penalised cancellations.
func NewSettlementEngine(penaltyFee decimal.Decimal) *SettlementEngine {
	return &SettlementEngine{penaltyFee: penaltyFee}
}

// ComputeCancellation settles a cancelled ride from the amounts supplied by
// the cancellation policy. The ride's own earnings are reset: the driver gets
// nothing and the platform gets the penalty fee only when DriverPenalty is
// non-zero.
func (e *SettlementEngine) ComputeCancellation(d domain.CancellationDetails) (domain.Settlement, error) {
	for _, amount := range []decimal.Decimal{d.CancellationCharge, d.DriverEarning, d.SystemEarning, d.DriverPenalty} {
		if amount.IsNegative() {
			return domain.Settlement{}, ErrNegativeAmount
		}
	}

	systemEarning := decimal.Zero
	if !d.DriverPenalty.IsZero() {
		systemEarning = e.penaltyFee
	}

	return domain.Settlement{
		CancellationCharge:        d.CancellationCharge,
		CancellationDriverEarning: d.DriverEarning,
		CancellationSystemEarning: d.SystemEarning,
		DriverPenalty:             d.DriverPenalty,
		DriverEarning:             decimal.Zero,
		SystemEarning:             systemEarning,
	}, nil
}

// ComputeCompletion splits totalCost by the commission percentage. The
// platform share is rounded to cents and the driver gets the remainder, so
// the two always add up to totalCost.
func (e *SettlementEngine) ComputeCompletion(totalCost, commission decimal.Decimal) (driverEarning, systemEarning decimal.Decimal) {
	systemEarning = totalCost.Mul(commission).Div(hundred).Round(2)
	driverEarning = totalCost.Sub(systemEarning)
	return driverEarning, systemEarning
}
