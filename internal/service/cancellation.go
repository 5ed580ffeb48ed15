package service

import (
	"github.com/shopspring/decimal"

	"dispatch/internal/domain"
)

// Cancellation policy defaults.
var (
	DefaultOngoingCancellationCharge = decimal.NewFromInt(50)
	DefaultCancellationCommission    = decimal.NewFromInt(20)
	DefaultDriverCancellationPenalty = decimal.NewFromInt(50)
)

// CancellationPolicyConfig holds the amounts a cancellation may cost.
type CancellationPolicyConfig struct {
	// OngoingCharge is billed to a customer who cancels a ride already under way.
	OngoingCharge decimal.Decimal
	// ChargeCommission is the platform's percentage of OngoingCharge.
	ChargeCommission decimal.Decimal
	// DriverPenalty is charged to a driver who cancels an accepted ride.
	DriverPenalty decimal.Decimal
}

// DefaultCancellationPolicyConfig returns the default cancellation amounts.
func DefaultCancellationPolicyConfig() CancellationPolicyConfig {
	return CancellationPolicyConfig{
		OngoingCharge:    DefaultOngoingCancellationCharge,
		ChargeCommission: DefaultCancellationCommission,
		DriverPenalty:    DefaultDriverCancellationPenalty,
	}
}

// CancellationPolicy decides the raw amounts of a cancellation from who
// cancels and how far the ride got. SettlementEngine turns them into the
// ride's settlement.
type CancellationPolicy struct {
	cfg        CancellationPolicyConfig
	settlement *SettlementEngine
}

// NewCancellationPolicy creates a new CancellationPolicy.
func NewCancellationPolicy(cfg CancellationPolicyConfig, settlement *SettlementEngine) *CancellationPolicy {
	return &CancellationPolicy{cfg: cfg, settlement: settlement}
}

// DetailsFor returns the cancellation amounts when by cancels ride.
//
// A driver pays DriverPenalty whatever the ride's state. A customer cancels a
// SCHEDULED ride for free and pays OngoingCharge for an ONGOING one, split
// between driver and platform by ChargeCommission. Cancellations by an admin
// cost nobody anything.
func (p *CancellationPolicy) DetailsFor(ride domain.Ride, by domain.Role) domain.CancellationDetails {
	switch by {
	case domain.RoleDriver:
		return domain.CancellationDetails{DriverPenalty: p.cfg.DriverPenalty}
	case domain.RoleCustomer:
		if ride.Status != domain.RideStatusOngoing {
			return domain.CancellationDetails{}
		}
		driverShare, systemShare := p.settlement.ComputeCompletion(p.cfg.OngoingCharge, p.cfg.ChargeCommission)
		return domain.CancellationDetails{
			CancellationCharge: p.cfg.OngoingCharge,
			DriverEarning:      driverShare,
			SystemEarning:      systemShare,
		}
	default:
		return domain.CancellationDetails{}
	}
}
