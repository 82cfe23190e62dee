package ledger

import (
	"math/big"
)

const (
	// BoostThresholdCount is the number of tiers above the base 1x multiplier.
	BoostThresholdCount = 4
	BaseMultiplier      = 1
	MaxMultiplier       = BaseMultiplier + BoostThresholdCount
)

// ValidateBoostThresholds checks that there are exactly four strictly increasing, positive thresholds.
func ValidateBoostThresholds(thresholds []*big.Int) error {
	if len(thresholds) != BoostThresholdCount {
		return ErrInvalidBoostConfig
	}
	for i, threshold := range thresholds {
		if threshold == nil || threshold.Sign() <= 0 {
			return ErrInvalidBoostConfig
		}
		if i > 0 && threshold.Cmp(thresholds[i-1]) <= 0 {
			return ErrInvalidBoostConfig
		}
	}
	return nil
}

// ResolveTier converts a native payment into a reward multiplier in [1, 5].
// Each threshold at or below the payment adds one step. A zero payment is always 1x.
func ResolveTier(payment *big.Int, thresholds []*big.Int) uint8 {
	if payment == nil || payment.Sign() <= 0 {
		return BaseMultiplier
	}

	multiplier := BaseMultiplier
	for _, threshold := range thresholds {
		if threshold != nil && threshold.Cmp(payment) <= 0 {
			multiplier++
		}
	}

	if multiplier > MaxMultiplier {
		multiplier = MaxMultiplier
	}
	return uint8(multiplier)
}
