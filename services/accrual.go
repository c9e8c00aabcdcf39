package services

import "github.com/shopspring/decimal"

// Reward is the accrual function: baseRate tokens/second at multiplier 1,
// scaled linearly by the multiplier. Callers clamp elapsed time to the
// session's planned duration before calling; negative elapsed is treated
// as zero so a skewed clock can never produce a negative award.
func Reward(elapsedSeconds int64, multiplier int, baseRate decimal.Decimal) decimal.Decimal {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	if multiplier < 1 {
		multiplier = 1
	}

	return baseRate.
		Mul(decimal.NewFromInt(int64(multiplier))).
		Mul(decimal.NewFromInt(elapsedSeconds))
}

// ClampMultiplier bounds a requested multiplier into [1, max].
func ClampMultiplier(multiplier, max int) int {
	if multiplier < 1 {
		return 1
	}
	if multiplier > max {
		return max
	}
	return multiplier
}
