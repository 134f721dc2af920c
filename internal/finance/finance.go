// Package finance holds the pure calculation functions behind campaign
// funding and repayment figures. Every function is deterministic and
// side-effect free; rounding for display is the caller's concern and
// never feeds back into stored values.
package finance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrDivision reports a division against a non-positive divisor. Callers
// are expected to validate inputs upstream; the functions here never
// swallow the condition silently.
var ErrDivision = errors.New("division by non-positive divisor")

var hundred = decimal.NewFromInt(100)

// FixedRepayment returns the total an FOA will repay: fundingGoal * multiplier.
func FixedRepayment(fundingGoal, multiplier decimal.Decimal) decimal.Decimal {
	return fundingGoal.Mul(multiplier)
}

// MonthlyInstallment splits a fixed repayment total across the repayment
// duration.
func MonthlyInstallment(total decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Decimal{}, fmt.Errorf("installment over %d months: %w", months, ErrDivision)
	}
	return total.Div(decimal.NewFromInt(int64(months))), nil
}

// RevenueShare returns the slice of a month's revenue owed to investors:
// monthlyRevenue * sharePercentage / 100.
func RevenueShare(monthlyRevenue, sharePercentage decimal.Decimal) decimal.Decimal {
	return monthlyRevenue.Mul(sharePercentage).Div(hundred)
}

// FundingProgress returns how far a campaign is toward its goal as a
// percentage, clamped to [0, 100] for display. The goal is always created
// positive; a non-positive goal is a precondition violation.
func FundingProgress(amountRaised, fundingGoal decimal.Decimal) (decimal.Decimal, error) {
	if fundingGoal.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("funding progress with goal %s: %w", fundingGoal, ErrDivision)
	}
	pct := amountRaised.Div(fundingGoal).Mul(hundred)
	if pct.Sign() < 0 {
		return decimal.Zero, nil
	}
	if pct.GreaterThan(hundred) {
		return hundred, nil
	}
	return pct, nil
}

// ROI returns actualReturn / investmentAmount as a percentage.
func ROI(actualReturn, investmentAmount decimal.Decimal) (decimal.Decimal, error) {
	if investmentAmount.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("roi with investment %s: %w", investmentAmount, ErrDivision)
	}
	return actualReturn.Div(investmentAmount).Mul(hundred), nil
}

// ProRataShare returns the investor's ownership fraction of a campaign as
// a percentage. Used for expected-return display only, never stored on the
// campaign.
func ProRataShare(investmentAmount, fundingGoal decimal.Decimal) (decimal.Decimal, error) {
	if fundingGoal.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("pro-rata share with goal %s: %w", fundingGoal, ErrDivision)
	}
	return investmentAmount.Div(fundingGoal).Mul(hundred), nil
}
