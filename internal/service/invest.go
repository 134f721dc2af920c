package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"fundbridge/internal/domain"
	"fundbridge/internal/finance"
)

var defaultInvestmentSuggestion = decimal.NewFromInt(1000)

// Invest applies an investment to a campaign. The amount must fit the
// remaining capacity; the raised amount is clamped to the goal and the
// campaign transitions to FullyFunded on reaching it. The investment is
// also recorded for the investor's portfolio with its expected return
// derived from the campaign terms.
func (s *Service) Invest(ctx context.Context, investorID, campaignID string, amount decimal.Decimal) (domain.Campaign, domain.Investment, error) {
	if amount.Sign() <= 0 {
		return domain.Campaign{}, domain.Investment{}, validationErr("investment amount %s must be positive", amount)
	}

	campaign, coll, err := s.findCampaign(ctx, campaignID)
	if err != nil {
		return domain.Campaign{}, domain.Investment{}, err
	}
	remaining := campaign.RemainingCapacity()
	if amount.GreaterThan(remaining) {
		return domain.Campaign{}, domain.Investment{}, fmt.Errorf("investment %s over remaining capacity %s: %w", amount, remaining, domain.ErrOverCapacity)
	}

	updated, err := coll.UpdateInPlace(ctx, campaignID, func(c domain.Campaign) domain.Campaign {
		c.AmountRaised = minDecimal(c.FundingGoal, c.AmountRaised.Add(amount))
		if c.IsFullyFunded() {
			c.Status = domain.CampaignStatusFullyFunded
		}
		return c
	})
	if err != nil {
		return domain.Campaign{}, domain.Investment{}, err
	}

	expected, err := s.expectedReturn(updated, amount)
	if err != nil {
		return domain.Campaign{}, domain.Investment{}, err
	}
	investment := domain.Investment{
		ID:             domain.NewID("inv"),
		InvestorID:     investorID,
		CampaignID:     campaignID,
		CampaignType:   updated.Type,
		CampaignTitle:  updated.Title,
		Amount:         amount,
		ExpectedReturn: expected,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.Investments.Append(ctx, investment); err != nil {
		return domain.Campaign{}, domain.Investment{}, err
	}

	s.logger.Info().
		Str("campaign_id", campaignID).
		Str("investor_id", investorID).
		Str("amount", amount.String()).
		Str("status", string(updated.Status)).
		Msg("investment applied")
	return updated, investment, nil
}

// expectedReturn is the investor's pro-rata slice of what the campaign
// will repay: the fixed repayment total for an FOA, the capped repayment
// amount for an RSA.
func (s *Service) expectedReturn(c domain.Campaign, amount decimal.Decimal) (decimal.Decimal, error) {
	share, err := finance.ProRataShare(amount, c.FundingGoal)
	if err != nil {
		return decimal.Decimal{}, err
	}
	repayable := c.FixedRepaymentTotal
	if c.Type == domain.CampaignTypeRSA {
		repayable = c.FundingGoal.Mul(c.RepaymentCap)
	}
	return repayable.Mul(share).Div(hundred), nil
}

// SuggestedInvestment returns the pre-filled invest amount: 1000 capped
// at the campaign's remaining capacity.
func SuggestedInvestment(c domain.Campaign) decimal.Decimal {
	return minDecimal(defaultInvestmentSuggestion, c.RemainingCapacity())
}
