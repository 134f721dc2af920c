package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"fundbridge/internal/domain"
	"fundbridge/internal/finance"
)

// Funding-term bounds enforced by the creation wizards.
var (
	minFOAFundingGoal = decimal.NewFromInt(1000)
	minMultiplier     = decimal.NewFromFloat(1.2)
	maxMultiplier     = decimal.NewFromFloat(2.0)
	hundred           = decimal.NewFromInt(100)
)

// CreateFOAInput carries the terms collected by the FOA creation wizard.
type CreateFOAInput struct {
	OwnerID                 string
	Title                   string
	Description             string
	FundingGoal             decimal.Decimal
	RepaymentMultiplier     decimal.Decimal
	RepaymentDurationMonths int
}

// CreateFOA validates the terms, derives the fixed repayment figures once
// and appends the campaign. The derived figures are stored rather than
// recomputed so later displays stay stable.
func (s *Service) CreateFOA(ctx context.Context, in CreateFOAInput) (domain.Campaign, error) {
	if err := requireText("title", in.Title); err != nil {
		return domain.Campaign{}, err
	}
	if err := requireText("description", in.Description); err != nil {
		return domain.Campaign{}, err
	}
	if err := requireText("owner id", in.OwnerID); err != nil {
		return domain.Campaign{}, err
	}
	if in.FundingGoal.LessThan(minFOAFundingGoal) {
		return domain.Campaign{}, validationErr("funding goal %s below minimum %s", in.FundingGoal, minFOAFundingGoal)
	}
	if in.RepaymentMultiplier.LessThan(minMultiplier) || in.RepaymentMultiplier.GreaterThan(maxMultiplier) {
		return domain.Campaign{}, validationErr("repayment multiplier %s outside [%s, %s]", in.RepaymentMultiplier, minMultiplier, maxMultiplier)
	}
	if in.RepaymentDurationMonths <= 0 {
		return domain.Campaign{}, validationErr("repayment duration %d months must be positive", in.RepaymentDurationMonths)
	}

	total := finance.FixedRepayment(in.FundingGoal, in.RepaymentMultiplier)
	monthly, err := finance.MonthlyInstallment(total, in.RepaymentDurationMonths)
	if err != nil {
		return domain.Campaign{}, err
	}

	campaign := domain.Campaign{
		ID:                      domain.NewID("foa"),
		Type:                    domain.CampaignTypeFOA,
		OwnerID:                 in.OwnerID,
		Title:                   in.Title,
		Description:             in.Description,
		FundingGoal:             in.FundingGoal,
		AmountRaised:            decimal.Zero,
		Status:                  domain.CampaignStatusActive,
		CreatedAt:               s.now().UTC(),
		RepaymentMultiplier:     in.RepaymentMultiplier,
		RepaymentDurationMonths: in.RepaymentDurationMonths,
		FixedRepaymentTotal:     total,
		MonthlyInstallment:      monthly,
		Verification:            domain.VerificationNotSubmitted,
	}
	if err := s.store.IndividualCampaigns.Append(ctx, campaign); err != nil {
		return domain.Campaign{}, err
	}
	s.logger.Info().Str("campaign_id", campaign.ID).Str("owner_id", in.OwnerID).Msg("foa campaign created")
	return campaign, nil
}

// CreateRSAInput carries the terms collected by the RSA creation form.
type CreateRSAInput struct {
	OwnerID                string
	Title                  string
	Description            string
	FundingGoal            decimal.Decimal
	RevenueSharePercentage decimal.Decimal
	RepaymentCap           decimal.Decimal
}

// CreateRSA validates the terms and appends the campaign with zeroed
// running totals.
func (s *Service) CreateRSA(ctx context.Context, in CreateRSAInput) (domain.Campaign, error) {
	if err := requireText("title", in.Title); err != nil {
		return domain.Campaign{}, err
	}
	if err := requireText("description", in.Description); err != nil {
		return domain.Campaign{}, err
	}
	if err := requireText("owner id", in.OwnerID); err != nil {
		return domain.Campaign{}, err
	}
	if in.FundingGoal.Sign() <= 0 {
		return domain.Campaign{}, validationErr("funding goal %s must be positive", in.FundingGoal)
	}
	if in.RevenueSharePercentage.Sign() <= 0 || in.RevenueSharePercentage.GreaterThanOrEqual(hundred) {
		return domain.Campaign{}, validationErr("revenue share %s%% outside (0, 100)", in.RevenueSharePercentage)
	}
	if in.RepaymentCap.Sign() <= 0 {
		return domain.Campaign{}, validationErr("repayment cap %sx must be positive", in.RepaymentCap)
	}

	campaign := domain.Campaign{
		ID:                     domain.NewID("rsa"),
		Type:                   domain.CampaignTypeRSA,
		OwnerID:                in.OwnerID,
		Title:                  in.Title,
		Description:            in.Description,
		FundingGoal:            in.FundingGoal,
		AmountRaised:           decimal.Zero,
		Status:                 domain.CampaignStatusActive,
		CreatedAt:              s.now().UTC(),
		RevenueSharePercentage: in.RevenueSharePercentage,
		RepaymentCap:           in.RepaymentCap,
		MonthlyRevenue:         decimal.Zero,
		TotalRevenuePaid:       decimal.Zero,
	}
	if err := s.store.StartupCampaigns.Append(ctx, campaign); err != nil {
		return domain.Campaign{}, err
	}
	s.logger.Info().Str("campaign_id", campaign.ID).Str("owner_id", in.OwnerID).Msg("rsa campaign created")
	return campaign, nil
}

// verificationTransitions lists the allowed employment-verification moves.
var verificationTransitions = map[domain.VerificationStatus][]domain.VerificationStatus{
	domain.VerificationNotSubmitted: {domain.VerificationPending},
	domain.VerificationPending:      {domain.VerificationVerified, domain.VerificationRejected},
	domain.VerificationRejected:     {domain.VerificationPending},
}

// UpdateVerification moves an FOA campaign's employment verification
// status. Only the campaign owner may trigger it.
func (s *Service) UpdateVerification(ctx context.Context, ownerID, campaignID string, next domain.VerificationStatus) (domain.Campaign, error) {
	campaign, _, err := s.findCampaign(ctx, campaignID)
	if err != nil {
		return domain.Campaign{}, err
	}
	if campaign.Type != domain.CampaignTypeFOA {
		return domain.Campaign{}, fmt.Errorf("verification on %s campaign: %w", campaign.Type, domain.ErrWrongCampaignType)
	}
	if campaign.OwnerID != ownerID {
		return domain.Campaign{}, fmt.Errorf("campaign %q owned by another user: %w", campaignID, domain.ErrUnauthorized)
	}
	allowed := false
	for _, candidate := range verificationTransitions[campaign.Verification] {
		if candidate == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return domain.Campaign{}, validationErr("verification transition %s -> %s not allowed", campaign.Verification, next)
	}

	return s.store.IndividualCampaigns.UpdateInPlace(ctx, campaignID, func(c domain.Campaign) domain.Campaign {
		c.Verification = next
		return c
	})
}
