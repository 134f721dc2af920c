package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"fundbridge/internal/domain"
	"fundbridge/internal/finance"
)

// ReportRevenue records a monthly revenue declaration for an RSA campaign
// and accrues the investor share onto the campaign's running totals. One
// report is allowed per campaign per month. The repayment cap is not
// enforced against TotalRevenuePaid.
func (s *Service) ReportRevenue(ctx context.Context, ownerID, campaignID string, revenue decimal.Decimal) (domain.RevenueReport, domain.Campaign, error) {
	if revenue.Sign() < 0 {
		return domain.RevenueReport{}, domain.Campaign{}, validationErr("revenue %s must not be negative", revenue)
	}

	campaign, _, err := s.findCampaign(ctx, campaignID)
	if err != nil {
		return domain.RevenueReport{}, domain.Campaign{}, err
	}
	if campaign.Type != domain.CampaignTypeRSA {
		return domain.RevenueReport{}, domain.Campaign{}, fmt.Errorf("revenue report on %s campaign: %w", campaign.Type, domain.ErrWrongCampaignType)
	}
	if campaign.OwnerID != ownerID {
		return domain.RevenueReport{}, domain.Campaign{}, fmt.Errorf("campaign %q owned by another user: %w", campaignID, domain.ErrUnauthorized)
	}

	month := domain.MonthKey(s.now())
	existing, err := s.store.RevenueReports.ListAll(ctx)
	if err != nil {
		return domain.RevenueReport{}, domain.Campaign{}, err
	}
	for _, r := range existing {
		if r.CampaignID == campaignID && r.Month == month {
			return domain.RevenueReport{}, domain.Campaign{}, fmt.Errorf("report for %s/%s: %w", campaignID, month, domain.ErrDuplicateReport)
		}
	}

	report := domain.RevenueReport{
		ID:         domain.NewID("report"),
		CampaignID: campaignID,
		Month:      month,
		Revenue:    revenue,
		Status:     domain.ReportStatusPending,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.RevenueReports.Append(ctx, report); err != nil {
		return domain.RevenueReport{}, domain.Campaign{}, err
	}

	share := finance.RevenueShare(revenue, campaign.RevenueSharePercentage)
	updated, err := s.store.StartupCampaigns.UpdateInPlace(ctx, campaignID, func(c domain.Campaign) domain.Campaign {
		c.MonthlyRevenue = revenue
		c.TotalRevenuePaid = c.TotalRevenuePaid.Add(share)
		return c
	})
	if err != nil {
		return domain.RevenueReport{}, domain.Campaign{}, err
	}

	s.logger.Info().
		Str("campaign_id", campaignID).
		Str("month", month).
		Str("revenue", revenue.String()).
		Str("share", share.String()).
		Msg("revenue reported")
	return report, updated, nil
}

// CampaignReports lists the revenue reports filed for one campaign.
func (s *Service) CampaignReports(ctx context.Context, campaignID string) ([]domain.RevenueReport, error) {
	all, err := s.store.RevenueReports.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	reports := []domain.RevenueReport{}
	for _, r := range all {
		if r.CampaignID == campaignID {
			reports = append(reports, r)
		}
	}
	return reports, nil
}
