package service

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"fundbridge/internal/domain"
)

// ListQuery narrows and orders the marketplace listing.
type ListQuery struct {
	Search string // matches title or description, case-insensitive
	Type   string // "", Individual_FOA or Startup_RSA
	Filter string // all, active, funded, partial
	Sort   string // newest, oldest, funding_high, funding_low, progress
}

// Marketplace merges both campaign collections and applies the query.
func (s *Service) Marketplace(ctx context.Context, q ListQuery) ([]domain.Campaign, error) {
	individual, err := s.store.IndividualCampaigns.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	startup, err := s.store.StartupCampaigns.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	campaigns := append(individual, startup...)

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		campaigns = filterCampaigns(campaigns, func(c domain.Campaign) bool {
			return strings.Contains(strings.ToLower(c.Title), needle) ||
				strings.Contains(strings.ToLower(c.Description), needle)
		})
	}
	if q.Type != "" {
		campaigns = filterCampaigns(campaigns, func(c domain.Campaign) bool {
			return string(c.Type) == q.Type
		})
	}
	switch q.Filter {
	case "", "all":
	case "active":
		campaigns = filterCampaigns(campaigns, func(c domain.Campaign) bool {
			return c.Status == domain.CampaignStatusActive
		})
	case "funded":
		campaigns = filterCampaigns(campaigns, func(c domain.Campaign) bool {
			return c.IsFullyFunded()
		})
	case "partial":
		campaigns = filterCampaigns(campaigns, func(c domain.Campaign) bool {
			return c.AmountRaised.Sign() > 0 && !c.IsFullyFunded()
		})
	}

	sortCampaigns(campaigns, q.Sort)
	return campaigns, nil
}

func filterCampaigns(campaigns []domain.Campaign, keep func(domain.Campaign) bool) []domain.Campaign {
	out := campaigns[:0]
	for _, c := range campaigns {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func sortCampaigns(campaigns []domain.Campaign, by string) {
	switch by {
	case "oldest":
		sort.SliceStable(campaigns, func(i, j int) bool {
			return campaigns[i].CreatedAt.Before(campaigns[j].CreatedAt)
		})
	case "funding_high":
		sort.SliceStable(campaigns, func(i, j int) bool {
			return campaigns[i].FundingGoal.GreaterThan(campaigns[j].FundingGoal)
		})
	case "funding_low":
		sort.SliceStable(campaigns, func(i, j int) bool {
			return campaigns[i].FundingGoal.LessThan(campaigns[j].FundingGoal)
		})
	case "progress":
		sort.SliceStable(campaigns, func(i, j int) bool {
			// Cross-multiplied to avoid dividing by the goals.
			left := campaigns[i].AmountRaised.Mul(campaigns[j].FundingGoal)
			right := campaigns[j].AmountRaised.Mul(campaigns[i].FundingGoal)
			return left.GreaterThan(right)
		})
	default: // newest
		sort.SliceStable(campaigns, func(i, j int) bool {
			return campaigns[i].CreatedAt.After(campaigns[j].CreatedAt)
		})
	}
}

// Summary aggregates the marketplace header figures.
type Summary struct {
	Campaigns        int             `json:"campaigns"`
	TotalOpportunity decimal.Decimal `json:"totalOpportunity"`
	FullyFunded      int             `json:"fullyFunded"`
}

// MarketplaceSummary totals both collections for the header badges.
func (s *Service) MarketplaceSummary(ctx context.Context) (Summary, error) {
	campaigns, err := s.Marketplace(ctx, ListQuery{})
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{Campaigns: len(campaigns), TotalOpportunity: decimal.Zero}
	for _, c := range campaigns {
		summary.TotalOpportunity = summary.TotalOpportunity.Add(c.FundingGoal)
		if c.IsFullyFunded() {
			summary.FullyFunded++
		}
	}
	return summary, nil
}

// OwnerCampaigns lists campaigns created by one user across both
// collections, newest first.
func (s *Service) OwnerCampaigns(ctx context.Context, ownerID string) ([]domain.Campaign, error) {
	campaigns, err := s.Marketplace(ctx, ListQuery{})
	if err != nil {
		return nil, err
	}
	owned := []domain.Campaign{}
	for _, c := range campaigns {
		if c.OwnerID == ownerID {
			owned = append(owned, c)
		}
	}
	return owned, nil
}

// Portfolio aggregates an investor's recorded investments.
type Portfolio struct {
	Investments         []domain.Investment `json:"investments"`
	TotalInvested       decimal.Decimal     `json:"totalInvested"`
	TotalExpectedReturn decimal.Decimal     `json:"totalExpectedReturn"`
}

// InvestorPortfolio lists one investor's investments with totals.
func (s *Service) InvestorPortfolio(ctx context.Context, investorID string) (Portfolio, error) {
	all, err := s.store.Investments.ListAll(ctx)
	if err != nil {
		return Portfolio{}, err
	}
	p := Portfolio{
		Investments:         []domain.Investment{},
		TotalInvested:       decimal.Zero,
		TotalExpectedReturn: decimal.Zero,
	}
	for _, inv := range all {
		if inv.InvestorID != investorID {
			continue
		}
		p.Investments = append(p.Investments, inv)
		p.TotalInvested = p.TotalInvested.Add(inv.Amount)
		p.TotalExpectedReturn = p.TotalExpectedReturn.Add(inv.ExpectedReturn)
	}
	return p, nil
}
