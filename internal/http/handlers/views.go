package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"fundbridge/internal/display"
	"fundbridge/internal/domain"
	"fundbridge/internal/finance"
	"fundbridge/internal/middleware"
	"fundbridge/internal/service"
)

// campaignView decorates a campaign with display-only derived values.
// Stored figures are never altered by formatting.
type campaignView struct {
	domain.Campaign
	FundingProgress        decimal.Decimal `json:"fundingProgress"`
	FundingProgressDisplay string          `json:"fundingProgressDisplay"`
	FundingGoalDisplay     string          `json:"fundingGoalDisplay"`
	AmountRaisedDisplay    string          `json:"amountRaisedDisplay"`
	SuggestedInvestment    decimal.Decimal `json:"suggestedInvestment"`
}

func newCampaignView(c domain.Campaign, locale string) campaignView {
	progress, err := finance.FundingProgress(c.AmountRaised, c.FundingGoal)
	if err != nil {
		progress = decimal.Zero
	}
	return campaignView{
		Campaign:               c,
		FundingProgress:        progress.Round(1),
		FundingProgressDisplay: display.Percent(progress),
		FundingGoalDisplay:     display.USD(c.FundingGoal, locale),
		AmountRaisedDisplay:    display.USD(c.AmountRaised, locale),
		SuggestedInvestment:    service.SuggestedInvestment(c),
	}
}

func campaignViews(campaigns []domain.Campaign, locale string) []campaignView {
	views := make([]campaignView, len(campaigns))
	for i, c := range campaigns {
		views[i] = newCampaignView(c, locale)
	}
	return views
}

func requestLocale(r *http.Request) string {
	return middleware.LocaleFromContext(r.Context())
}
