package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment records an investor's stake in a campaign. ExpectedReturn is
// derived once at investment time from the campaign terms: the investor's
// pro-rata share of the fixed repayment total for an FOA, or of the capped
// repayment amount for an RSA.
type Investment struct {
	ID             string          `json:"id"`
	InvestorID     string          `json:"investorId"`
	CampaignID     string          `json:"campaignId"`
	CampaignType   CampaignType    `json:"campaignType"`
	CampaignTitle  string          `json:"campaignTitle"`
	Amount         decimal.Decimal `json:"investmentAmount"`
	ExpectedReturn decimal.Decimal `json:"expectedReturn"`
	CreatedAt      time.Time       `json:"investmentDate"`
}

// RecordID implements the store record contract.
func (i Investment) RecordID() string { return i.ID }
