package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CampaignType distinguishes the two funding agreement variants.
type CampaignType string

const (
	CampaignTypeFOA CampaignType = "Individual_FOA"
	CampaignTypeRSA CampaignType = "Startup_RSA"
)

// CampaignStatus enumerates the campaign lifecycle states.
type CampaignStatus string

const (
	CampaignStatusActive      CampaignStatus = "Active"
	CampaignStatusFullyFunded CampaignStatus = "FullyFunded"
	CampaignStatusCompleted   CampaignStatus = "Completed"
	CampaignStatusDefaulted   CampaignStatus = "Defaulted"
)

// VerificationStatus tracks employment verification for FOA campaigns.
// Repayment activation is gated on Verified.
type VerificationStatus string

const (
	VerificationNotSubmitted VerificationStatus = "NotSubmitted"
	VerificationPending      VerificationStatus = "Pending"
	VerificationVerified     VerificationStatus = "Verified"
	VerificationRejected     VerificationStatus = "Rejected"
)

// Campaign is a funding campaign record. Type selects which of the
// variant term blocks is meaningful: FOA campaigns carry fixed repayment
// terms, RSA campaigns carry revenue-share terms. Terms are immutable
// after creation; only AmountRaised, Status and the RSA running totals
// are mutated afterwards.
type Campaign struct {
	ID           string          `json:"id"`
	Type         CampaignType    `json:"type"`
	OwnerID      string          `json:"ownerId"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	FundingGoal  decimal.Decimal `json:"fundingGoal"`
	AmountRaised decimal.Decimal `json:"amountRaised"`
	Status       CampaignStatus  `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`

	// Fixed-Outcome Agreement terms.
	RepaymentMultiplier     decimal.Decimal    `json:"repaymentMultiplier"`
	RepaymentDurationMonths int                `json:"repaymentDurationMonths"`
	FixedRepaymentTotal     decimal.Decimal    `json:"fixedRepaymentTotal"`
	MonthlyInstallment      decimal.Decimal    `json:"monthlyInstallmentAmount"`
	Verification            VerificationStatus `json:"employmentVerificationStatus,omitempty"`

	// Revenue Share Agreement terms.
	RevenueSharePercentage decimal.Decimal `json:"revenueSharePercentage"`
	RepaymentCap           decimal.Decimal `json:"repaymentCap"`
	MonthlyRevenue         decimal.Decimal `json:"monthlyRevenue"`
	TotalRevenuePaid       decimal.Decimal `json:"totalRevenuePaid"`
}

// RecordID implements the store record contract.
func (c Campaign) RecordID() string { return c.ID }

// RemainingCapacity reports how much funding the campaign can still accept.
func (c Campaign) RemainingCapacity() decimal.Decimal {
	return c.FundingGoal.Sub(c.AmountRaised)
}

// IsFullyFunded reports whether the raised amount has reached the goal.
func (c Campaign) IsFullyFunded() bool {
	return c.AmountRaised.GreaterThanOrEqual(c.FundingGoal)
}

// NewID generates a collision-resistant record id: a type prefix, the
// creation timestamp in milliseconds and a random suffix.
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}
