package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportStatus enumerates revenue report review states.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "Pending"
	ReportStatusApproved ReportStatus = "Approved"
	ReportStatusDisputed ReportStatus = "Disputed"
)

// RevenueReport is a monthly revenue declaration for an RSA campaign.
// At most one report may exist per (CampaignID, Month) pair.
type RevenueReport struct {
	ID         string          `json:"id"`
	CampaignID string          `json:"campaignId"`
	Month      string          `json:"month"`
	Revenue    decimal.Decimal `json:"revenue"`
	Status     ReportStatus    `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// RecordID implements the store record contract.
func (r RevenueReport) RecordID() string { return r.ID }

// MonthKey renders the year-month key reports are deduplicated on.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
