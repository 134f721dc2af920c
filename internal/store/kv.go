// Package store persists campaign collections over a flat string
// key-value payload store. Each collection is serialized as a single JSON
// array under a fixed key and every mutation is a full read-modify-write
// of that payload.
package store

import "context"

// Logical collection keys. Each holds one serialized JSON array.
const (
	KeyIndividualCampaigns = "user_foas"
	KeyStartupCampaigns    = "startup_campaigns"
	KeyRevenueReports      = "revenue_reports"
	KeyInvestments         = "user_investments"
)

// KV is the flat payload store collections sit on. Implementations must
// be safe for concurrent use; collection-level mutation ordering is
// handled above this interface.
type KV interface {
	// Get returns the payload under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the payload under key, replacing any previous value.
	Set(ctx context.Context, key, payload string) error
}
