// Package service orchestrates the campaign operations: creation,
// investment, revenue reporting, verification and marketplace listings.
// It owns validation and derived-field recomputation; the store only
// moves records.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundbridge/internal/domain"
	"fundbridge/internal/store"
)

// Service coordinates campaign operations over the record store.
type Service struct {
	store  *store.Store
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a Service over the given store.
func New(st *store.Store, logger zerolog.Logger) *Service {
	return &Service{store: st, logger: logger, now: time.Now}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetCampaign looks a campaign up across both collections.
func (s *Service) GetCampaign(ctx context.Context, id string) (domain.Campaign, error) {
	campaign, _, err := s.findCampaign(ctx, id)
	return campaign, err
}

// findCampaign returns the campaign and the collection it lives in.
func (s *Service) findCampaign(ctx context.Context, id string) (domain.Campaign, *store.Collection[domain.Campaign], error) {
	for _, coll := range []*store.Collection[domain.Campaign]{s.store.IndividualCampaigns, s.store.StartupCampaigns} {
		campaigns, err := coll.ListAll(ctx)
		if err != nil {
			return domain.Campaign{}, nil, err
		}
		for _, c := range campaigns {
			if c.ID == id {
				return c, coll, nil
			}
		}
	}
	return domain.Campaign{}, nil, fmt.Errorf("campaign %q: %w", id, domain.ErrNotFound)
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, domain.ErrValidation)...)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return validationErr("%s must not be empty", field)
	}
	return nil
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// IsValidationError reports whether err belongs to the user-input error
// class surfaced as 400s.
func IsValidationError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrOverCapacity) ||
		errors.Is(err, domain.ErrDuplicateReport) ||
		errors.Is(err, domain.ErrWrongCampaignType)
}
