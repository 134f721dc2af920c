package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"fundbridge/internal/domain"
)

// Record is anything a Collection can hold.
type Record interface {
	RecordID() string
}

// Collection provides list/append/update-in-place over one serialized
// JSON array. A mutex serializes mutations so the non-atomic
// read-modify-write cycle keeps single-writer discipline even when the
// KV is shared.
type Collection[T Record] struct {
	key    string
	kv     KV
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewCollection binds a collection to its payload key.
func NewCollection[T Record](kv KV, key string, logger zerolog.Logger) *Collection[T] {
	return &Collection[T]{key: key, kv: kv, logger: logger}
}

// ListAll returns every record in the collection. An absent or malformed
// payload yields an empty slice, never an error: availability is favored
// over integrity here, matching the store's recovery policy. Corruption
// is logged, not surfaced.
func (c *Collection[T]) ListAll(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Append reads the full collection, adds the record and writes the whole
// collection back. Id uniqueness is the generator's responsibility; the
// store does not re-verify it.
func (c *Collection[T]) Append(ctx context.Context, record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	records = append(records, record)
	return c.save(ctx, records)
}

// UpdateInPlace locates the record by id, applies update to produce its
// replacement and writes the whole collection back. A missing id returns
// domain.ErrNotFound rather than silently writing back unchanged.
func (c *Collection[T]) UpdateInPlace(ctx context.Context, id string, update func(T) T) (T, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for i, record := range records {
		if record.RecordID() != id {
			continue
		}
		updated := update(record)
		records[i] = updated
		if err := c.save(ctx, records); err != nil {
			return zero, err
		}
		return updated, nil
	}
	return zero, fmt.Errorf("update %q in %q: %w", id, c.key, domain.ErrNotFound)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	payload, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("load collection %q: %w", c.key, err)
	}
	if !ok || payload == "" {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		c.logger.Warn().Err(err).Str("collection", c.key).Msg("discarding malformed collection payload")
		return []T{}, nil
	}
	return records, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("serialize collection %q: %w", c.key, err)
	}
	if err := c.kv.Set(ctx, c.key, string(payload)); err != nil {
		return fmt.Errorf("save collection %q: %w", c.key, err)
	}
	return nil
}

// Store bundles the application's collections around one KV.
type Store struct {
	IndividualCampaigns *Collection[domain.Campaign]
	StartupCampaigns    *Collection[domain.Campaign]
	RevenueReports      *Collection[domain.RevenueReport]
	Investments         *Collection[domain.Investment]
}

// New wires the named collections over the given KV.
func New(kv KV, logger zerolog.Logger) *Store {
	return &Store{
		IndividualCampaigns: NewCollection[domain.Campaign](kv, KeyIndividualCampaigns, logger),
		StartupCampaigns:    NewCollection[domain.Campaign](kv, KeyStartupCampaigns, logger),
		RevenueReports:      NewCollection[domain.RevenueReport](kv, KeyRevenueReports, logger),
		Investments:         NewCollection[domain.Investment](kv, KeyInvestments, logger),
	}
}
