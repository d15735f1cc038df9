// Package archive keeps the most recent diagnostic results in a single
// JSON envelope stored under one key of a key-value medium.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
)

const (
	// StorageKey holds the serialized StoredResults envelope.
	StorageKey = "aws-identity-gift-results"

	// probeKey is written then removed to check the medium is usable.
	probeKey = "__storage_test__"

	maxResults = 9
)

// ErrQuotaExceeded must be wrapped by a Medium when a write is rejected
// because the medium is full.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Medium is the key-value backend holding the envelope.
type Medium interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key in a single call.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Order selects the timestamp sort direction.
type Order int

const (
	OrderDesc Order = iota
	OrderAsc
)

// ParseOrder maps "asc"/"desc" to an Order. Anything else is desc.
func ParseOrder(s string) Order {
	if s == "asc" {
		return OrderAsc
	}
	return OrderDesc
}

// Store is the capped result archive.
type Store struct {
	medium Medium
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for read failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the time source used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store over medium.
func New(medium Medium, opts ...Option) *Store {
	s := &Store{
		medium: medium,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// MaxCount is the archive capacity.
func (s *Store) MaxCount() int {
	return maxResults
}

// GetAll returns every stored result sorted by timestamp. Missing or
// corrupt content reads as an empty archive.
func (s *Store) GetAll(ctx context.Context, order Order) []gift.DiagnosticResult {
	results, err := s.load(ctx)
	if err != nil {
		apperr.Log(s.logger, apperr.New(apperr.StorageUnavailable, apperr.OpArchiveRead, err))
		return []gift.DiagnosticResult{}
	}
	sortByTimestamp(results, order)
	return results
}

// GetByID returns the result with id, if present.
func (s *Store) GetByID(ctx context.Context, id string) (*gift.DiagnosticResult, bool) {
	for _, r := range s.GetAll(ctx, OrderDesc) {
		if r.ID == id {
			r := r
			return &r, true
		}
	}
	return nil, false
}

// Count returns the number of stored results.
func (s *Store) Count(ctx context.Context) int {
	return len(s.GetAll(ctx, OrderDesc))
}

// Save prepends result and evicts the oldest entries beyond capacity. A
// failed read aborts the save so the stored list is never replaced blind.
func (s *Store) Save(ctx context.Context, result gift.DiagnosticResult) error {
	if err := s.probe(ctx); err != nil {
		return apperr.New(apperr.StorageUnavailable, apperr.OpArchiveSave, err)
	}

	if result.Timestamp.IsZero() {
		result.Timestamp = s.now().UTC()
	}
	result.GiftCardImage = ""

	existing, err := s.load(ctx)
	if err != nil {
		return apperr.New(apperr.StorageUnavailable, apperr.OpArchiveSave, err).
			WithDetails(map[string]any{"id": result.ID})
	}
	sortByTimestamp(existing, OrderDesc)
	results := make([]gift.DiagnosticResult, 0, len(existing)+1)
	results = append(results, result)
	results = append(results, existing...)

	if len(results) > maxResults {
		sortByTimestamp(results, OrderDesc)
		results = results[:maxResults]
	}

	if err := s.write(ctx, results); err != nil {
		return s.writeError(apperr.OpArchiveSave, err).
			WithDetails(map[string]any{"id": result.ID})
	}
	return nil
}

// DeleteByID removes the result with id. Unknown ids are a no-op.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	existing, err := s.load(ctx)
	if err != nil {
		return apperr.New(apperr.StorageUnavailable, apperr.OpArchiveDel, err).
			WithDetails(map[string]any{"id": id})
	}
	kept := make([]gift.DiagnosticResult, 0, len(existing))
	for _, r := range existing {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(existing) {
		return nil
	}
	if err := s.write(ctx, kept); err != nil {
		return s.writeError(apperr.OpArchiveDel, err).
			WithDetails(map[string]any{"id": id})
	}
	return nil
}

// ClearAll removes the envelope entirely.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.medium.Remove(ctx, StorageKey); err != nil {
		return apperr.New(apperr.StorageUnavailable, apperr.OpArchiveClear, err)
	}
	return nil
}

func (s *Store) probe(ctx context.Context) error {
	if err := s.medium.Set(ctx, probeKey, probeKey); err != nil {
		return fmt.Errorf("probe write: %w", err)
	}
	if err := s.medium.Remove(ctx, probeKey); err != nil {
		return fmt.Errorf("probe remove: %w", err)
	}
	return nil
}

func (s *Store) load(ctx context.Context) ([]gift.DiagnosticResult, error) {
	raw, ok, err := s.medium.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read envelope: %w", err)
	}
	if !ok || raw == "" {
		return []gift.DiagnosticResult{}, nil
	}

	var env gift.StoredResults
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		s.logger.Warn("discarding corrupt archive envelope", zap.Error(err))
		return []gift.DiagnosticResult{}, nil
	}
	if env.Results == nil {
		return []gift.DiagnosticResult{}, nil
	}
	return env.Results, nil
}

func (s *Store) write(ctx context.Context, results []gift.DiagnosticResult) error {
	data, err := json.Marshal(gift.StoredResults{Results: results})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return s.medium.Set(ctx, StorageKey, string(data))
}

func (s *Store) writeError(op string, err error) *apperr.Error {
	if errors.Is(err, ErrQuotaExceeded) {
		return apperr.New(apperr.StorageQuotaExceeded, op, err)
	}
	return apperr.New(apperr.StorageUnavailable, op, err)
}

func sortByTimestamp(results []gift.DiagnosticResult, order Order) {
	sort.SliceStable(results, func(i, j int) bool {
		if order == OrderAsc {
			return results[i].Timestamp.Before(results[j].Timestamp)
		}
		return results[i].Timestamp.After(results[j].Timestamp)
	})
}
