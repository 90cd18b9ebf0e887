// Package pending stores the per-session pending-amount cell: the amount a
// customer still owes for a reservation between booking and payment. Cells
// live in Redis under a TTL so they disappear with the session; nothing
// here is durable and callers must tolerate a missing cell.
package pending

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/car-rental-reservation/internal/booking"
)

// Store keeps pending cells keyed by customer ID. When rdb is nil the
// store degrades to an in-process map, which keeps a single-node booking
// flow working while Redis is down. The map entries honor the same TTL.
type Store struct {
	rdb *redis.Client
	ttl time.Duration

	mu  sync.Mutex
	mem map[uint64]memCell
}

type memCell struct {
	cell      booking.PendingCell
	expiresAt time.Time
}

// New returns a Store. rdb may be nil.
func New(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{rdb: rdb, ttl: ttl, mem: make(map[uint64]memCell)}
}

func key(customerID uint64) string {
	return fmt.Sprintf("pending:%d", customerID)
}

// Set writes the customer's cell, replacing any prior cell and delta.
func (s *Store) Set(ctx context.Context, customerID uint64, cell booking.PendingCell) error {
	if s.rdb == nil {
		s.mu.Lock()
		s.mem[customerID] = memCell{cell: cell, expiresAt: time.Now().Add(s.ttl)}
		s.mu.Unlock()
		return nil
	}
	payload, err := json.Marshal(cell)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(customerID), payload, s.ttl).Err()
}

// Get returns the customer's cell. The second return value reports
// whether a cell exists; an expired or never-set cell is simply absent.
func (s *Store) Get(ctx context.Context, customerID uint64) (booking.PendingCell, bool, error) {
	if s.rdb == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		mc, ok := s.mem[customerID]
		if !ok || time.Now().After(mc.expiresAt) {
			delete(s.mem, customerID)
			return booking.PendingCell{}, false, nil
		}
		return mc.cell, true, nil
	}
	payload, err := s.rdb.Get(ctx, key(customerID)).Bytes()
	if err == redis.Nil {
		return booking.PendingCell{}, false, nil
	}
	if err != nil {
		return booking.PendingCell{}, false, err
	}
	var cell booking.PendingCell
	if err := json.Unmarshal(payload, &cell); err != nil {
		return booking.PendingCell{}, false, err
	}
	return cell, true, nil
}

// Clear removes the customer's cell. Clearing an absent cell is a no-op.
func (s *Store) Clear(ctx context.Context, customerID uint64) error {
	if s.rdb == nil {
		s.mu.Lock()
		delete(s.mem, customerID)
		s.mu.Unlock()
		return nil
	}
	return s.rdb.Del(ctx, key(customerID)).Err()
}
