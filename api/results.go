package api

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"pdf_studio/pdf"
)

// ResultStore keeps multi-file results in memory so the archive and every
// individual file can be downloaded separately. Entries expire after ttl;
// the oldest are evicted once the stored bytes exceed maxBytes.
type ResultStore struct {
	cache    *ttlcache.Cache[string, *pdf.PackagedResult]
	maxBytes int64
}

// ErrResultTooLarge is returned by Put for a result that alone exceeds the
// store's byte budget.
var ErrResultTooLarge = errors.New("result too large to store")

func NewResultStore(ttl time.Duration, maxBytes int64) *ResultStore {
	opts := []ttlcache.Option[string, *pdf.PackagedResult]{
		ttlcache.WithTTL[string, *pdf.PackagedResult](ttl),
		ttlcache.WithDisableTouchOnHit[string, *pdf.PackagedResult](),
	}
	if maxBytes > 0 {
		opts = append(opts, ttlcache.WithMaxCost[string, *pdf.PackagedResult](uint64(maxBytes), resultCost))
	}
	cache := ttlcache.New(opts...)
	go cache.Start()
	return &ResultStore{cache: cache, maxBytes: maxBytes}
}

func resultCost(item ttlcache.CostItem[string, *pdf.PackagedResult]) uint64 {
	res := item.Value
	if res == nil {
		return 0
	}
	var n int
	for _, out := range res.Outputs {
		n += len(out.Data)
	}
	if res.Archive != nil {
		n += len(res.Archive.Data)
	}
	return uint64(n)
}

// Put stores res and returns its id. Older results may be evicted to make room.
func (s *ResultStore) Put(res *pdf.PackagedResult) (string, error) {
	item := ttlcache.CostItem[string, *pdf.PackagedResult]{Value: res}
	if s.maxBytes > 0 && resultCost(item) > uint64(s.maxBytes) {
		return "", ErrResultTooLarge
	}
	id := uuid.NewString()
	s.cache.Set(id, res, ttlcache.DefaultTTL)
	return id, nil
}

// Get returns the result stored under id unless it has expired or was evicted.
func (s *ResultStore) Get(id string) (*pdf.PackagedResult, bool) {
	item := s.cache.Get(id)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Len reports the number of stored result sets.
func (s *ResultStore) Len() int {
	return s.cache.Len()
}

// Close stops the expiry loop.
func (s *ResultStore) Close() {
	s.cache.Stop()
}
