package frankfurter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"
	converter "go-currency-converter"
)

// pair a base currency and the symbol quoted against it
type pair struct {
	base   converter.Currency
	symbol converter.Currency
}

// Refresher a Service able to bypass its cache. The fetched quote replaces the cached one.
type Refresher interface {
	Service
	Refresh(ctx context.Context, base converter.Currency, symbol converter.Currency) (converter.Quote, error)
}

// cachingService decorates a frankfurter.Service with a cache of quotes.
// The cachingService is concurrency safe and will periodically refresh cached values.
type cachingService struct {
	// lifetime bounds the periodic refreshes, independent of the callers' contexts
	lifetime context.Context

	// next the service being decorated with a cache
	next Service

	// cache the cache of quotes
	cache map[pair]converter.Quote

	// updateFrequency how often to refresh cached values
	updateFrequency time.Duration

	// lock synchronizes access to cache to make it concurrency safe
	lock sync.RWMutex

	logger log.Logger
}

// NewCachingService returns a new caching Service. Cached pairs are refreshed
// every updateFrequency until lifetime is done, then dropped.
func NewCachingService(lifetime context.Context, updateFrequency time.Duration, logger log.Logger, s Service) Refresher {
	return &cachingService{
		lifetime:        lifetime,
		next:            s,
		cache:           map[pair]converter.Quote{},
		updateFrequency: updateFrequency,
		logger:          logger,
	}
}

// Latest looks up the quote for a pair and caches the result
func (s *cachingService) Latest(ctx context.Context, base converter.Currency, symbol converter.Currency) (converter.Quote, error) {
	p := pair{base: base, symbol: symbol}

	s.lock.RLock()
	quote, ok := s.cache[p]
	s.lock.RUnlock()

	if ok {
		return quote, nil
	}

	// Concurrent misses for the same pair may each call the API once; only the
	// first to store a quote starts the refresh goroutine.
	return s.Refresh(ctx, base, symbol)
}

// Refresh fetches the quote for a pair now and caches it
func (s *cachingService) Refresh(ctx context.Context, base converter.Currency, symbol converter.Currency) (converter.Quote, error) {
	p := pair{base: base, symbol: symbol}

	quote, firstTime, err := s.refreshNow(ctx, p)
	if err != nil {
		return converter.Quote{}, fmt.Errorf("refreshing cache [%v/%v]: %w", base, symbol, err)
	}
	if firstTime {
		s.logger.Log("msg", "scheduling periodic refresh", "base", base, "symbol", symbol, "every", s.updateFrequency)
		go s.refreshPeriodically(p)
	}
	return quote, nil
}

// refreshNow refreshes a cached entry immediately
func (s *cachingService) refreshNow(ctx context.Context, p pair) (converter.Quote, bool, error) {
	quote, err := s.next.Latest(ctx, p.base, p.symbol)
	if err != nil {
		return converter.Quote{}, false, fmt.Errorf("refresh [%v/%v]: %w", p.base, p.symbol, err)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	_, ok := s.cache[p]
	s.cache[p] = quote
	return quote, !ok, nil
}

// refreshPeriodically refreshes a cached entry on a given schedule until the lifetime is done.
// This is expected to be called from a go-routine for each pair.
func (s *cachingService) refreshPeriodically(p pair) {
	ticker := time.NewTicker(s.updateFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _, err := s.refreshNow(s.lifetime, p)
			if err != nil {
				// keep the previous quote, the error may be transient
				s.logger.Log("msg", "periodic refresh failed", "base", p.base, "symbol", p.symbol, "error", err)
			}
		case <-s.lifetime.Done():
			s.uncache(p)
			return
		}
	}
}

// uncache safely removes a pair from the cache
func (s *cachingService) uncache(p pair) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.cache, p)
}
