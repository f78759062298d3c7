package exchange

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	converter "go-currency-converter"
	"go-currency-converter/frankfurter"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Service interface for converting between SEK and IDR
type Service interface {
	// Refresh fetches the latest rate. On failure the previous rate is kept.
	Refresh(ctx context.Context) (converter.Quote, error)

	// Rate returns the current quote of IDR against SEK, or the last known one.
	Rate(ctx context.Context) converter.Quote

	Convert(ctx context.Context, amount converter.Amount, from converter.Currency, to converter.Currency) (converter.Exchanged, error)

	// Table converts the fixed SEK amounts of the lookup table.
	Table(ctx context.Context) []Row
}

// Row one line of the lookup table
type Row struct {
	SEK converter.Amount
	IDR converter.Amount
}

// service SEK/IDR exchange
type service struct {
	// provider to look up the latest rate
	provider frankfurter.Service

	// amounts the SEK amounts listed in the lookup table
	amounts []converter.Amount

	// lock guards last
	lock sync.RWMutex

	// last the last known SEK -> IDR quote
	last converter.Quote
}

// NewService constructs a valid Service. Until the first successful Refresh,
// conversions use defaultRate dated now.
func NewService(provider frankfurter.Service, defaultRate converter.Rate, amounts []converter.Amount) Service {
	return &service{
		provider: provider,
		amounts:  amounts,
		last: converter.Quote{
			Base:  converter.SEK,
			Rates: converter.Rates{converter.IDR: defaultRate},
			Date:  time.Now().UTC(),
		},
	}
}

// Refresh fetches the rate from the remote source, bypassing any cache in the
// provider chain that supports it.
func (s *service) Refresh(ctx context.Context) (converter.Quote, error) {
	fetch := s.provider.Latest
	if r, ok := s.provider.(frankfurter.Refresher); ok {
		fetch = r.Refresh
	}

	quote, err := fetch(ctx, converter.SEK, converter.IDR)
	if err != nil {
		return s.lastQuote(), fmt.Errorf("refresh [%v/%v]: %w", converter.SEK, converter.IDR, err)
	}
	if err := s.store(quote); err != nil {
		return s.lastQuote(), fmt.Errorf("refresh [%v/%v]: %w", converter.SEK, converter.IDR, err)
	}
	return quote, nil
}

// Rate reads the current quote through the provider, so a periodically
// refreshed cache below is seen here. When the provider fails the last known
// quote is returned.
func (s *service) Rate(ctx context.Context) converter.Quote {
	quote, err := s.provider.Latest(ctx, converter.SEK, converter.IDR)
	if err != nil || s.store(quote) != nil {
		return s.lastQuote()
	}
	return quote
}

func (s *service) store(quote converter.Quote) error {
	if quote.Rates[converter.IDR] <= 0 {
		return fmt.Errorf("non-positive rate %v", quote.Rates[converter.IDR])
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.last = quote
	return nil
}

func (s *service) lastQuote() converter.Quote {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.last
}

// Convert computes a conversion between SEK and IDR with the last known rate.
// IDR -> SEK uses the inverse of the SEK -> IDR rate.
func (s *service) Convert(ctx context.Context, amount converter.Amount, from converter.Currency, to converter.Currency) (converter.Exchanged, error) {
	if !from.Supported() {
		return converter.Exchanged{}, fmt.Errorf("convert from [%v]: %w", from, ErrUnsupportedCurrency)
	}
	if !to.Supported() {
		return converter.Exchanged{}, fmt.Errorf("convert to [%v]: %w", to, ErrUnsupportedCurrency)
	}

	rate := converter.Rate(1)
	if from != to {
		rate = s.Rate(ctx).Rates[converter.IDR]
		if from == converter.IDR {
			rate = 1 / rate
		}
	}

	return converter.Exchanged{
		Rate:   rate,
		Amount: converter.Amount(float64(rate) * float64(amount)),
	}, nil
}

func (s *service) Table(ctx context.Context) []Row {
	rate := s.Rate(ctx).Rates[converter.IDR]

	rows := make([]Row, 0, len(s.amounts))
	for _, amount := range s.amounts {
		rows = append(rows, Row{
			SEK: amount,
			IDR: converter.Amount(float64(rate) * float64(amount)),
		})
	}
	return rows
}
