package exchange

import (
	"context"
	"time"

	"github.com/go-kit/log"
	converter "go-currency-converter"
)

// loggingService decorates an exchange.Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Refresh(ctx context.Context) (quote converter.Quote, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "refresh",
			"rate", quote.Rates[converter.IDR],
			"date", quote.Date.Format(time.RFC3339),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Refresh(ctx)
}

func (s *loggingService) Rate(ctx context.Context) converter.Quote {
	return s.next.Rate(ctx)
}

func (s *loggingService) Convert(ctx context.Context, amount converter.Amount, from converter.Currency, to converter.Currency) (ex converter.Exchanged, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "convert",
			"pair", string(from)+"/"+string(to),
			"entered", Format(amount, from)+" "+string(from),
			"converted", Format(ex.Amount, to)+" "+string(to),
			"rate", ex.Rate,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Convert(ctx, amount, from, to)
}

func (s *loggingService) Table(ctx context.Context) (rows []Row) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "table",
			"rows", len(rows),
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.next.Table(ctx)
}
