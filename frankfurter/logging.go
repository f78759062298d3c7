package frankfurter

import (
	"context"
	"time"

	"github.com/go-kit/log"
	converter "go-currency-converter"
)

// loggingService decorates a frankfurter.Service with logging
type loggingService struct {
	next   Service
	logger log.Logger
}

// NewLoggingService return a new logging service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Latest(ctx context.Context, base converter.Currency, symbol converter.Currency) (quote converter.Quote, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "latest",
			"base", base,
			"symbol", symbol,
			"rate", quote.Rates[symbol],
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Latest(ctx, base, symbol)
}
