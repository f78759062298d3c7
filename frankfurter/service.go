package frankfurter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	converter "go-currency-converter"
)

const ApiUrlBase = "https://api.frankfurter.dev/v1"

// dateLayout the layout of the "date" field in Frankfurter responses
const dateLayout = "2006-01-02"

var ErrMissingRate = errors.New("rate missing from response")

// Service wraps the Frankfurter REST API
type Service interface {
	Latest(ctx context.Context, base converter.Currency, symbol converter.Currency) (converter.Quote, error)
}

// service Frankfurter API
type service struct {
	// url base API url
	url string

	// client for HTTP requests
	client http.Client
}

// NewService constructs a valid Frankfurter Service.
func NewService(url string, timeout time.Duration) Service {
	return &service{
		url: url,
		client: http.Client{
			Timeout: timeout,
		},
	}
}

// Latest loads the most recent published rate of symbol against base.
// Frankfurter publishes new rates once per working day.
func (s *service) Latest(ctx context.Context, base converter.Currency, symbol converter.Currency) (converter.Quote, error) {
	type Response struct {
		Amount float64
		Base   string
		Date   string
		Rates  map[string]float64 // maps currency codes to rates
	}

	url := fmt.Sprintf("%v/latest?base=%v&symbols=%v", s.url, base, symbol)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return converter.Quote{}, fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return converter.Quote{}, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return converter.Quote{}, fmt.Errorf("http get: unexpected status %d", httpResponse.StatusCode)
	}

	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return converter.Quote{}, fmt.Errorf("reading json: %w", err)
	}

	var response Response
	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return converter.Quote{}, fmt.Errorf("decoding json: %w", err)
	}

	rate, ok := response.Rates[string(symbol)]
	if !ok {
		return converter.Quote{}, fmt.Errorf("%v -> %v: %w", base, symbol, ErrMissingRate)
	}

	date, err := time.Parse(dateLayout, response.Date)
	if err != nil {
		return converter.Quote{}, fmt.Errorf("bad date value: %w", err)
	}

	return converter.Quote{
		Base:  base,
		Rates: converter.Rates{symbol: converter.Rate(rate)},
		Date:  date,
	}, nil
}
