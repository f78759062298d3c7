package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	converter "go-currency-converter"
	"go-currency-converter/calc"
	"go-currency-converter/exchange"
)

const GracefulShutdownTimeout = 10 * time.Second

// Server dependencies for HTTP Server functions
type Server struct {
	Service exchange.Service
	Logger  log.Logger

	echo     *echo.Echo
	sessions *sessionStore
}

func NewServer(s exchange.Service, logger log.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	server := &Server{
		Service:  s,
		Logger:   logger,
		echo:     e,
		sessions: newSessionStore(),
	}
	server.middlewares()
	server.routes()
	return server
}

func (s *Server) middlewares() {
	s.echo.Use(requestLogger(s.Logger))
	s.echo.Use(middleware.Recover())
}

func (s *Server) routes() {
	api := s.echo.Group("/api")
	api.POST("/evaluate", s.evaluate())
	api.POST("/convert", s.convert())
	api.GET("/table", s.table())
	api.GET("/rate", s.rate())
	api.POST("/rate/refresh", s.refresh())

	api.POST("/sessions", s.createSession())
	api.GET("/sessions/:id", s.getSession())
	api.DELETE("/sessions/:id", s.deleteSession())
	api.POST("/sessions/:id/keys", s.pressKey())
	api.POST("/sessions/:id/swap", s.swapBase())
	api.POST("/sessions/:id/calculator", s.toggleCalculator())
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(rw, r)
}

// Start serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errs := make(chan error, 1)
	go func() {
		errs <- s.echo.Start(addr)
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

type errorResponse struct {
	Error string `json:"error"`
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{Error: msg})
}

// decode reads a JSON body regardless of the request content type.
func decode(c echo.Context, v interface{}) error {
	return json.NewDecoder(c.Request().Body).Decode(v)
}

// evaluate produces a handler evaluating a keypad expression
func (s *Server) evaluate() echo.HandlerFunc {
	type request struct {
		Expression string `json:"expression"`
	}

	type response struct {
		Result string `json:"result"`
	}

	return func(c echo.Context) error {
		var req request
		if err := decode(c, &req); err != nil {
			return fail(c, http.StatusBadRequest, "invalid json")
		}
		return c.JSON(http.StatusOK, response{Result: calc.Evaluate(req.Expression)})
	}
}

// convert produces a handler for currency conversions
func (s *Server) convert() echo.HandlerFunc {

	// request for unmarshalling JSON requests posted by clients
	type request struct {
		FromCurrency converter.Currency
		ToCurrency   converter.Currency
		Amount       converter.Amount
	}

	// response for marshalling JSON responses to return to clients
	type response struct {
		Exchange converter.Rate   `json:"exchange"`
		Amount   converter.Amount `json:"amount"`
		Original converter.Amount `json:"original"`
	}

	return func(c echo.Context) error {
		var req request
		if err := decode(c, &req); err != nil {
			return fail(c, http.StatusBadRequest, "invalid json")
		}

		result, err := s.Service.Convert(c.Request().Context(), req.Amount, req.FromCurrency, req.ToCurrency)
		if err != nil {
			return fail(c, http.StatusBadRequest, "failed conversion")
		}

		return c.JSON(http.StatusOK, response{
			Exchange: result.Rate,
			Amount:   result.Amount,
			Original: req.Amount,
		})
	}
}

// table produces a handler listing the fixed SEK amounts in IDR
func (s *Server) table() echo.HandlerFunc {
	type row struct {
		SEK          converter.Amount `json:"sek"`
		IDR          converter.Amount `json:"idr"`
		FormattedSEK string           `json:"formattedSek"`
		FormattedIDR string           `json:"formattedIdr"`
	}

	return func(c echo.Context) error {
		rows := s.Service.Table(c.Request().Context())

		res := make([]row, 0, len(rows))
		for _, r := range rows {
			res = append(res, row{
				SEK:          r.SEK,
				IDR:          r.IDR,
				FormattedSEK: fmt.Sprintf("%v", float64(r.SEK)),
				FormattedIDR: exchange.FormatIDR(r.IDR),
			})
		}
		return c.JSON(http.StatusOK, res)
	}
}

type rateResponse struct {
	Base             converter.Currency `json:"base"`
	Quote            converter.Currency `json:"quote"`
	Rate             converter.Rate     `json:"rate"`
	Inverse          converter.Rate     `json:"inverse"`
	FormattedRate    string             `json:"formattedRate"`
	FormattedInverse string             `json:"formattedInverse"`
	Date             time.Time          `json:"date"`
}

func newRateResponse(q converter.Quote) rateResponse {
	rate := q.Rates[converter.IDR]
	return rateResponse{
		Base:             converter.SEK,
		Quote:            converter.IDR,
		Rate:             rate,
		Inverse:          1 / rate,
		FormattedRate:    exchange.FormatIDR(converter.Amount(rate)),
		FormattedInverse: exchange.FormatInverse(1 / rate),
		Date:             q.Date,
	}
}

// rate produces a handler reporting the last known rate
func (s *Server) rate() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, newRateResponse(s.Service.Rate(c.Request().Context())))
	}
}

// refresh produces a handler fetching the latest rate
func (s *Server) refresh() echo.HandlerFunc {
	return func(c echo.Context) error {
		q, err := s.Service.Refresh(c.Request().Context())
		if err != nil {
			return fail(c, http.StatusBadGateway, "failed to update exchange rates")
		}
		return c.JSON(http.StatusOK, newRateResponse(q))
	}
}
