package http

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// requestLogger logs one line per request to logger
func requestLogger(logger log.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogURI:      true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				return level.Info(logger).Log(
					"msg", "request",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"took", v.Latency,
				)
			}
			return level.Error(logger).Log(
				"msg", "request failed",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"took", v.Latency,
				"err", v.Error,
			)
		},
	})
}
