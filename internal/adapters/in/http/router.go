package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RequestObserver records the outcome of served requests.
type RequestObserver interface {
	ObserveRequest(method string, route string, code int, elapsed time.Duration)
	Handler() http.Handler
}

// RouterConfig holds the optional collaborators of the router.
type RouterConfig struct {
	AllowedOrigins []string
	Contract       *openapi3.T
	Metrics        RequestObserver
}

// NewRouter builds the echo instance serving the order API, health, metrics and
// API documentation endpoints.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = newHTTPErrorHandler(server.logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(server.logger))
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		}))
	}
	if cfg.Metrics != nil {
		e.Use(observeRequests(cfg.Metrics))
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	}

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})

	if cfg.Contract != nil {
		contractJSON, err := cfg.Contract.MarshalJSON()
		if err != nil {
			return nil, err
		}
		e.GET("/api/openapi.json", func(ctx echo.Context) error {
			return ctx.JSONBlob(http.StatusOK, contractJSON)
		})
		e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/api/openapi.json")))
	}

	api := e.Group("/api")
	api.POST("/orders", server.CreateOrder)
	api.GET("/orders", server.ListOrders)
	api.GET("/orders/active", server.ListActiveOrders)
	api.GET("/orders/:id", server.GetOrder)
	api.PUT("/orders/:id", server.UpdateOrder)
	api.DELETE("/orders/:id", server.CancelOrder)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(ctx.Request().Context(), level, "HTTP request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}

// observeRequests reports every request by its route template so that order ids
// do not multiply the label values.
func observeRequests(observer RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			observer.ObserveRequest(ctx.Request().Method, route, ctx.Response().Status, time.Since(start))
			return nil
		}
	}
}

