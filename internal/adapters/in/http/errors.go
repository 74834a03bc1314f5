package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"oms/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	messageValidationFailed = "Validation failed"
	messageInternalError    = "Internal server error"
)

// statusOf maps an application error to the HTTP status reported to the client.
func statusOf(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as a failure envelope. Unexpected errors are logged and
// reported with a generic message.
func writeError(ctx echo.Context, logger *slog.Logger, err error) error {
	status := statusOf(err)
	switch status {
	case http.StatusBadRequest:
		return ctx.JSON(status, failure(messageValidationFailed, flatten(err)...))
	case http.StatusConflict:
		var illegal *errs.IllegalStateError
		if errors.As(err, &illegal) {
			return ctx.JSON(status, failure(illegal.Reason))
		}
		return ctx.JSON(status, failure(err.Error()))
	case http.StatusNotFound:
		return ctx.JSON(status, failure(err.Error()))
	default:
		logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
		return ctx.JSON(status, failure(messageInternalError))
	}
}

// flatten lists the messages of joined errors one per entry.
func flatten(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var messages []string
		for _, e := range joined.Unwrap() {
			messages = append(messages, flatten(e)...)
		}
		return messages
	}
	return []string{validationMessage(err)}
}

// validationMessage renders a validation error for the client. A cause that already
// names the parameter is shown as is; otherwise it is prefixed with the parameter.
func validationMessage(err error) string {
	var (
		required   *errs.ValueIsRequiredError
		invalid    *errs.ValueIsInvalidError
		outOfRange *errs.ValueIsOutOfRangeError
	)
	switch {
	case errors.As(err, &required):
		return describe(required.ParamName, required.Cause, "is required")
	case errors.As(err, &invalid):
		return describe(invalid.ParamName, invalid.Cause, "is invalid")
	case errors.As(err, &outOfRange):
		return fmt.Sprintf("%s must be between %v and %v, got %v",
			outOfRange.ParamName, outOfRange.Min, outOfRange.Max, outOfRange.Value)
	default:
		return err.Error()
	}
}

func describe(param string, cause error, fallback string) string {
	if cause == nil {
		return param + " " + fallback
	}

	reason := cause.Error()
	var he *echo.HTTPError
	if errors.As(cause, &he) {
		reason = fmt.Sprint(he.Message)
	}

	if strings.Contains(strings.ToLower(reason), strings.ToLower(param)) {
		return reason
	}
	return param + ": " + reason
}

// newHTTPErrorHandler renders errors raised by echo itself, such as unknown routes
// or malformed bodies, in the failure envelope.
func newHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			_ = writeError(ctx, logger, err)
			return
		}

		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		if he.Code >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "Request failed", "error", err)
			message = messageInternalError
		}

		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(he.Code)
			return
		}
		_ = ctx.JSON(he.Code, failure(message))
	}
}
