package http

import (
	"errors"
	"net/http"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/generated/servers"
	"hubflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error kinds reported next to the status code.
const (
	kindInvalidRequest     = "invalid_request"
	kindUnauthenticated    = "unauthenticated"
	kindForbidden          = "forbidden"
	kindNotFound           = "not_found"
	kindInvalidTransition  = "invalid_transition"
	kindNoActiveHub        = "no_active_hub"
	kindDistrictServed     = "district_already_served"
	kindConcurrentModified = "concurrent_modification"
	kindInternal           = "internal"
)

// errorResponse maps an application error to its HTTP status and body.
// Domain rejections keep their own message; anything unrecognised is a 500
// whose cause is logged, not returned.
func errorResponse(err error) (int, servers.Error) {
	var (
		stateErr *order.StateError
		otpErr   *order.OtpError
		resErr   *hub.ResolutionError
		httpErr  *echo.HTTPError
	)

	switch {
	case errors.As(err, &otpErr):
		status := http.StatusBadRequest
		if !otpErr.Retryable() {
			status = http.StatusConflict
		}
		retryable := otpErr.Retryable()
		return status, newError(status, err.Error(), string(otpErr.Kind), &retryable)
	case errors.As(err, &stateErr):
		return http.StatusConflict, newError(http.StatusConflict, err.Error(), kindInvalidTransition, nil)
	case errors.As(err, &resErr):
		return http.StatusBadRequest, newError(http.StatusBadRequest, err.Error(), kindNoActiveHub, nil)
	case errors.Is(err, hub.ErrNotHubManager), errors.Is(err, order.ErrNotOrderBuyer):
		return http.StatusForbidden, newError(http.StatusForbidden, err.Error(), kindForbidden, nil)
	case errors.Is(err, hub.ErrDistrictAlreadyServed):
		return http.StatusConflict, newError(http.StatusConflict, err.Error(), kindDistrictServed, nil)
	case errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict, newError(http.StatusConflict, err.Error(), kindConcurrentModified, nil)
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, newError(http.StatusNotFound, err.Error(), kindNotFound, nil)
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			msg = s
		}
		return httpErr.Code, newError(httpErr.Code, msg, kindForStatus(httpErr.Code), nil)
	case isValidation(err):
		return http.StatusBadRequest, newError(http.StatusBadRequest, err.Error(), kindInvalidRequest, nil)
	default:
		return http.StatusInternalServerError,
			newError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), kindInternal, nil)
	}
}

func isValidation(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return kindInvalidRequest
	case http.StatusUnauthorized:
		return kindUnauthenticated
	case http.StatusForbidden:
		return kindForbidden
	case http.StatusNotFound:
		return kindNotFound
	default:
		if status >= http.StatusInternalServerError {
			return kindInternal
		}
		return kindInvalidRequest
	}
}

func newError(code int, message, kind string, retryable *bool) servers.Error {
	return servers.Error{Code: code, Message: message, Kind: &kind, Retryable: retryable}
}

// badRequest wraps a request that could not be turned into a command or query.
func badRequest(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
}

// forbidden rejects a caller whose role may not perform the operation.
func forbidden(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusForbidden, msg)
}
