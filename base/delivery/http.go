package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/auction"
	"github.com/platz/goapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = statusForError(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

// statusForError overrides the caller-provided status for error classes the
// handlers should not have to map one by one. Connectivity failures are 503 so
// clients can tell "try again" from "you are wrong".
func statusForError(err error, status int) int {
	var dup *domain.DuplicateSaleError
	switch {
	case errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &dup) || errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case domain.IsConnectivityError(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrNotOwner) || errors.Is(err, domain.ErrSelfBid) || errors.Is(err, domain.ErrSelfTrade):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrBadParamInput) ||
		errors.Is(err, domain.ErrInvalidAddress) ||
		errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrBidNotActive) ||
		errors.Is(err, domain.ErrOwnerUnresolved) ||
		errors.Is(err, auction.ErrBidTooLow) ||
		errors.Is(err, auction.ErrNoListing) ||
		errors.Is(err, auction.ErrNoBid):
		return http.StatusBadRequest
	}
	return status
}
