package handler

import (
	"errors"
	"net/http"

	"github.com/huongpham911/cloudwin-sub002/internal/aggregate"
	"github.com/huongpham911/cloudwin-sub002/internal/api/response"
	"github.com/huongpham911/cloudwin-sub002/internal/directory"
	"github.com/huongpham911/cloudwin-sub002/internal/provider"
)

// writeServiceError maps aggregation and provider errors to HTTP statuses.
// Partial fan-out failures never reach this path: they are part of a 200
// response body.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, aggregate.ErrTenantNotFound),
		errors.Is(err, directory.ErrNotFound):
		response.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, aggregate.ErrTenantCredentialInvalid):
		response.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, aggregate.ErrDirectoryUnavailable):
		response.WriteError(w, http.StatusServiceUnavailable, err.Error())
	default:
		var ce *provider.CallError
		if errors.As(err, &ce) {
			switch ce.Kind {
			case provider.KindTimeout:
				response.WriteError(w, http.StatusGatewayTimeout, err.Error())
			default:
				response.WriteError(w, http.StatusBadGateway, err.Error())
			}
			return
		}
		response.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
