package handler

import (
	"net/http"

	"github.com/huongpham911/cloudwin-sub002/internal/aggregate"
	"github.com/huongpham911/cloudwin-sub002/internal/api/response"
)

// Space serves the unified cross-account view of spaces.
type Space struct {
	agg *aggregate.Service
}

func NewSpace(agg *aggregate.Service) *Space {
	return &Space{agg: agg}
}

// ListAll fans out across every valid tenant account and returns the merged
// space list plus the failure manifest. Partial failures are part of a
// successful response: the UI renders "N of M accounts succeeded" from the
// attempted and failure counts.
func (h *Space) ListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.agg.ListAllSpaces(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, result)
}
