package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huongpham911/cloudwin-sub002/internal/aggregate"
	"github.com/huongpham911/cloudwin-sub002/internal/api/request"
	"github.com/huongpham911/cloudwin-sub002/internal/api/response"
	"github.com/huongpham911/cloudwin-sub002/internal/model"
)

// Bucket serves the unified bucket view and per-tenant bucket operations.
type Bucket struct {
	agg *aggregate.Service
}

func NewBucket(agg *aggregate.Service) *Bucket {
	return &Bucket{agg: agg}
}

// ListAll fans out across every valid tenant account and returns the merged
// bucket list plus the failure manifest.
func (h *Bucket) ListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.agg.ListAllBuckets(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, result)
}

// Create makes a bucket on one tenant's account.
func (h *Bucket) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateBucket
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	bucket, err := h.agg.CreateBucketForTenant(r.Context(), tenantID,
		model.BucketSpec{Name: req.Name, Region: req.Region})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, bucket)
}

// Delete removes a bucket from one tenant's account.
func (h *Bucket) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	bucket, err := request.RequireID(chi.URLParam(r, "bucket"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.agg.DeleteBucketForTenant(r.Context(), tenantID, bucket); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
