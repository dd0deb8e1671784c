package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huongpham911/cloudwin-sub002/internal/aggregate"
	"github.com/huongpham911/cloudwin-sub002/internal/api/request"
	"github.com/huongpham911/cloudwin-sub002/internal/api/response"
)

// File serves object operations inside one tenant's bucket.
type File struct {
	agg *aggregate.Service
}

func NewFile(agg *aggregate.Service) *File {
	return &File{agg: agg}
}

// params common to all file routes. The object key comes from the wildcard
// path segment so keys containing slashes survive routing.
func fileParams(r *http.Request) (tenantID, region, bucket string, err error) {
	tenantID, err = request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		return "", "", "", err
	}
	bucket, err = request.RequireID(chi.URLParam(r, "bucket"))
	if err != nil {
		return "", "", "", err
	}
	region = r.URL.Query().Get("region")
	return tenantID, region, bucket, nil
}

// List returns the objects in one tenant's bucket, optionally under a
// key prefix.
func (h *File) List(w http.ResponseWriter, r *http.Request) {
	tenantID, region, bucket, err := fileParams(r)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if region == "" {
		response.WriteError(w, http.StatusBadRequest, "missing required region")
		return
	}

	files, err := h.agg.ListFilesForTenantBucket(r.Context(), tenantID, region, bucket,
		r.URL.Query().Get("prefix"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"files": files})
}

// Upload streams the request body into one object.
func (h *File) Upload(w http.ResponseWriter, r *http.Request) {
	tenantID, region, bucket, err := fileParams(r)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	key := chi.URLParam(r, "*")
	if region == "" || key == "" {
		response.WriteError(w, http.StatusBadRequest, "missing required region or key")
		return
	}

	file, err := h.agg.UploadFileForTenant(r.Context(), tenantID, region, bucket, key,
		r.Body, r.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, file)
}

// Delete removes one object.
func (h *File) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, region, bucket, err := fileParams(r)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	key := chi.URLParam(r, "*")
	if region == "" || key == "" {
		response.WriteError(w, http.StatusBadRequest, "missing required region or key")
		return
	}

	if err := h.agg.DeleteFileForTenant(r.Context(), tenantID, region, bucket, key); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
