package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/huongpham911/cloudwin-sub002/internal/aggregate"
	"github.com/huongpham911/cloudwin-sub002/internal/api/request"
	"github.com/huongpham911/cloudwin-sub002/internal/api/response"
	"github.com/huongpham911/cloudwin-sub002/internal/directory"
	"github.com/huongpham911/cloudwin-sub002/internal/model"
	"github.com/huongpham911/cloudwin-sub002/internal/platform"
	"github.com/huongpham911/cloudwin-sub002/internal/provider"
)

// Tenant manages the credential directory: registering provider accounts,
// rotating their tokens, and verifying credentials.
type Tenant struct {
	dir *directory.Service
	agg *aggregate.Service
}

func NewTenant(dir *directory.Service, agg *aggregate.Service) *Tenant {
	return &Tenant{dir: dir, agg: agg}
}

func (h *Tenant) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r, "created_at")

	tenants, hasMore, err := h.dir.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var nextCursor string
	if hasMore && len(tenants) > 0 {
		nextCursor = tenants[len(tenants)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, tenants, nextCursor, hasMore)
}

func (h *Tenant) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTenant
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ID == "" {
		req.ID = platform.NewID()
	}

	now := time.Now()
	tenant := &model.Tenant{
		ID:        req.ID,
		Name:      req.Name,
		Token:     req.Token,
		AccessKey: req.AccessKey,
		SecretKey: req.SecretKey,
		IsValid:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.dir.Create(r.Context(), tenant); err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, tenant)
}

func (h *Tenant) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.dir.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, tenant)
}

func (h *Tenant) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateTenant
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.dir.Update(r.Context(), id, req.Name, req.Token, req.AccessKey, req.SecretKey); err != nil {
		writeServiceError(w, err)
		return
	}
	if req.IsValid != nil {
		if err := h.dir.SetValidity(r.Context(), id, *req.IsValid); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	tenant, err := h.dir.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, tenant)
}

func (h *Tenant) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.dir.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Verify checks the tenant's token against the provider and updates the
// validity flag. An unauthorized response marks the credential invalid
// rather than failing the request; transport failures leave the flag alone.
func (h *Tenant) Verify(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.dir.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	account, err := h.agg.VerifyTenant(r.Context(), *tenant)
	if err != nil {
		var ce *provider.CallError
		if errors.As(err, &ce) && ce.Kind == provider.KindUnauthorized {
			if err := h.dir.SetValidity(r.Context(), id, false); err != nil {
				writeServiceError(w, err)
				return
			}
			response.WriteJSON(w, http.StatusOK, map[string]any{"is_valid": false})
			return
		}
		writeServiceError(w, err)
		return
	}

	if err := h.dir.SetValidity(r.Context(), id, true); err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"is_valid": true, "account": account})
}
