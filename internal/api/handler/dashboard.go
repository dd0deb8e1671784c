package handler

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/huongpham911/cloudwin-sub002/internal/aggregate"
	"github.com/huongpham911/cloudwin-sub002/internal/api/response"
	"github.com/huongpham911/cloudwin-sub002/internal/directory"
	"github.com/huongpham911/cloudwin-sub002/internal/model"
)

// DashboardStats summarizes the unified view for the console landing page.
type DashboardStats struct {
	Tenants        int   `json:"tenants"`
	TenantsValid   int   `json:"tenants_valid"`
	Spaces         int   `json:"spaces"`
	Buckets        int   `json:"buckets"`
	TotalSizeBytes int64 `json:"total_size_bytes"`
	TotalObjects   int64 `json:"total_objects"`
	FailedAccounts int   `json:"failed_accounts"`
}

type Dashboard struct {
	dir *directory.Service
	agg *aggregate.Service
}

func NewDashboard(dir *directory.Service, agg *aggregate.Service) *Dashboard {
	return &Dashboard{dir: dir, agg: agg}
}

// Stats runs the space and bucket fan-outs in parallel and reduces them to
// headline counts. Accounts that failed either fan-out count once.
func (h *Dashboard) Stats(w http.ResponseWriter, r *http.Request) {
	var (
		tenants []model.Tenant
		spaces  *aggregate.Result[model.Space]
		buckets *aggregate.Result[model.Bucket]
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		tenants, err = h.dir.ListTenants(ctx)
		return err
	})
	g.Go(func() (err error) {
		spaces, err = h.agg.ListAllSpaces(ctx)
		return err
	})
	g.Go(func() (err error) {
		buckets, err = h.agg.ListAllBuckets(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeServiceError(w, err)
		return
	}

	stats := DashboardStats{
		Tenants: len(tenants),
		Spaces:  len(spaces.Items),
		Buckets: len(buckets.Items),
	}
	for _, t := range tenants {
		if t.IsValid {
			stats.TenantsValid++
		}
	}
	for _, b := range buckets.Items {
		stats.TotalSizeBytes += b.SizeBytes
		stats.TotalObjects += b.ObjectCount
	}

	failed := map[string]bool{}
	for _, f := range spaces.Failures {
		failed[f.TenantID] = true
	}
	for _, f := range buckets.Failures {
		failed[f.TenantID] = true
	}
	stats.FailedAccounts = len(failed)

	response.WriteJSON(w, http.StatusOK, stats)
}
