package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/huongpham911/cloudwin-sub002/internal/directory"
	"github.com/huongpham911/cloudwin-sub002/internal/metrics"
	"github.com/huongpham911/cloudwin-sub002/internal/model"
	"github.com/huongpham911/cloudwin-sub002/internal/provider"
)

var (
	// ErrDirectoryUnavailable aborts an aggregation outright: without a
	// tenant snapshot there is no meaningful partial result.
	ErrDirectoryUnavailable = errors.New("credential directory unavailable")

	// ErrTenantNotFound is returned by single-tenant operations when the
	// tenant id is absent from the directory.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantCredentialInvalid is returned by single-tenant operations
	// when the tenant exists but its credential is flagged invalid.
	ErrTenantCredentialInvalid = errors.New("tenant credential invalid")
)

// Directory supplies the tenant snapshot for one aggregation run.
type Directory interface {
	ListTenants(ctx context.Context) ([]model.Tenant, error)
	GetByID(ctx context.Context, id string) (*model.Tenant, error)
}

// Engine drives fan-out reads across all valid tenants and credential
// resolution for single-tenant operations.
type Engine struct {
	dir         Directory
	logger      zerolog.Logger
	concurrency int
	callTimeout time.Duration
}

func NewEngine(dir Directory, logger zerolog.Logger, concurrency int, callTimeout time.Duration) *Engine {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Engine{
		dir:         dir,
		logger:      logger.With().Str("component", "aggregator").Logger(),
		concurrency: concurrency,
		callTimeout: callTimeout,
	}
}

// CallContext derives the per-tenant call context with the engine's timeout.
func (e *Engine) CallContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.callTimeout)
}

// ResolveTenant looks up one tenant for a targeted operation. Unlike the
// fan-out path, a missing or invalid tenant is a reportable error here:
// there are no other tenants to fall back to.
func (e *Engine) ResolveTenant(ctx context.Context, id string) (*model.Tenant, error) {
	tenant, err := e.dir.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, id)
		}
		return nil, fmt.Errorf("%w: %s", ErrDirectoryUnavailable, err)
	}
	if !tenant.IsValid {
		return nil, fmt.Errorf("%w: %s", ErrTenantCredentialInvalid, id)
	}
	return tenant, nil
}

// FanOut runs call once per valid tenant, concurrently but bounded, and
// merges the enriched results. Output order is keyed by the directory
// snapshot order, never by completion order: each tenant's results land in a
// tenant-indexed slot and are flattened after all calls finish. Individual
// tenant failures go into the failure manifest and never abort the run.
func FanOut[T ownable[T]](ctx context.Context, e *Engine, op string, call func(ctx context.Context, tenant model.Tenant) ([]T, error)) (*Result[T], error) {
	snapshot, err := e.dir.ListTenants(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryUnavailable, err)
	}

	var valid []model.Tenant
	for _, t := range snapshot {
		if t.IsValid {
			valid = append(valid, t)
		} else {
			metrics.CountFanoutTenant("skipped")
		}
	}

	slots := make([][]T, len(valid))
	failures := make([]*PartialFailure, len(valid))

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	for i, tenant := range valid {
		i, tenant := i, tenant
		g.Go(func() error {
			callCtx, cancel := e.CallContext(ctx)
			defer cancel()

			start := time.Now()
			items, err := call(callCtx, tenant)
			duration := time.Since(start)

			if err != nil {
				kind := provider.KindOf(err)
				failures[i] = &PartialFailure{
					TenantID:   tenant.ID,
					TenantName: tenant.Name,
					Kind:       kind,
					Message:    err.Error(),
				}
				metrics.ObserveProviderCall(op, "error", duration)
				metrics.CountFanoutTenant("failed")
				e.logger.Warn().
					Str("operation", op).
					Str("tenant_id", tenant.ID).
					Str("kind", string(kind)).
					Err(err).
					Msg("tenant call failed")
				return nil
			}

			slots[i] = Enrich(tenant, items)
			metrics.ObserveProviderCall(op, "ok", duration)
			metrics.CountFanoutTenant("ok")
			return nil
		})
	}

	g.Wait()

	result := &Result[T]{
		Items:     []T{},
		Failures:  []PartialFailure{},
		Attempted: make([]string, len(valid)),
	}
	for i, tenant := range valid {
		result.Attempted[i] = tenant.ID
		result.Items = append(result.Items, slots[i]...)
		if failures[i] != nil {
			result.Failures = append(result.Failures, *failures[i])
		}
	}

	e.logger.Debug().
		Str("operation", op).
		Int("tenants", len(valid)).
		Int("items", len(result.Items)).
		Int("failures", len(result.Failures)).
		Msg("fan-out complete")

	return result, nil
}
