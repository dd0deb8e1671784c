package aggregate

import (
	"context"
	"io"

	"github.com/huongpham911/cloudwin-sub002/internal/model"
)

// ControlPlane is the provider's REST API, scoped per call to one tenant's
// token.
type ControlPlane interface {
	GetAccount(ctx context.Context, token string) (*model.Account, error)
	ListSpaces(ctx context.Context, token string) ([]model.Space, error)
	ListBuckets(ctx context.Context, token string) ([]model.Bucket, error)
	CreateBucket(ctx context.Context, token string, spec model.BucketSpec) (*model.Bucket, error)
	DeleteBucket(ctx context.Context, token, name string) error
}

// DataPlane is the provider's S3-compatible object API, scoped per call to
// one tenant's access key pair.
type DataPlane interface {
	ListObjects(ctx context.Context, t model.Tenant, region, bucket, prefix string) ([]model.ObjectFile, error)
	DeleteObject(ctx context.Context, t model.Tenant, region, bucket, key string) error
	PutObject(ctx context.Context, t model.Tenant, region, bucket, key string, body io.Reader, contentType string) (*model.ObjectFile, error)
}

// Service exposes the unified multi-account view: fan-out reads across every
// valid tenant, and targeted operations against one tenant's account.
type Service struct {
	engine *Engine
	cp     ControlPlane
	dp     DataPlane
}

func NewService(engine *Engine, cp ControlPlane, dp DataPlane) *Service {
	return &Service{engine: engine, cp: cp, dp: dp}
}

// ListAllSpaces merges the spaces of every valid tenant account.
func (s *Service) ListAllSpaces(ctx context.Context) (*Result[model.Space], error) {
	return FanOut(ctx, s.engine, "list spaces", func(ctx context.Context, t model.Tenant) ([]model.Space, error) {
		return s.cp.ListSpaces(ctx, t.Token)
	})
}

// ListAllBuckets merges the buckets of every valid tenant account.
func (s *Service) ListAllBuckets(ctx context.Context) (*Result[model.Bucket], error) {
	return FanOut(ctx, s.engine, "list buckets", func(ctx context.Context, t model.Tenant) ([]model.Bucket, error) {
		return s.cp.ListBuckets(ctx, t.Token)
	})
}

// ListFilesForTenantBucket lists the objects in one tenant's bucket.
func (s *Service) ListFilesForTenantBucket(ctx context.Context, tenantID, region, bucket, prefix string) ([]model.ObjectFile, error) {
	tenant, err := s.engine.ResolveTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	callCtx, cancel := s.engine.CallContext(ctx)
	defer cancel()

	files, err := s.dp.ListObjects(callCtx, *tenant, region, bucket, prefix)
	if err != nil {
		return nil, err
	}
	return Enrich(*tenant, files), nil
}

// CreateBucketForTenant creates a bucket on one tenant's account.
func (s *Service) CreateBucketForTenant(ctx context.Context, tenantID string, spec model.BucketSpec) (*model.Bucket, error) {
	tenant, err := s.engine.ResolveTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	callCtx, cancel := s.engine.CallContext(ctx)
	defer cancel()

	bucket, err := s.cp.CreateBucket(callCtx, tenant.Token, spec)
	if err != nil {
		return nil, err
	}
	enriched := bucket.WithOwner(tenant.ID, tenant.Name)
	return &enriched, nil
}

// DeleteBucketForTenant deletes a bucket from one tenant's account.
func (s *Service) DeleteBucketForTenant(ctx context.Context, tenantID, name string) error {
	tenant, err := s.engine.ResolveTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	callCtx, cancel := s.engine.CallContext(ctx)
	defer cancel()

	return s.cp.DeleteBucket(callCtx, tenant.Token, name)
}

// DeleteFileForTenant removes one object from one tenant's bucket.
func (s *Service) DeleteFileForTenant(ctx context.Context, tenantID, region, bucket, key string) error {
	tenant, err := s.engine.ResolveTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	callCtx, cancel := s.engine.CallContext(ctx)
	defer cancel()

	return s.dp.DeleteObject(callCtx, *tenant, region, bucket, key)
}

// UploadFileForTenant uploads one object into one tenant's bucket.
func (s *Service) UploadFileForTenant(ctx context.Context, tenantID, region, bucket, key string, body io.Reader, contentType string) (*model.ObjectFile, error) {
	tenant, err := s.engine.ResolveTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	callCtx, cancel := s.engine.CallContext(ctx)
	defer cancel()

	file, err := s.dp.PutObject(callCtx, *tenant, region, bucket, key, body, contentType)
	if err != nil {
		return nil, err
	}
	enriched := file.WithOwner(tenant.ID, tenant.Name)
	return &enriched, nil
}

// VerifyTenant checks a tenant's token against the provider account
// endpoint. It resolves the tenant directly from the directory (not through
// ResolveTenant) so that an invalid-flagged credential can still be
// re-verified.
func (s *Service) VerifyTenant(ctx context.Context, tenant model.Tenant) (*model.Account, error) {
	callCtx, cancel := s.engine.CallContext(ctx)
	defer cancel()

	return s.cp.GetAccount(callCtx, tenant.Token)
}
