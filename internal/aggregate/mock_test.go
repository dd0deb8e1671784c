package aggregate

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/huongpham911/cloudwin-sub002/internal/directory"
	"github.com/huongpham911/cloudwin-sub002/internal/model"
)

// ---------- Fake directory ----------

type fakeDirectory struct {
	tenants []model.Tenant
	err     error
}

func (d *fakeDirectory) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.tenants, nil
}

func (d *fakeDirectory) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	if d.err != nil {
		return nil, d.err
	}
	for _, t := range d.tenants {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, directory.ErrNotFound
}

// ---------- Fake control plane ----------

// tenantBehavior scripts one tenant's provider responses, keyed by token.
type tenantBehavior struct {
	spaces  []model.Space
	buckets []model.Bucket
	err     error
	// delay simulates network latency; block waits for ctx cancellation
	// (used for timeout scenarios).
	delay time.Duration
	block bool
}

type fakeControlPlane struct {
	mu        sync.Mutex
	behaviors map[string]tenantBehavior
	calls     []string // tokens, in call order
}

func newFakeControlPlane() *fakeControlPlane {
	return &fakeControlPlane{behaviors: map[string]tenantBehavior{}}
}

func (f *fakeControlPlane) record(token string) tenantBehavior {
	f.mu.Lock()
	f.calls = append(f.calls, token)
	b := f.behaviors[token]
	f.mu.Unlock()
	return b
}

func (f *fakeControlPlane) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeControlPlane) wait(ctx context.Context, b tenantBehavior) error {
	if b.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if b.delay > 0 {
		select {
		case <-time.After(b.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return b.err
}

func (f *fakeControlPlane) GetAccount(ctx context.Context, token string) (*model.Account, error) {
	b := f.record(token)
	if err := f.wait(ctx, b); err != nil {
		return nil, err
	}
	return &model.Account{Email: token + "@example.com", Status: "active"}, nil
}

func (f *fakeControlPlane) ListSpaces(ctx context.Context, token string) ([]model.Space, error) {
	b := f.record(token)
	if err := f.wait(ctx, b); err != nil {
		return nil, err
	}
	return b.spaces, nil
}

func (f *fakeControlPlane) ListBuckets(ctx context.Context, token string) ([]model.Bucket, error) {
	b := f.record(token)
	if err := f.wait(ctx, b); err != nil {
		return nil, err
	}
	return b.buckets, nil
}

func (f *fakeControlPlane) CreateBucket(ctx context.Context, token string, spec model.BucketSpec) (*model.Bucket, error) {
	b := f.record(token)
	if err := f.wait(ctx, b); err != nil {
		return nil, err
	}
	return &model.Bucket{Name: spec.Name, Region: spec.Region}, nil
}

func (f *fakeControlPlane) DeleteBucket(ctx context.Context, token, name string) error {
	b := f.record(token)
	return f.wait(ctx, b)
}

// ---------- Fake data plane ----------

type fakeDataPlane struct {
	mu    sync.Mutex
	files []model.ObjectFile
	err   error
	calls int
}

func (f *fakeDataPlane) record() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeDataPlane) ListObjects(ctx context.Context, t model.Tenant, region, bucket, prefix string) ([]model.ObjectFile, error) {
	f.record()
	if f.err != nil {
		return nil, f.err
	}
	return f.files, nil
}

func (f *fakeDataPlane) DeleteObject(ctx context.Context, t model.Tenant, region, bucket, key string) error {
	f.record()
	return f.err
}

func (f *fakeDataPlane) PutObject(ctx context.Context, t model.Tenant, region, bucket, key string, body io.Reader, contentType string) (*model.ObjectFile, error) {
	f.record()
	if f.err != nil {
		return nil, f.err
	}
	return &model.ObjectFile{Key: key, ContentType: contentType}, nil
}

var errBackend = errors.New("backend exploded")
