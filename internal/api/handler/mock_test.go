package handler

import (
	"context"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/huongpham911/cloudwin-sub002/internal/aggregate"
	"github.com/huongpham911/cloudwin-sub002/internal/directory"
	"github.com/huongpham911/cloudwin-sub002/internal/model"
)

// ---------- Mock DB (for directory-backed handlers) ----------

type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

type mockRow struct {
	scanFunc func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// ---------- Fake aggregation collaborators ----------

type fakeDir struct {
	tenants []model.Tenant
	err     error
}

func (d *fakeDir) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.tenants, nil
}

func (d *fakeDir) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
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

type fakeControlPlane struct {
	spaces  map[string][]model.Space
	buckets map[string][]model.Bucket
	err     map[string]error
}

func (f *fakeControlPlane) GetAccount(ctx context.Context, token string) (*model.Account, error) {
	if err := f.err[token]; err != nil {
		return nil, err
	}
	return &model.Account{Email: "test@example.com", Status: "active"}, nil
}

func (f *fakeControlPlane) ListSpaces(ctx context.Context, token string) ([]model.Space, error) {
	if err := f.err[token]; err != nil {
		return nil, err
	}
	return f.spaces[token], nil
}

func (f *fakeControlPlane) ListBuckets(ctx context.Context, token string) ([]model.Bucket, error) {
	if err := f.err[token]; err != nil {
		return nil, err
	}
	return f.buckets[token], nil
}

func (f *fakeControlPlane) CreateBucket(ctx context.Context, token string, spec model.BucketSpec) (*model.Bucket, error) {
	if err := f.err[token]; err != nil {
		return nil, err
	}
	return &model.Bucket{Name: spec.Name, Region: spec.Region}, nil
}

func (f *fakeControlPlane) DeleteBucket(ctx context.Context, token, name string) error {
	return f.err[token]
}

type fakeDataPlane struct {
	files []model.ObjectFile
	err   error
}

func (f *fakeDataPlane) ListObjects(ctx context.Context, t model.Tenant, region, bucket, prefix string) ([]model.ObjectFile, error) {
	return f.files, f.err
}

func (f *fakeDataPlane) DeleteObject(ctx context.Context, t model.Tenant, region, bucket, key string) error {
	return f.err
}

func (f *fakeDataPlane) PutObject(ctx context.Context, t model.Tenant, region, bucket, key string, body io.Reader, contentType string) (*model.ObjectFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.ObjectFile{Key: key, ContentType: contentType}, nil
}

func newTestAggregate(dir aggregate.Directory, cp aggregate.ControlPlane, dp aggregate.DataPlane) *aggregate.Service {
	engine := aggregate.NewEngine(dir, zerolog.Nop(), 4, time.Second)
	return aggregate.NewService(engine, cp, dp)
}
