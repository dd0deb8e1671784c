package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/huongpham911/cloudwin-sub002/internal/api/request"
	"github.com/huongpham911/cloudwin-sub002/internal/model"
)

// ErrNotFound is returned when a tenant does not exist in the directory.
var ErrNotFound = errors.New("tenant not found")

// DB defines the database operations used by the directory.
// *pgxpool.Pool satisfies this interface.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service is the credential directory: it owns tenant identities and their
// provider credentials. The aggregation engine reads it once per request and
// treats the result as a point-in-time snapshot.
type Service struct {
	db DB
}

func NewService(db DB) *Service {
	return &Service{db: db}
}

const tenantColumns = `id, name, token, access_key, secret_key, is_valid, created_at, updated_at`

func scanTenant(row pgx.Row) (model.Tenant, error) {
	var t model.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Token, &t.AccessKey, &t.SecretKey,
		&t.IsValid, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// ListTenants returns the full tenant snapshot in stable order. The order is
// part of the aggregation contract: merged fan-out results follow it.
func (s *Service) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []model.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tenants: %w", err)
	}
	return tenants, nil
}

// GetByID returns a single tenant, or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	t, err := scanTenant(s.db.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tenant %s: %w", id, err)
	}
	return &t, nil
}

// Create registers a new tenant account and its credentials.
func (s *Service) Create(ctx context.Context, tenant *model.Tenant) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO tenants (id, name, token, access_key, secret_key, is_valid, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tenant.ID, tenant.Name, tenant.Token, tenant.AccessKey, tenant.SecretKey,
		tenant.IsValid, tenant.CreatedAt, tenant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// Update replaces mutable tenant fields. Nil pointers leave the field alone.
func (s *Service) Update(ctx context.Context, id string, name, token, accessKey, secretKey *string) error {
	if name != nil {
		if err := s.setColumn(ctx, id, "name", *name); err != nil {
			return err
		}
	}
	if token != nil {
		if err := s.setColumn(ctx, id, "token", *token); err != nil {
			return err
		}
	}
	if accessKey != nil {
		if err := s.setColumn(ctx, id, "access_key", *accessKey); err != nil {
			return err
		}
	}
	if secretKey != nil {
		if err := s.setColumn(ctx, id, "secret_key", *secretKey); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) setColumn(ctx context.Context, id, column, value string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE tenants SET `+column+` = $1, updated_at = now() WHERE id = $2`,
		value, id,
	)
	if err != nil {
		return fmt.Errorf("update tenant %s %s: %w", id, column, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetValidity flags whether a tenant's credential is usable. Invalid tenants
// are skipped entirely by fan-out reads.
func (s *Service) SetValidity(ctx context.Context, id string, valid bool) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE tenants SET is_valid = $1, updated_at = now() WHERE id = $2`,
		valid, id,
	)
	if err != nil {
		return fmt.Errorf("set tenant %s validity: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a tenant and its credentials from the directory.
func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tenant %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns a page of tenants for the management UI.
func (s *Service) List(ctx context.Context, params request.ListParams) ([]model.Tenant, bool, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE 1=1`
	args := []any{}
	argIdx := 1

	if params.Search != "" {
		query += fmt.Sprintf(` AND (id ILIKE $%d OR name ILIKE $%d)`, argIdx, argIdx)
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.Cursor != "" {
		query += fmt.Sprintf(` AND id > $%d`, argIdx)
		args = append(args, params.Cursor)
		argIdx++
	}

	sortCol := "created_at"
	switch params.Sort {
	case "name":
		sortCol = "name"
	case "created_at":
		sortCol = "created_at"
	}
	order := "DESC"
	if params.Order == "asc" {
		order = "ASC"
	}
	query += fmt.Sprintf(` ORDER BY %s %s`, sortCol, order)
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, params.Limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list tenants page: %w", err)
	}
	defer rows.Close()

	var tenants []model.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate tenants: %w", err)
	}

	hasMore := len(tenants) > params.Limit
	if hasMore {
		tenants = tenants[:params.Limit]
	}
	return tenants, hasMore, nil
}
