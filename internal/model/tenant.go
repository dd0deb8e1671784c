package model

import "time"

// Tenant is one provider account whose resources are aggregated into the
// unified view. The API token authenticates control-plane calls; the access
// key pair authenticates S3-compatible data-plane calls. Secrets are never
// serialized into API responses.
type Tenant struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Token     string    `json:"-" db:"token"`
	AccessKey string    `json:"-" db:"access_key"`
	SecretKey string    `json:"-" db:"secret_key"`
	IsValid   bool      `json:"is_valid" db:"is_valid"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Account is the provider-side identity behind a tenant's token, returned by
// the control plane when verifying a credential.
type Account struct {
	Email  string `json:"email"`
	UUID   string `json:"uuid"`
	Status string `json:"status"`
}
