package model

import "time"

// Space is an object-storage namespace on the provider, scoped to a region.
type Space struct {
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	Endpoint  string    `json:"endpoint"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   string    `json:"owning_tenant_id"`
	OwnerName string    `json:"owning_tenant_name"`
}

// WithOwner returns a copy of the space stamped with its owning tenant.
func (s Space) WithOwner(id, name string) Space {
	s.OwnerID = id
	s.OwnerName = name
	return s
}

// Bucket is a storage bucket on the provider.
type Bucket struct {
	Name        string    `json:"name"`
	Region      string    `json:"region"`
	SizeBytes   int64     `json:"size_bytes"`
	ObjectCount int64     `json:"object_count"`
	CreatedAt   time.Time `json:"created_at"`
	OwnerID     string    `json:"owning_tenant_id"`
	OwnerName   string    `json:"owning_tenant_name"`
}

// WithOwner returns a copy of the bucket stamped with its owning tenant.
func (b Bucket) WithOwner(id, name string) Bucket {
	b.OwnerID = id
	b.OwnerName = name
	return b
}

// ObjectFile is a single object inside a bucket.
type ObjectFile struct {
	Key          string    `json:"key"`
	SizeBytes    int64     `json:"size_bytes"`
	ETag         string    `json:"etag"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
	OwnerID      string    `json:"owning_tenant_id"`
	OwnerName    string    `json:"owning_tenant_name"`
}

// WithOwner returns a copy of the file stamped with its owning tenant.
func (f ObjectFile) WithOwner(id, name string) ObjectFile {
	f.OwnerID = id
	f.OwnerName = name
	return f
}

// BucketSpec describes a bucket to create on a tenant's account.
type BucketSpec struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}
