package aggregate

import "github.com/huongpham911/cloudwin-sub002/internal/provider"

// PartialFailure records one tenant whose provider call failed during a
// fan-out. It never carries the tenant's credential.
type PartialFailure struct {
	TenantID   string             `json:"tenant_id"`
	TenantName string             `json:"tenant_name"`
	Kind       provider.ErrorKind `json:"kind"`
	Message    string             `json:"message"`
}

// Result is the unit a fan-out read returns: the merged item sequence in
// directory snapshot order, the failure manifest, and the ids of tenants
// that were actually queried. Attempted lets callers tell "tenant returned
// zero items" apart from "tenant was never queried".
type Result[T any] struct {
	Items     []T              `json:"items"`
	Failures  []PartialFailure `json:"failures"`
	Attempted []string         `json:"attempted_tenants"`
}
