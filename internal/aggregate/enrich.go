package aggregate

import "github.com/huongpham911/cloudwin-sub002/internal/model"

// ownable is satisfied by resource types that can be stamped with their
// owning tenant.
type ownable[T any] interface {
	WithOwner(id, name string) T
}

// Enrich stamps every item with its owning tenant's identity. Items are
// enriched immediately after a successful per-tenant call, before they reach
// the merge step, so one tenant's results can never be mistaken for
// another's.
func Enrich[T ownable[T]](tenant model.Tenant, items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.WithOwner(tenant.ID, tenant.Name)
	}
	return out
}
