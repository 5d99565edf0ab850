// Package store provides durable key-value persistence for entity
// collections. A collection is stored as a single JSON array document and
// replaced wholesale on every save.
package store

import (
	"context"
)

// Collection names owned by the entity services.
const (
	CollectionUsers       = "users"
	CollectionRoles       = "roles"
	CollectionPermissions = "permissions"
)

// Store loads and saves whole collections. Load decodes the stored JSON
// array into out; an absent collection leaves out untouched. Save marshals
// records and replaces the stored document atomically.
type Store interface {
	Load(ctx context.Context, collection string, out any) error
	Save(ctx context.Context, collection string, records any) error
}

// Snapshotter is implemented by backends that can copy a collection
// document into a named backup slot.
type Snapshotter interface {
	Snapshot(ctx context.Context, collection, backup string) error
}
