package roles

import "time"

// Role groups permission ids under a name. Default roles are seeded once and
// can never be modified or deleted.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Draft is caller-supplied data for role creation.
type Draft struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// Patch carries the fields a role update may legally change. Nil fields are
// left untouched.
type Patch struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Permissions *[]string `json:"permissions"`
}

// DeleteAck acknowledges a completed deletion.
type DeleteAck struct {
	ID        int64     `json:"id"`
	DeletedAt time.Time `json:"deletedAt"`
}

// BaselinePermissionIDs is the assignable permission catalog surfaced to
// operators when composing a role. Role→permission references are not
// validated against the permission collection.
var BaselinePermissionIDs = []string{
	"create_user",
	"edit_user",
	"delete_user",
	"view_users",
	"manage_roles",
	"assign_roles",
	"view_roles",
	"manage_permissions",
}
