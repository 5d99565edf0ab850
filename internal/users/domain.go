package users

import "time"

// User is a managed account record referencing roles by convention only;
// deleting a user never cascades into the role collection.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Draft is caller-supplied data for user creation.
type Draft struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"`
}

// Patch carries the fields a user update may legally change.
type Patch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// DeleteAck acknowledges a completed deletion.
type DeleteAck struct {
	ID        int64     `json:"id"`
	DeletedAt time.Time `json:"deletedAt"`
}
