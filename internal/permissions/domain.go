package permissions

import "time"

// Permission is an atomic capability identified by a slug. Category only
// groups entries for presentation.
type Permission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Draft is caller-supplied data for permission creation. A missing ID is
// derived from the name.
type Draft struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Patch replaces every field of an existing permission except its id.
type Patch struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// DeleteAck acknowledges a deletion. Deleting an absent id still acks.
type DeleteAck struct {
	ID        string    `json:"id"`
	DeletedAt time.Time `json:"deletedAt"`
}
