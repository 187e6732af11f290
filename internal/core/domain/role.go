package domain

import "github.com/google/uuid"

// Role groups permission identifiers. The list is stored as given, duplicates included.
type Role struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Permissions []uuid.UUID `json:"permissions"`
	Audit
}
