package models

import (
	"github.com/google/uuid"
)

// Admin representa un usuario del panel (personal del ISP).
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Role         string    `json:"role"` // "admin", "soporte", etc.
	Active       bool      `json:"active"`
}
