// Package models contains domain types for planroom-engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Project identifies a body of drawings under review. Projects are created
// by the intake subsystem; the engine only resolves and reads them.
type Project struct {
	ID            uuid.UUID `json:"id"`
	ProjectNumber string    `json:"project_number"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
}
