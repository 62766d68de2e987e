package models

import (
	"time"

	"github.com/google/uuid"
)

// Equipment is a transcribed tagged-equipment fact, keyed by tag within a
// project.
type Equipment struct {
	ID            uuid.UUID `json:"id"`
	SheetID       uuid.UUID `json:"sheet_id"`
	Tag           string    `json:"tag"`
	EquipmentType string    `json:"equipment_type,omitempty"`
	Description   string    `json:"description,omitempty"`
	Manufacturer  string    `json:"manufacturer,omitempty"`
	Model         string    `json:"model,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	// Populated from the owning sheet when facts are read for checking.
	DrawingNumber string `json:"drawing_number,omitempty"`
	Discipline    string `json:"discipline,omitempty"`
}
