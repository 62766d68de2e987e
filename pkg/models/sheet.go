package models

import (
	"time"

	"github.com/google/uuid"
)

// Sheet represents one drawing revision. Exactly one revision of a given
// drawing number is current at a time; superseded revisions are retained but
// excluded from checking. Sheets are created by ingestion and are read-only
// to the engine.
type Sheet struct {
	ID            uuid.UUID `json:"id"`
	ProjectID     uuid.UUID `json:"project_id"`
	DrawingNumber string    `json:"drawing_number"`
	Discipline    string    `json:"discipline"`
	IsCurrent     bool      `json:"is_current"`
	CreatedAt     time.Time `json:"created_at"`
}
