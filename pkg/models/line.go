package models

import (
	"time"

	"github.com/google/uuid"
)

// Line is a transcribed piping segment fact, keyed by line number within a
// project. Lines on different sheets sharing a line number describe the same
// physical run.
type Line struct {
	ID         uuid.UUID `json:"id"`
	SheetID    uuid.UUID `json:"sheet_id"`
	LineNumber string    `json:"line_number"`
	Size       string    `json:"size,omitempty"`
	Material   string    `json:"material,omitempty"`
	Spec       string    `json:"spec,omitempty"`
	Service    string    `json:"service,omitempty"`
	Insulation string    `json:"insulation,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	// Populated from the owning sheet when facts are read for checking.
	DrawingNumber string `json:"drawing_number,omitempty"`
	Discipline    string `json:"discipline,omitempty"`
}
