package models

import (
	"time"

	"github.com/google/uuid"
)

// Instrument is a transcribed instrumentation fact, keyed by tag. Read for
// dataset statistics only; no dedicated instrument check exists yet.
type Instrument struct {
	ID             uuid.UUID `json:"id"`
	SheetID        uuid.UUID `json:"sheet_id"`
	Tag            string    `json:"tag"`
	InstrumentType string    `json:"instrument_type,omitempty"`
	LoopNumber     string    `json:"loop_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
