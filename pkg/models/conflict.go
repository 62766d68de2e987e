package models

import (
	"time"

	"github.com/google/uuid"
)

// ConflictType classifies which attribute two facts disagreed on.
type ConflictType string

const (
	ConflictTypeMaterial ConflictType = "MATERIAL"
	ConflictTypeSize     ConflictType = "SIZE"
	ConflictTypeTag      ConflictType = "TAG_CONFLICT"
)

// Severity grades how serious a detected conflict is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// SeverityOrder lists severities in report priority order.
var SeverityOrder = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Valid reports whether t is one of the known conflict types.
func (t ConflictType) Valid() bool {
	switch t {
	case ConflictTypeMaterial, ConflictTypeSize, ConflictTypeTag:
		return true
	}
	return false
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Conflict is the engine's sole writable entity: a detected disagreement
// between two facts believed to describe the same real-world item. All
// conflicts for a project are replaced wholesale on each run; Resolved is
// false on creation and only ever mutated by the external review workflow.
type Conflict struct {
	ID           uuid.UUID    `json:"id"`
	ProjectID    uuid.UUID    `json:"project_id"`
	ConflictType ConflictType `json:"conflict_type"`
	Severity     Severity     `json:"severity"`
	Item         string       `json:"item"`
	Details      string       `json:"details"`
	Resolved     bool         `json:"resolved"`
	CreatedAt    time.Time    `json:"created_at"`
}
