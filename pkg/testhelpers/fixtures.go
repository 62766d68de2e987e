package testhelpers

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/planroom-inc/planroom-engine/pkg/database"
	"github.com/planroom-inc/planroom-engine/pkg/models"
)

// CreateProject inserts a project with a generated unique project number.
// Each test owns its own project, which keeps tests independent on the
// shared container.
func CreateProject(t *testing.T, db *database.DB, name string) *models.Project {
	t.Helper()

	project := &models.Project{
		ID:            uuid.New(),
		ProjectNumber: fmt.Sprintf("TP-%s", uuid.NewString()[:8]),
		Name:          name,
	}

	err := db.QueryRow(context.Background(),
		`INSERT INTO projects (id, project_number, name) VALUES ($1, $2, $3) RETURNING created_at`,
		project.ID, project.ProjectNumber, project.Name,
	).Scan(&project.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}

	return project
}

// CreateSheet inserts a drawing sheet revision for a project.
func CreateSheet(t *testing.T, db *database.DB, projectID uuid.UUID, drawingNumber, discipline string, isCurrent bool) *models.Sheet {
	t.Helper()

	sheet := &models.Sheet{
		ID:            uuid.New(),
		ProjectID:     projectID,
		DrawingNumber: drawingNumber,
		Discipline:    discipline,
		IsCurrent:     isCurrent,
	}

	err := db.QueryRow(context.Background(),
		`INSERT INTO sheets (id, project_id, drawing_number, discipline, is_current)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		sheet.ID, sheet.ProjectID, sheet.DrawingNumber, sheet.Discipline, sheet.IsCurrent,
	).Scan(&sheet.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create test sheet: %v", err)
	}

	return sheet
}

// CreateLine inserts a line fact on a sheet. Empty attribute values are
// stored as NULL, matching what extraction produces for absent fields.
func CreateLine(t *testing.T, db *database.DB, sheetID uuid.UUID, lineNumber, size, material string) *models.Line {
	t.Helper()

	line := &models.Line{
		ID:         uuid.New(),
		SheetID:    sheetID,
		LineNumber: lineNumber,
		Size:       size,
		Material:   material,
	}

	err := db.QueryRow(context.Background(),
		`INSERT INTO lines (id, sheet_id, line_number, size, material)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		line.ID, line.SheetID, line.LineNumber, nullableString(size), nullableString(material),
	).Scan(&line.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create test line: %v", err)
	}

	return line
}

// CreateEquipment inserts an equipment fact on a sheet.
func CreateEquipment(t *testing.T, db *database.DB, sheetID uuid.UUID, tag, equipmentType, description string) *models.Equipment {
	t.Helper()

	equipment := &models.Equipment{
		ID:            uuid.New(),
		SheetID:       sheetID,
		Tag:           tag,
		EquipmentType: equipmentType,
		Description:   description,
	}

	err := db.QueryRow(context.Background(),
		`INSERT INTO equipment (id, sheet_id, tag, equipment_type, description)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		equipment.ID, equipment.SheetID, equipment.Tag,
		nullableString(equipmentType), nullableString(description),
	).Scan(&equipment.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create test equipment: %v", err)
	}

	return equipment
}

// CreateInstrument inserts an instrument fact on a sheet.
func CreateInstrument(t *testing.T, db *database.DB, sheetID uuid.UUID, tag, instrumentType, loopNumber string) *models.Instrument {
	t.Helper()

	instrument := &models.Instrument{
		ID:             uuid.New(),
		SheetID:        sheetID,
		Tag:            tag,
		InstrumentType: instrumentType,
		LoopNumber:     loopNumber,
	}

	err := db.QueryRow(context.Background(),
		`INSERT INTO instruments (id, sheet_id, tag, instrument_type, loop_number)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		instrument.ID, instrument.SheetID, instrument.Tag,
		nullableString(instrumentType), nullableString(loopNumber),
	).Scan(&instrument.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create test instrument: %v", err)
	}

	return instrument
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
