package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/planroom-inc/planroom-engine/pkg/database"
	"github.com/planroom-inc/planroom-engine/pkg/models"
)

// EquipmentRepository defines the interface for equipment fact access.
type EquipmentRepository interface {
	// ListCurrentByProject returns all equipment facts transcribed from
	// current-revision sheets of a project, annotated with the owning
	// sheet's drawing number and discipline. Facts with an empty tag are
	// excluded. Ordering is stable: tag, then drawing number, then id.
	ListCurrentByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Equipment, error)

	// CountCurrentByProject returns the number of equipment facts on
	// current-revision sheets, including ones with empty tags.
	CountCurrentByProject(ctx context.Context, projectID uuid.UUID) (int, error)
}

// equipmentRepository implements EquipmentRepository using PostgreSQL.
type equipmentRepository struct {
	db *database.DB
}

// NewEquipmentRepository creates a new equipment repository.
func NewEquipmentRepository(db *database.DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) ListCurrentByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Equipment, error) {
	query := `
		SELECT e.id, e.sheet_id, e.tag,
		       COALESCE(e.equipment_type, ''), COALESCE(e.description, ''),
		       COALESCE(e.manufacturer, ''), COALESCE(e.model, ''),
		       e.created_at, s.drawing_number, s.discipline
		FROM equipment e
		JOIN sheets s ON s.id = e.sheet_id
		WHERE s.project_id = $1 AND s.is_current = true AND e.tag <> ''
		ORDER BY e.tag, s.drawing_number, e.id`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer rows.Close()

	return scanEquipment(rows)
}

func (r *equipmentRepository) CountCurrentByProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM equipment e
		JOIN sheets s ON s.id = e.sheet_id
		WHERE s.project_id = $1 AND s.is_current = true`

	var count int
	if err := r.db.QueryRow(ctx, query, projectID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count equipment: %w", err)
	}

	return count, nil
}

func scanEquipment(rows pgx.Rows) ([]*models.Equipment, error) {
	var equipment []*models.Equipment
	for rows.Next() {
		item, err := scanEquipmentFromRows(rows)
		if err != nil {
			return nil, err
		}
		equipment = append(equipment, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating equipment: %w", err)
	}

	return equipment, nil
}

func scanEquipmentFromRows(rows pgx.Rows) (*models.Equipment, error) {
	var e models.Equipment
	err := rows.Scan(
		&e.ID,
		&e.SheetID,
		&e.Tag,
		&e.EquipmentType,
		&e.Description,
		&e.Manufacturer,
		&e.Model,
		&e.CreatedAt,
		&e.DrawingNumber,
		&e.Discipline,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan equipment: %w", err)
	}

	return &e, nil
}

// Ensure equipmentRepository implements EquipmentRepository at compile time.
var _ EquipmentRepository = (*equipmentRepository)(nil)
