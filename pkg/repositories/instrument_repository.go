package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/planroom-inc/planroom-engine/pkg/database"
)

// InstrumentRepository defines the interface for instrument fact access.
// Instruments feed dataset statistics only; no check consumes them yet.
type InstrumentRepository interface {
	// CountCurrentByProject returns the number of instrument facts on
	// current-revision sheets of a project.
	CountCurrentByProject(ctx context.Context, projectID uuid.UUID) (int, error)
}

// instrumentRepository implements InstrumentRepository using PostgreSQL.
type instrumentRepository struct {
	db *database.DB
}

// NewInstrumentRepository creates a new instrument repository.
func NewInstrumentRepository(db *database.DB) InstrumentRepository {
	return &instrumentRepository{db: db}
}

func (r *instrumentRepository) CountCurrentByProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM instruments i
		JOIN sheets s ON s.id = i.sheet_id
		WHERE s.project_id = $1 AND s.is_current = true`

	var count int
	if err := r.db.QueryRow(ctx, query, projectID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count instruments: %w", err)
	}

	return count, nil
}

// Ensure instrumentRepository implements InstrumentRepository at compile time.
var _ InstrumentRepository = (*instrumentRepository)(nil)
