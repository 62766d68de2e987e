package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/planroom-inc/planroom-engine/pkg/database"
)

// SheetRepository defines the interface for drawing sheet data access.
type SheetRepository interface {
	// CountCurrentByDiscipline returns the number of current-revision sheets
	// per discipline for a project. Superseded revisions are never counted.
	CountCurrentByDiscipline(ctx context.Context, projectID uuid.UUID) (map[string]int, error)
}

// sheetRepository implements SheetRepository using PostgreSQL.
type sheetRepository struct {
	db *database.DB
}

// NewSheetRepository creates a new sheet repository.
func NewSheetRepository(db *database.DB) SheetRepository {
	return &sheetRepository{db: db}
}

func (r *sheetRepository) CountCurrentByDiscipline(ctx context.Context, projectID uuid.UUID) (map[string]int, error) {
	query := `
		SELECT discipline, COUNT(*) as count
		FROM sheets
		WHERE project_id = $1 AND is_current = true
		GROUP BY discipline`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sheets: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var discipline string
		var count int
		if err := rows.Scan(&discipline, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[discipline] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counts: %w", err)
	}

	return counts, nil
}

// Ensure sheetRepository implements SheetRepository at compile time.
var _ SheetRepository = (*sheetRepository)(nil)
