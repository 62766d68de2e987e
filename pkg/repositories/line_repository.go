package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/planroom-inc/planroom-engine/pkg/database"
	"github.com/planroom-inc/planroom-engine/pkg/models"
)

// LineRepository defines the interface for piping line fact access.
type LineRepository interface {
	// ListCurrentByProject returns all line facts transcribed from
	// current-revision sheets of a project, annotated with the owning
	// sheet's drawing number and discipline. Facts with an empty line
	// number carry no identity and are excluded. Ordering is stable:
	// line number, then drawing number, then id.
	ListCurrentByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Line, error)

	// CountCurrentByProject returns the number of line facts on
	// current-revision sheets, including ones with empty line numbers.
	CountCurrentByProject(ctx context.Context, projectID uuid.UUID) (int, error)
}

// lineRepository implements LineRepository using PostgreSQL.
type lineRepository struct {
	db *database.DB
}

// NewLineRepository creates a new line repository.
func NewLineRepository(db *database.DB) LineRepository {
	return &lineRepository{db: db}
}

func (r *lineRepository) ListCurrentByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Line, error) {
	query := `
		SELECT l.id, l.sheet_id, l.line_number,
		       COALESCE(l.size, ''), COALESCE(l.material, ''), COALESCE(l.spec, ''),
		       COALESCE(l.service, ''), COALESCE(l.insulation, ''),
		       l.created_at, s.drawing_number, s.discipline
		FROM lines l
		JOIN sheets s ON s.id = l.sheet_id
		WHERE s.project_id = $1 AND s.is_current = true AND l.line_number <> ''
		ORDER BY l.line_number, s.drawing_number, l.id`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines: %w", err)
	}
	defer rows.Close()

	return scanLines(rows)
}

func (r *lineRepository) CountCurrentByProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM lines l
		JOIN sheets s ON s.id = l.sheet_id
		WHERE s.project_id = $1 AND s.is_current = true`

	var count int
	if err := r.db.QueryRow(ctx, query, projectID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lines: %w", err)
	}

	return count, nil
}

func scanLines(rows pgx.Rows) ([]*models.Line, error) {
	var lines []*models.Line
	for rows.Next() {
		line, err := scanLineFromRows(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lines: %w", err)
	}

	return lines, nil
}

func scanLineFromRows(rows pgx.Rows) (*models.Line, error) {
	var l models.Line
	err := rows.Scan(
		&l.ID,
		&l.SheetID,
		&l.LineNumber,
		&l.Size,
		&l.Material,
		&l.Spec,
		&l.Service,
		&l.Insulation,
		&l.CreatedAt,
		&l.DrawingNumber,
		&l.Discipline,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan line: %w", err)
	}

	return &l, nil
}

// Ensure lineRepository implements LineRepository at compile time.
var _ LineRepository = (*lineRepository)(nil)
