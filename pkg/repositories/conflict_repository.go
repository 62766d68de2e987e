package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/planroom-inc/planroom-engine/pkg/database"
	"github.com/planroom-inc/planroom-engine/pkg/models"
)

// ConflictRepository defines the interface for conflict persistence. It is
// the only write path the engine owns; fact tables are read-only to it.
type ConflictRepository interface {
	// ReplaceForProject atomically replaces all stored conflicts for a
	// project with the given set. Deletion and insertion happen in one
	// transaction: on any failure the previous conflicts remain intact.
	// Insertion order is preserved and is the order ListByProject returns.
	ReplaceForProject(ctx context.Context, projectID uuid.UUID, conflicts []*models.Conflict) error

	// ListByProject returns all stored conflicts for a project in
	// insertion order.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Conflict, error)

	// CountBySeverity returns the number of stored conflicts per severity
	// for a project.
	CountBySeverity(ctx context.Context, projectID uuid.UUID) (map[string]int, error)
}

// conflictRepository implements ConflictRepository using PostgreSQL.
type conflictRepository struct {
	db *database.DB
}

// NewConflictRepository creates a new conflict repository.
func NewConflictRepository(db *database.DB) ConflictRepository {
	return &conflictRepository{db: db}
}

func (r *conflictRepository) ReplaceForProject(ctx context.Context, projectID uuid.UUID, conflicts []*models.Conflict) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback on defer is best-effort

	_, err = tx.Exec(ctx, `DELETE FROM conflicts WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete previous conflicts: %w", err)
	}

	if len(conflicts) > 0 {
		now := time.Now()

		batch := &pgx.Batch{}
		query := `
			INSERT INTO conflicts (
				id, project_id, conflict_type, severity, item, details, resolved, seq, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

		for i, conflict := range conflicts {
			if conflict.ID == uuid.Nil {
				conflict.ID = uuid.New()
			}
			conflict.ProjectID = projectID
			conflict.CreatedAt = now

			batch.Queue(query,
				conflict.ID,
				conflict.ProjectID,
				conflict.ConflictType,
				conflict.Severity,
				conflict.Item,
				conflict.Details,
				conflict.Resolved,
				i,
				conflict.CreatedAt,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for i := range conflicts {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return fmt.Errorf("failed to insert conflict %d: %w", i, err)
			}
		}
		// Batch results must be closed before the transaction can commit.
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to close batch results: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *conflictRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Conflict, error) {
	query := `
		SELECT id, project_id, conflict_type, severity, item, details, resolved, created_at
		FROM conflicts
		WHERE project_id = $1
		ORDER BY seq`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}
	defer rows.Close()

	return scanConflicts(rows)
}

func (r *conflictRepository) CountBySeverity(ctx context.Context, projectID uuid.UUID) (map[string]int, error) {
	query := `
		SELECT severity, COUNT(*) as count
		FROM conflicts
		WHERE project_id = $1
		GROUP BY severity`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count conflicts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var severity string
		var count int
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[severity] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counts: %w", err)
	}

	return counts, nil
}

func scanConflicts(rows pgx.Rows) ([]*models.Conflict, error) {
	var conflicts []*models.Conflict
	for rows.Next() {
		conflict, err := scanConflictFromRows(rows)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, conflict)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conflicts: %w", err)
	}

	return conflicts, nil
}

func scanConflictFromRows(rows pgx.Rows) (*models.Conflict, error) {
	var c models.Conflict
	err := rows.Scan(
		&c.ID,
		&c.ProjectID,
		&c.ConflictType,
		&c.Severity,
		&c.Item,
		&c.Details,
		&c.Resolved,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan conflict: %w", err)
	}

	return &c, nil
}

// Ensure conflictRepository implements ConflictRepository at compile time.
var _ ConflictRepository = (*conflictRepository)(nil)
