package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/planroom-inc/planroom-engine/pkg/apperrors"
	"github.com/planroom-inc/planroom-engine/pkg/database"
	"github.com/planroom-inc/planroom-engine/pkg/models"
)

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	// GetByNumber retrieves a project by its human-facing project number.
	// Returns apperrors.ErrProjectNotFound when no project matches.
	GetByNumber(ctx context.Context, projectNumber string) (*models.Project, error)
}

// projectRepository implements ProjectRepository using PostgreSQL.
type projectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *database.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) GetByNumber(ctx context.Context, projectNumber string) (*models.Project, error) {
	query := `
		SELECT id, project_number, COALESCE(name, ''), created_at
		FROM projects
		WHERE project_number = $1`

	var project models.Project
	err := r.db.QueryRow(ctx, query, projectNumber).Scan(
		&project.ID,
		&project.ProjectNumber,
		&project.Name,
		&project.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

// Ensure projectRepository implements ProjectRepository at compile time.
var _ ProjectRepository = (*projectRepository)(nil)
