//go:build integration

package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planroom-inc/planroom-engine/pkg/models"
	"github.com/planroom-inc/planroom-engine/pkg/testhelpers"
)

func conflictFixture(ctype models.ConflictType, severity models.Severity, item string) *models.Conflict {
	return &models.Conflict{
		ConflictType: ctype,
		Severity:     severity,
		Item:         item,
		Details:      fmt.Sprintf("details for %s", item),
	}
}

func TestConflictRepository_ReplaceForProject_RoundTrip(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	ctx := context.Background()

	project := testhelpers.CreateProject(t, engineDB.DB, "Conflict Round Trip")
	repo := NewConflictRepository(engineDB.DB)

	conflicts := []*models.Conflict{
		conflictFixture(models.ConflictTypeMaterial, models.SeverityCritical, `line: 4"-PW-100`),
		conflictFixture(models.ConflictTypeSize, models.SeverityMedium, `line: 2"-CW-200`),
		conflictFixture(models.ConflictTypeTag, models.SeverityHigh, "equipment: P-1001"),
	}

	err := repo.ReplaceForProject(ctx, project.ID, conflicts)
	require.NoError(t, err)

	stored, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	for i, conflict := range stored {
		assert.NotEqual(t, uuid.Nil, conflict.ID, "conflict %d should have an ID", i)
		assert.Equal(t, project.ID, conflict.ProjectID)
		assert.Equal(t, conflicts[i].ConflictType, conflict.ConflictType)
		assert.Equal(t, conflicts[i].Severity, conflict.Severity)
		assert.Equal(t, conflicts[i].Item, conflict.Item)
		assert.Equal(t, conflicts[i].Details, conflict.Details)
		assert.False(t, conflict.Resolved, "new conflicts start unresolved")
		assert.False(t, conflict.CreatedAt.IsZero())
	}

	// The whole run is written at one instant.
	assert.True(t, stored[0].CreatedAt.Equal(stored[2].CreatedAt))
}

func TestConflictRepository_ReplaceForProject_ReplacesPreviousRun(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	ctx := context.Background()

	project := testhelpers.CreateProject(t, engineDB.DB, "Conflict Replace")
	repo := NewConflictRepository(engineDB.DB)

	first := []*models.Conflict{
		conflictFixture(models.ConflictTypeMaterial, models.SeverityCritical, `line: 4"-PW-100`),
		conflictFixture(models.ConflictTypeSize, models.SeverityMedium, `line: 2"-CW-200`),
	}
	require.NoError(t, repo.ReplaceForProject(ctx, project.ID, first))

	second := []*models.Conflict{
		conflictFixture(models.ConflictTypeTag, models.SeverityLow, "equipment: P-1001"),
	}
	require.NoError(t, repo.ReplaceForProject(ctx, project.ID, second))

	stored, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "equipment: P-1001", stored[0].Item)
}

func TestConflictRepository_ReplaceForProject_EmptySetClearsStored(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	ctx := context.Background()

	project := testhelpers.CreateProject(t, engineDB.DB, "Conflict Clear")
	repo := NewConflictRepository(engineDB.DB)

	seeded := []*models.Conflict{
		conflictFixture(models.ConflictTypeMaterial, models.SeverityCritical, `line: 4"-PW-100`),
	}
	require.NoError(t, repo.ReplaceForProject(ctx, project.ID, seeded))

	require.NoError(t, repo.ReplaceForProject(ctx, project.ID, nil))

	stored, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

// TestConflictRepository_ReplaceForProject_FailurePreservesPrior verifies the
// delete and insert share one transaction: a failed run must not destroy the
// previous run's conflicts.
func TestConflictRepository_ReplaceForProject_FailurePreservesPrior(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	ctx := context.Background()

	project := testhelpers.CreateProject(t, engineDB.DB, "Conflict Rollback")
	repo := NewConflictRepository(engineDB.DB)

	prior := []*models.Conflict{
		conflictFixture(models.ConflictTypeMaterial, models.SeverityCritical, `line: 4"-PW-100`),
		conflictFixture(models.ConflictTypeSize, models.SeverityMedium, `line: 2"-CW-200`),
	}
	require.NoError(t, repo.ReplaceForProject(ctx, project.ID, prior))

	// The middle row violates the severity CHECK constraint.
	bad := []*models.Conflict{
		conflictFixture(models.ConflictTypeTag, models.SeverityHigh, "equipment: P-1001"),
		conflictFixture(models.ConflictTypeTag, models.Severity("catastrophic"), "equipment: P-1002"),
		conflictFixture(models.ConflictTypeTag, models.SeverityLow, "equipment: P-1003"),
	}
	err := repo.ReplaceForProject(ctx, project.ID, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert conflict")

	stored, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2, "prior conflicts should survive the failed replace")
	assert.Equal(t, `line: 4"-PW-100`, stored[0].Item)
	assert.Equal(t, `line: 2"-CW-200`, stored[1].Item)
}

func TestConflictRepository_ListByProject_PreservesInsertionOrder(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	ctx := context.Background()

	project := testhelpers.CreateProject(t, engineDB.DB, "Conflict Order")
	repo := NewConflictRepository(engineDB.DB)

	// Severities deliberately out of priority order; storage must keep the
	// insertion order, not re-sort.
	severities := []models.Severity{
		models.SeverityLow,
		models.SeverityCritical,
		models.SeverityMedium,
		models.SeverityHigh,
		models.SeverityCritical,
		models.SeverityLow,
	}
	conflicts := make([]*models.Conflict, len(severities))
	for i, severity := range severities {
		conflicts[i] = conflictFixture(models.ConflictTypeMaterial, severity, fmt.Sprintf("line: L-%03d", i))
	}
	require.NoError(t, repo.ReplaceForProject(ctx, project.ID, conflicts))

	stored, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, stored, len(severities))

	for i, conflict := range stored {
		assert.Equal(t, fmt.Sprintf("line: L-%03d", i), conflict.Item)
		assert.Equal(t, severities[i], conflict.Severity)
	}
}

func TestConflictRepository_CountBySeverity(t *testing.T) {
	engineDB := testhelpers.GetEngineDB(t)
	ctx := context.Background()

	project := testhelpers.CreateProject(t, engineDB.DB, "Conflict Severity Count")
	repo := NewConflictRepository(engineDB.DB)

	conflicts := []*models.Conflict{
		conflictFixture(models.ConflictTypeMaterial, models.SeverityCritical, "line: A"),
		conflictFixture(models.ConflictTypeMaterial, models.SeverityCritical, "line: B"),
		conflictFixture(models.ConflictTypeSize, models.SeverityMedium, "line: C"),
		conflictFixture(models.ConflictTypeTag, models.SeverityLow, "equipment: D"),
	}
	require.NoError(t, repo.ReplaceForProject(ctx, project.ID, conflicts))

	counts, err := repo.CountBySeverity(ctx, project.ID)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"critical": 2, "medium": 1, "low": 1}, counts)
}
