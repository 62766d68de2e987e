package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/planroom-inc/planroom-engine/pkg/models"
	"github.com/planroom-inc/planroom-engine/pkg/repositories"
)

// DatasetStats summarizes the current fact set a run examined. Gathered
// for reporting only; checks re-read the facts they need.
type DatasetStats struct {
	SheetCount      int      `json:"sheet_count"`
	Disciplines     []string `json:"disciplines"`
	LineCount       int      `json:"line_count"`
	EquipmentCount  int      `json:"equipment_count"`
	InstrumentCount int      `json:"instrument_count"`
}

// RunResult carries everything a caller needs after a cross-check run:
// the resolved project, the dataset statistics, and the report built from
// the stored conflict set.
type RunResult struct {
	Project *models.Project `json:"project"`
	Stats   DatasetStats    `json:"stats"`
	Report  *Report         `json:"report"`
}

// StatsResult is the read-only dataset view served by the stats command.
type StatsResult struct {
	Project         *models.Project `json:"project"`
	Stats           DatasetStats    `json:"stats"`
	StoredConflicts map[string]int  `json:"stored_conflicts"`
}

// CrossCheckService runs the conflict detection pipeline: resolve the
// project, read current facts, evaluate every check, atomically replace
// the project's stored conflicts, and report from what was stored.
type CrossCheckService interface {
	// Run executes a full cross-check for the project with the given
	// human-facing project number. The returned report reflects the
	// conflict rows read back after the transactional replace, never an
	// unsaved in-memory set.
	Run(ctx context.Context, projectNumber string) (*RunResult, error)

	// Stats gathers dataset statistics and stored conflict counts
	// without running checks or writing anything.
	Stats(ctx context.Context, projectNumber string) (*StatsResult, error)
}

type crossCheckService struct {
	projects    repositories.ProjectRepository
	sheets      repositories.SheetRepository
	lines       repositories.LineRepository
	equipment   repositories.EquipmentRepository
	instruments repositories.InstrumentRepository
	conflicts   repositories.ConflictRepository
	checks      []Check
	logger      *zap.Logger
}

// NewCrossCheckService creates a CrossCheckService with the standard
// check set: material, size, then tag. Check order is part of the stored
// ordering contract, so new checks append rather than reorder.
func NewCrossCheckService(
	projects repositories.ProjectRepository,
	sheets repositories.SheetRepository,
	lines repositories.LineRepository,
	equipment repositories.EquipmentRepository,
	instruments repositories.InstrumentRepository,
	conflicts repositories.ConflictRepository,
	logger *zap.Logger,
) CrossCheckService {
	return &crossCheckService{
		projects:    projects,
		sheets:      sheets,
		lines:       lines,
		equipment:   equipment,
		instruments: instruments,
		conflicts:   conflicts,
		checks: []Check{
			NewMaterialCheck(lines),
			NewSizeCheck(lines),
			NewTagCheck(equipment),
		},
		logger: logger.Named("crosscheck"),
	}
}

var _ CrossCheckService = (*crossCheckService)(nil)

func (s *crossCheckService) Run(ctx context.Context, projectNumber string) (*RunResult, error) {
	project, err := s.projects.GetByNumber(ctx, projectNumber)
	if err != nil {
		return nil, fmt.Errorf("resolve project %q: %w", projectNumber, err)
	}

	stats, err := s.gatherStats(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Starting cross-check run",
		zap.String("project_number", project.ProjectNumber),
		zap.Int("sheets", stats.SheetCount),
		zap.Strings("disciplines", stats.Disciplines),
		zap.Int("lines", stats.LineCount),
		zap.Int("equipment", stats.EquipmentCount),
		zap.Int("instruments", stats.InstrumentCount),
	)

	candidates, err := s.runChecks(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	if err := s.conflicts.ReplaceForProject(ctx, project.ID, candidates); err != nil {
		return nil, fmt.Errorf("replace conflicts: %w", err)
	}

	// Report from the rows that were actually stored, not the in-memory
	// candidates, so persistence and reporting can never diverge.
	stored, err := s.conflicts.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("read back conflicts: %w", err)
	}

	report := Summarize(stored)

	s.logger.Info("Cross-check run complete",
		zap.String("project_number", project.ProjectNumber),
		zap.Int("total_conflicts", report.TotalConflicts),
		zap.Any("by_severity", report.BySeverity),
	)

	return &RunResult{Project: project, Stats: stats, Report: report}, nil
}

func (s *crossCheckService) Stats(ctx context.Context, projectNumber string) (*StatsResult, error) {
	project, err := s.projects.GetByNumber(ctx, projectNumber)
	if err != nil {
		return nil, fmt.Errorf("resolve project %q: %w", projectNumber, err)
	}

	stats, err := s.gatherStats(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	stored, err := s.conflicts.CountBySeverity(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("count stored conflicts: %w", err)
	}

	return &StatsResult{Project: project, Stats: stats, StoredConflicts: stored}, nil
}

// runChecks executes every check concurrently and joins their results in
// registration order, so the concatenated conflict list is deterministic
// regardless of completion order. Any check error aborts the run before
// anything is written.
func (s *crossCheckService) runChecks(ctx context.Context, projectID uuid.UUID) ([]*models.Conflict, error) {
	results := make([][]*models.Conflict, len(s.checks))
	errs := make([]error, len(s.checks))

	var wg sync.WaitGroup
	for i, check := range s.checks {
		wg.Add(1)
		go func(i int, check Check) {
			defer wg.Done()
			results[i], errs[i] = check.Run(ctx, projectID)
		}(i, check)
	}
	wg.Wait()

	var conflicts []*models.Conflict
	for i, check := range s.checks {
		if errs[i] != nil {
			return nil, fmt.Errorf("%s check: %w", check.Name(), errs[i])
		}
		s.logger.Debug("Check completed",
			zap.String("check", check.Name()),
			zap.Int("candidates", len(results[i])))
		conflicts = append(conflicts, results[i]...)
	}

	return conflicts, nil
}

func (s *crossCheckService) gatherStats(ctx context.Context, projectID uuid.UUID) (DatasetStats, error) {
	byDiscipline, err := s.sheets.CountCurrentByDiscipline(ctx, projectID)
	if err != nil {
		return DatasetStats{}, fmt.Errorf("count sheets: %w", err)
	}

	var stats DatasetStats
	for discipline, count := range byDiscipline {
		stats.SheetCount += count
		stats.Disciplines = append(stats.Disciplines, discipline)
	}
	sort.Strings(stats.Disciplines)

	if stats.LineCount, err = s.lines.CountCurrentByProject(ctx, projectID); err != nil {
		return DatasetStats{}, fmt.Errorf("count lines: %w", err)
	}
	if stats.EquipmentCount, err = s.equipment.CountCurrentByProject(ctx, projectID); err != nil {
		return DatasetStats{}, fmt.Errorf("count equipment: %w", err)
	}
	if stats.InstrumentCount, err = s.instruments.CountCurrentByProject(ctx, projectID); err != nil {
		return DatasetStats{}, fmt.Errorf("count instruments: %w", err)
	}

	return stats, nil
}
