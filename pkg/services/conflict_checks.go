package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/planroom-inc/planroom-engine/pkg/models"
	"github.com/planroom-inc/planroom-engine/pkg/repositories"
)

// Check reads one slice of the current fact set and returns candidate
// conflicts. Checks never write; the orchestrator owns aggregation and
// persistence.
type Check interface {
	// Name identifies the check in logs and error messages.
	Name() string

	// Run evaluates the check over a project's current facts.
	Run(ctx context.Context, projectID uuid.UUID) ([]*models.Conflict, error)
}

// factRef is how the pair helper sees a fact: the item kind and identity
// key it groups on, plus the provenance quoted in conflict details.
type factRef struct {
	kind       string
	key        string
	drawing    string
	discipline string
}

// pairConflicts groups facts by trimmed identity key and applies rule to
// every unordered pair within a group. Group order follows first key
// appearance and pair order follows input order, so the stable fact
// ordering from the repositories yields a stable conflict ordering. Facts
// with an empty key carry no identity and never participate.
func pairConflicts[T any](facts []T, ref func(T) factRef, rule func(a, b T) (Finding, bool)) []*models.Conflict {
	groups := make(map[string][]T)
	var keys []string
	for _, fact := range facts {
		key := strings.TrimSpace(ref(fact).key)
		if key == "" {
			continue
		}
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], fact)
	}

	var conflicts []*models.Conflict
	for _, key := range keys {
		group := groups[key]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				finding, ok := rule(group[i], group[j])
				if !ok {
					continue
				}

				a, b := ref(group[i]), ref(group[j])
				conflicts = append(conflicts, &models.Conflict{
					ConflictType: finding.Type,
					Severity:     finding.Severity,
					Item:         fmt.Sprintf("%s: %s", a.kind, key),
					Details: fmt.Sprintf(`"%s" (dwg %s, %s) vs "%s" (dwg %s, %s): %s`,
						finding.ValueA, a.drawing, a.discipline,
						finding.ValueB, b.drawing, b.discipline,
						finding.Rationale),
				})
			}
		}
	}

	return conflicts
}

func lineRef(l *models.Line) factRef {
	return factRef{kind: "line", key: l.LineNumber, drawing: l.DrawingNumber, discipline: l.Discipline}
}

func equipmentRef(e *models.Equipment) factRef {
	return factRef{kind: "equipment", key: e.Tag, drawing: e.DrawingNumber, discipline: e.Discipline}
}

// materialCheck compares materials of lines sharing a line number.
type materialCheck struct {
	lines repositories.LineRepository
}

// NewMaterialCheck creates the material conflict check.
func NewMaterialCheck(lines repositories.LineRepository) Check {
	return &materialCheck{lines: lines}
}

func (c *materialCheck) Name() string { return "material" }

func (c *materialCheck) Run(ctx context.Context, projectID uuid.UUID) ([]*models.Conflict, error) {
	lines, err := c.lines.ListCurrentByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	return pairConflicts(lines, lineRef, MaterialRule), nil
}

// sizeCheck compares nominal sizes of lines sharing a line number.
type sizeCheck struct {
	lines repositories.LineRepository
}

// NewSizeCheck creates the size conflict check.
func NewSizeCheck(lines repositories.LineRepository) Check {
	return &sizeCheck{lines: lines}
}

func (c *sizeCheck) Name() string { return "size" }

func (c *sizeCheck) Run(ctx context.Context, projectID uuid.UUID) ([]*models.Conflict, error) {
	lines, err := c.lines.ListCurrentByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	return pairConflicts(lines, lineRef, SizeRule), nil
}

// tagCheck compares type and description of equipment sharing a tag.
type tagCheck struct {
	equipment repositories.EquipmentRepository
}

// NewTagCheck creates the duplicate tag conflict check.
func NewTagCheck(equipment repositories.EquipmentRepository) Check {
	return &tagCheck{equipment: equipment}
}

func (c *tagCheck) Name() string { return "tag" }

func (c *tagCheck) Run(ctx context.Context, projectID uuid.UUID) ([]*models.Conflict, error) {
	equipment, err := c.equipment.ListCurrentByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return pairConflicts(equipment, equipmentRef, TagRule), nil
}
