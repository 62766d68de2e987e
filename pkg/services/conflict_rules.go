package services

import (
	"fmt"
	"strings"

	"github.com/planroom-inc/planroom-engine/pkg/models"
	"github.com/planroom-inc/planroom-engine/pkg/pipesize"
)

// Finding is the classified result of comparing one pair of facts that
// share an identity key: what kind of conflict it is, how severe, why, and
// the two disagreeing values as transcribed.
type Finding struct {
	Type      models.ConflictType
	Severity  models.Severity
	Rationale string
	ValueA    string
	ValueB    string
}

// Severity classification is a pure function of the two raw values (plus
// their ordinal distance for sizes). Rules never touch the database and
// must stay deterministic; the orchestrator relies on that for idempotent
// runs.

// MaterialRule flags lines sharing a line number whose materials disagree.
// A carbon-steel marker on one side and a stainless marker on the other is
// a galvanic corrosion hazard and escalates to critical; any other textual
// disagreement is a medium specification mismatch. Values are compared
// after trimming and case folding, and a pair with either material blank
// is not comparable.
func MaterialRule(a, b *models.Line) (Finding, bool) {
	ma, mb := strings.TrimSpace(a.Material), strings.TrimSpace(b.Material)
	if ma == "" || mb == "" || strings.EqualFold(ma, mb) {
		return Finding{}, false
	}

	finding := Finding{
		Type:      models.ConflictTypeMaterial,
		Severity:  models.SeverityMedium,
		Rationale: "material specification mismatch",
		ValueA:    a.Material,
		ValueB:    b.Material,
	}
	if (hasCarbonMarker(ma) && hasStainlessMarker(mb)) || (hasStainlessMarker(ma) && hasCarbonMarker(mb)) {
		finding.Severity = models.SeverityCritical
		finding.Rationale = "galvanic corrosion risk"
	}

	return finding, true
}

// SizeRule flags lines sharing a line number whose nominal sizes disagree.
// When both sizes parse, the distance in nominal size steps decides the
// severity: more than two steps apart is critical, two or fewer is a
// medium finding since adjacent sizes are often an intentional reducer.
// When either side fails to parse the engine cannot prove magnitude, so
// the finding stays medium.
func SizeRule(a, b *models.Line) (Finding, bool) {
	sa, sb := strings.TrimSpace(a.Size), strings.TrimSpace(b.Size)
	if sa == "" || sb == "" || strings.EqualFold(sa, sb) {
		return Finding{}, false
	}

	finding := Finding{
		Type:   models.ConflictTypeSize,
		ValueA: a.Size,
		ValueB: b.Size,
	}

	steps, ok := pipesize.Difference(sa, sb)
	switch {
	case !ok:
		finding.Severity = models.SeverityMedium
		finding.Rationale = "size specification mismatch"
	case steps > 2:
		finding.Severity = models.SeverityCritical
		finding.Rationale = fmt.Sprintf("major size discrepancy (%d sizes apart)", steps)
	default:
		finding.Severity = models.SeverityMedium
		finding.Rationale = "size difference - may be intentional reducer"
	}

	return finding, true
}

// TagRule flags equipment sharing a tag. Differing equipment types are a
// high-severity mismatch; when the types agree (or either is blank), a
// description disagreement is reported at low severity. Both comparisons
// require non-empty values on both sides.
func TagRule(a, b *models.Equipment) (Finding, bool) {
	ta, tb := strings.TrimSpace(a.EquipmentType), strings.TrimSpace(b.EquipmentType)
	if ta != "" && tb != "" && !strings.EqualFold(ta, tb) {
		return Finding{
			Type:      models.ConflictTypeTag,
			Severity:  models.SeverityHigh,
			Rationale: "equipment type mismatch",
			ValueA:    a.EquipmentType,
			ValueB:    b.EquipmentType,
		}, true
	}

	da, db := strings.TrimSpace(a.Description), strings.TrimSpace(b.Description)
	if da != "" && db != "" && !strings.EqualFold(da, db) {
		return Finding{
			Type:      models.ConflictTypeTag,
			Severity:  models.SeverityLow,
			Rationale: "description mismatch",
			ValueA:    a.Description,
			ValueB:    b.Description,
		}, true
	}

	return Finding{}, false
}

// hasCarbonMarker reports whether a material token names carbon steel.
func hasCarbonMarker(material string) bool {
	upper := strings.ToUpper(material)
	return strings.Contains(upper, "CS") || strings.Contains(upper, "CARBON")
}

// hasStainlessMarker reports whether a material token names stainless steel.
func hasStainlessMarker(material string) bool {
	upper := strings.ToUpper(material)
	return strings.Contains(upper, "SS") || strings.Contains(upper, "STAINLESS")
}
