package models

import "testing"

func TestConflictType_Valid(t *testing.T) {
	tests := []struct {
		name  string
		value ConflictType
		want  bool
	}{
		{"material", ConflictTypeMaterial, true},
		{"size", ConflictTypeSize, true},
		{"tag", ConflictTypeTag, true},
		{"empty", ConflictType(""), false},
		{"lowercase material", ConflictType("material"), false},
		{"unknown", ConflictType("SERVICE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Valid(); got != tt.want {
				t.Errorf("ConflictType(%q).Valid() = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSeverity_Valid(t *testing.T) {
	tests := []struct {
		name  string
		value Severity
		want  bool
	}{
		{"critical", SeverityCritical, true},
		{"high", SeverityHigh, true},
		{"medium", SeverityMedium, true},
		{"low", SeverityLow, true},
		{"empty", Severity(""), false},
		{"uppercase", Severity("CRITICAL"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Valid(); got != tt.want {
				t.Errorf("Severity(%q).Valid() = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSeverityOrder_CoversAllSeverities(t *testing.T) {
	if len(SeverityOrder) != 4 {
		t.Fatalf("SeverityOrder has %d entries, want 4", len(SeverityOrder))
	}

	seen := make(map[Severity]bool)
	for _, s := range SeverityOrder {
		if !s.Valid() {
			t.Errorf("SeverityOrder contains invalid severity %q", s)
		}
		if seen[s] {
			t.Errorf("SeverityOrder contains duplicate severity %q", s)
		}
		seen[s] = true
	}

	if SeverityOrder[0] != SeverityCritical {
		t.Errorf("SeverityOrder[0] = %q, want %q", SeverityOrder[0], SeverityCritical)
	}
}
