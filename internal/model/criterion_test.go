package model

import "testing"

// TestCriterionString tests criterion identifiers and display names.
func TestCriterionString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		criterion Criterion
		id        string
		display   string
	}{
		{CriterionReadability, "readability", "Readability"},
		{CriterionStructure, "structure", "Structure"},
		{CriterionCompleteness, "completeness", "Completeness"},
		{CriterionStyle, "style", "Style"},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			t.Parallel()
			if got := tc.criterion.String(); got != tc.id {
				t.Errorf("got %q, expected %q", got, tc.id)
			}
			if got := tc.criterion.DisplayName(); got != tc.display {
				t.Errorf("got %q, expected %q", got, tc.display)
			}
			parsed, ok := ParseCriterion(tc.id)
			if !ok || parsed != tc.criterion {
				t.Errorf("ParseCriterion(%q) = %v, %v", tc.id, parsed, ok)
			}
		})
	}

	t.Run("unknown identifier is rejected", func(t *testing.T) {
		t.Parallel()
		if _, ok := ParseCriterion("tone"); ok {
			t.Error("expected unknown criterion to be rejected")
		}
	})
}
