package coord

import (
	"errors"
	"math"
	"testing"

	"github.com/triadhq/triad/pkg/models"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestEstimateComplexity_Reference(t *testing.T) {
	// distinct_types=3 (button appears twice), element_count=4, depth=5.
	ui := models.UIState{
		HierarchyDepth: 5,
		Elements: []models.UIElement{
			{Type: "list"}, {Type: "button"}, {Type: "dialog"}, {Type: "button"},
		},
	}

	profile, err := EstimateComplexity(ui)
	if err != nil {
		t.Fatalf("EstimateComplexity failed: %v", err)
	}

	if !almostEqual(profile.Planning, math.Pow(5, 0.5)*math.Pow(3, 0.3), 1e-12) {
		t.Errorf("Planning = %v, want 5^0.5 * 3^0.3", profile.Planning)
	}
	if !almostEqual(profile.Planning, 3.108, 1e-3) {
		t.Errorf("Planning = %v, want ~3.108", profile.Planning)
	}
	if !almostEqual(profile.Execution, 2.403, 1e-3) {
		t.Errorf("Execution = %v, want ~2.403", profile.Execution)
	}
	if !almostEqual(profile.Verification, 2.272, 1e-3) {
		t.Errorf("Verification = %v, want ~2.272", profile.Verification)
	}
	if profile.Mean() <= DefaultHighComplexityThreshold {
		t.Errorf("Mean() = %v, want > %v", profile.Mean(), DefaultHighComplexityThreshold)
	}
}

func TestEstimateComplexity_EmptyUI(t *testing.T) {
	profile, err := EstimateComplexity(models.UIState{HierarchyDepth: 1})
	if err != nil {
		t.Fatalf("EstimateComplexity failed: %v", err)
	}
	if profile.Planning != 0 || profile.Execution != 0 || profile.Verification != 0 {
		t.Errorf("empty UI should give all-zero profile, got %+v", profile)
	}
}

func TestEstimateComplexity_DepthDefaultsToOne(t *testing.T) {
	withZero, err := EstimateComplexity(models.UIState{Elements: []models.UIElement{{Type: "button"}}})
	if err != nil {
		t.Fatalf("EstimateComplexity failed: %v", err)
	}
	withOne, err := EstimateComplexity(models.UIState{HierarchyDepth: 1, Elements: []models.UIElement{{Type: "button"}}})
	if err != nil {
		t.Fatalf("EstimateComplexity failed: %v", err)
	}
	if withZero != withOne {
		t.Errorf("unreported depth should behave like depth 1: %+v vs %+v", withZero, withOne)
	}
}

func TestEstimateComplexity_NegativeDepth(t *testing.T) {
	_, err := EstimateComplexity(models.UIState{HierarchyDepth: -2})
	if err == nil {
		t.Fatal("expected error for negative depth")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestEstimateComplexity_UnlabeledElementsCountOnce(t *testing.T) {
	// Three unlabeled elements share the "unknown" type, so
	// distinct_types=1 while element_count=3.
	ui := models.UIState{
		HierarchyDepth: 2,
		Elements:       []models.UIElement{{}, {}, {}},
	}
	profile, err := EstimateComplexity(ui)
	if err != nil {
		t.Fatalf("EstimateComplexity failed: %v", err)
	}
	wantPlanning := math.Pow(2, 0.5) // 1^0.3 == 1
	if !almostEqual(profile.Planning, wantPlanning, 1e-12) {
		t.Errorf("Planning = %v, want %v", profile.Planning, wantPlanning)
	}
	wantVerification := math.Pow(2, 0.1) // 1^0.6 == 1
	if !almostEqual(profile.Verification, wantVerification, 1e-12) {
		t.Errorf("Verification = %v, want %v", profile.Verification, wantVerification)
	}
}
