package engine

import (
	"math"
	"testing"
)

func chest(cx, cy, width float64) *ChestReference {
	return &ChestReference{Center: Point2D{X: cx, Y: cy}, Width: width}
}

func TestPlacementEvaluator_AccuracyFalloff(t *testing.T) {
	// Accuracy is 100 at the chest center, falls off linearly and hits 0
	// exactly at the tolerance radius (0.6 * chest width).
	e := NewPlacementEvaluator()
	c := chest(320, 240, 200)
	tolerance := 200 * ToleranceFactor

	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"at center", 0, 100},
		{"quarter tolerance", tolerance / 4, 75},
		{"half tolerance", tolerance / 2, 50},
		{"at tolerance radius", tolerance, 0},
		{"beyond tolerance", tolerance + 1, 0},
		{"far beyond tolerance", tolerance * 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := Point2D{X: 320 + tt.distance, Y: 240}
			result := e.Evaluate(c, []Point2D{hand})
			if math.Abs(result.Accuracy-tt.want) > 1e-9 {
				t.Errorf("accuracy at distance %.1f = %f, want %f", tt.distance, result.Accuracy, tt.want)
			}
		})
	}
}

func TestPlacementEvaluator_AccuracyMonotonic(t *testing.T) {
	e := NewPlacementEvaluator()
	c := chest(0, 0, 100)

	prev := math.Inf(1)
	for d := 0.0; d <= 60; d += 5 {
		result := e.Evaluate(c, []Point2D{{X: d, Y: 0}})
		if result.Accuracy > prev {
			t.Fatalf("accuracy increased from %f to %f at distance %f", prev, result.Accuracy, d)
		}
		prev = result.Accuracy
	}
}

func TestPlacementEvaluator_SingleHandTiers(t *testing.T) {
	c := chest(0, 0, 100) // tolerance radius 60

	tests := []struct {
		name     string
		distance float64
		want     PlacementTier
	}{
		{"centered is excellent", 5, PlacementExcellent},       // accuracy ~91.7
		{"offset is good", 20, PlacementGood},                  // accuracy ~66.7
		{"far offset needs centering", 40, PlacementAdjust},    // accuracy ~33.3
		{"outside tolerance needs centering", 80, PlacementAdjust}, // accuracy 0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewPlacementEvaluator()
			result := e.Evaluate(c, []Point2D{{X: tt.distance, Y: 0}})
			if result.Tier != tt.want {
				t.Errorf("tier at distance %.0f = %s, want %s", tt.distance, result.Tier, tt.want)
			}
		})
	}
}

func TestPlacementEvaluator_TwoHands(t *testing.T) {
	c := chest(0, 0, 100)

	t.Run("stacked hands", func(t *testing.T) {
		e := NewPlacementEvaluator()
		// Hands 20px apart, below the 30px spread limit (0.3 * width).
		result := e.Evaluate(c, []Point2D{{X: 0, Y: 0}, {X: 20, Y: 0}})
		if result.Tier != PlacementBothHands {
			t.Errorf("tier = %s, want %s", result.Tier, PlacementBothHands)
		}
		if result.Accuracy != 100 {
			t.Errorf("accuracy = %f, want 100 (primary hand at center)", result.Accuracy)
		}
	})

	t.Run("hands too far apart", func(t *testing.T) {
		e := NewPlacementEvaluator()
		result := e.Evaluate(c, []Point2D{{X: 0, Y: 0}, {X: 50, Y: 0}})
		if result.Tier != PlacementHandsApart {
			t.Errorf("tier = %s, want %s", result.Tier, PlacementHandsApart)
		}
	})

	t.Run("first hand is primary", func(t *testing.T) {
		e := NewPlacementEvaluator()
		// Second hand sits on the center but the first drives accuracy.
		result := e.Evaluate(c, []Point2D{{X: 30, Y: 0}, {X: 0, Y: 0}})
		want := (60.0 - 30.0) / 60.0 * 100
		if math.Abs(result.Accuracy-want) > 1e-9 {
			t.Errorf("accuracy = %f, want %f from the first hand", result.Accuracy, want)
		}
	})
}

func TestPlacementEvaluator_AbsentInputs(t *testing.T) {
	e := NewPlacementEvaluator()
	c := chest(0, 0, 100)

	// Establish an accuracy first.
	e.Evaluate(c, []Point2D{{X: 30, Y: 0}})
	before := e.Accuracy()
	if before <= 0 {
		t.Fatalf("setup: expected nonzero accuracy, got %f", before)
	}

	t.Run("no person keeps accuracy", func(t *testing.T) {
		result := e.Evaluate(nil, []Point2D{{X: 0, Y: 0}})
		if result.Tier != PlacementNoPerson {
			t.Errorf("tier = %s, want %s", result.Tier, PlacementNoPerson)
		}
		if result.Accuracy != before {
			t.Errorf("accuracy changed from %f to %f", before, result.Accuracy)
		}
	})

	t.Run("no hands keeps accuracy", func(t *testing.T) {
		result := e.Evaluate(c, nil)
		if result.Tier != PlacementNoHands {
			t.Errorf("tier = %s, want %s", result.Tier, PlacementNoHands)
		}
		if result.Accuracy != before {
			t.Errorf("accuracy changed from %f to %f", before, result.Accuracy)
		}
	})
}

func TestPlacementEvaluator_InvalidInputsTreatedAsAbsent(t *testing.T) {
	e := NewPlacementEvaluator()

	t.Run("zero width chest", func(t *testing.T) {
		result := e.Evaluate(chest(0, 0, 0), []Point2D{{X: 0, Y: 0}})
		if result.Tier != PlacementNoPerson {
			t.Errorf("tier = %s, want %s", result.Tier, PlacementNoPerson)
		}
	})

	t.Run("negative width chest", func(t *testing.T) {
		result := e.Evaluate(chest(0, 0, -5), []Point2D{{X: 0, Y: 0}})
		if result.Tier != PlacementNoPerson {
			t.Errorf("tier = %s, want %s", result.Tier, PlacementNoPerson)
		}
	})

	t.Run("non-finite chest center", func(t *testing.T) {
		result := e.Evaluate(chest(math.NaN(), 0, 100), []Point2D{{X: 0, Y: 0}})
		if result.Tier != PlacementNoPerson {
			t.Errorf("tier = %s, want %s", result.Tier, PlacementNoPerson)
		}
	})

	t.Run("non-finite hand dropped", func(t *testing.T) {
		result := e.Evaluate(chest(0, 0, 100), []Point2D{{X: math.Inf(1), Y: 0}})
		if result.Tier != PlacementNoHands {
			t.Errorf("tier = %s, want %s", result.Tier, PlacementNoHands)
		}
	})
}
