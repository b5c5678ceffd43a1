package engine

// Hand placement tuning. The tolerance radius scales with the detected
// chest width so accuracy adapts to the recipient's body size instead of a
// fixed pixel distance.
const (
	// ToleranceFactor is the fraction of chest width within which hand
	// placement earns a nonzero accuracy.
	ToleranceFactor = 0.6
	// HandSpreadFactor is the fraction of chest width the two hands must
	// stay within of each other for stacked-hand technique.
	HandSpreadFactor = 0.3

	// Accuracy cutoffs for the single-hand tiers.
	excellentAccuracy = 80
	goodAccuracy      = 50
)

// PlacementTier classifies the overhead hand-placement evaluation.
type PlacementTier int

const (
	// PlacementNoPerson means no chest reference was detected this frame.
	PlacementNoPerson PlacementTier = iota
	// PlacementNoHands means a chest was detected but no hands.
	PlacementNoHands
	// PlacementHandsApart means both hands are visible but too far apart
	// to be stacked on the chest center.
	PlacementHandsApart
	// PlacementBothHands means both hands are stacked near the chest center.
	PlacementBothHands
	// PlacementExcellent is a single hand with accuracy above 80.
	PlacementExcellent
	// PlacementGood is a single hand with accuracy above 50.
	PlacementGood
	// PlacementAdjust is a single hand with accuracy of 50 or below.
	PlacementAdjust
)

// String returns a short identifier for the tier.
func (t PlacementTier) String() string {
	switch t {
	case PlacementNoPerson:
		return "no_person"
	case PlacementNoHands:
		return "no_hands"
	case PlacementHandsApart:
		return "hands_apart"
	case PlacementBothHands:
		return "both_hands"
	case PlacementExcellent:
		return "excellent"
	case PlacementGood:
		return "good"
	case PlacementAdjust:
		return "adjust"
	}
	return "unknown"
}

// PlacementResult is the outcome of one overhead evaluation.
type PlacementResult struct {
	Tier PlacementTier `json:"tier"`
	// Accuracy is the current positioning accuracy in [0,100]. When the
	// tier is PlacementNoPerson or PlacementNoHands this is the value
	// carried over from the last evaluated frame.
	Accuracy float64 `json:"accuracy"`
}

// PlacementEvaluator scores hand placement against the detected chest
// center from an overhead camera. Its only state is the last computed
// accuracy, retained across frames where nothing could be evaluated.
type PlacementEvaluator struct {
	accuracy float64
}

// NewPlacementEvaluator creates an evaluator with zero accuracy.
func NewPlacementEvaluator() *PlacementEvaluator {
	return &PlacementEvaluator{}
}

// Evaluate scores one frame. chest may be nil (no person detected) and
// hands may hold zero to two hand centers; absent detections select the
// corresponding tier and leave the stored accuracy unchanged. The first
// hand in input order is the primary hand.
func (e *PlacementEvaluator) Evaluate(chest *ChestReference, hands []Point2D) PlacementResult {
	if chest == nil || !chest.Valid() {
		return PlacementResult{Tier: PlacementNoPerson, Accuracy: e.accuracy}
	}

	hands = validPoints(hands)
	if len(hands) == 0 {
		return PlacementResult{Tier: PlacementNoHands, Accuracy: e.accuracy}
	}

	tolerance := chest.Width * ToleranceFactor
	primary := hands[0]
	distance := primary.DistanceTo(chest.Center)

	// Linear falloff: 100 at the chest center, 0 at or beyond the
	// tolerance radius.
	if distance <= tolerance {
		e.accuracy = (tolerance - distance) / tolerance * 100
		if e.accuracy < 0 {
			e.accuracy = 0
		}
	} else {
		e.accuracy = 0
	}

	if len(hands) == 2 {
		spread := hands[0].DistanceTo(hands[1])
		if spread < chest.Width*HandSpreadFactor {
			return PlacementResult{Tier: PlacementBothHands, Accuracy: e.accuracy}
		}
		// Technique, not position, is the defect here; no accuracy claim.
		return PlacementResult{Tier: PlacementHandsApart, Accuracy: e.accuracy}
	}

	tier := PlacementAdjust
	if e.accuracy > excellentAccuracy {
		tier = PlacementExcellent
	} else if e.accuracy > goodAccuracy {
		tier = PlacementGood
	}
	return PlacementResult{Tier: tier, Accuracy: e.accuracy}
}

// Accuracy returns the last computed positioning accuracy.
func (e *PlacementEvaluator) Accuracy() float64 {
	return e.accuracy
}

// Reset zeroes the stored accuracy.
func (e *PlacementEvaluator) Reset() {
	e.accuracy = 0
}

// validPoints filters out points with non-finite coordinates.
func validPoints(points []Point2D) []Point2D {
	valid := points[:0:0]
	for _, p := range points {
		if p.Valid() {
			valid = append(valid, p)
		}
	}
	return valid
}
