package engine

import (
	"fmt"
	"strings"
)

// Message formatting is presentation policy kept downstream of the state
// machine: these functions read finished results and never feed back into
// the evaluators.

// Message renders the overhead placement result as coaching text.
func (r PlacementResult) Message() string {
	switch r.Tier {
	case PlacementNoPerson:
		return "No person detected - position CPR recipient in frame"
	case PlacementNoHands:
		return "Position hands over chest center for CPR"
	case PlacementBothHands:
		return fmt.Sprintf("Good! Both hands positioned (Accuracy: %.0f%%)", r.Accuracy)
	case PlacementHandsApart:
		return "Bring hands closer together on chest center"
	case PlacementExcellent:
		return fmt.Sprintf("Excellent positioning! (Accuracy: %.0f%%)", r.Accuracy)
	case PlacementGood:
		return fmt.Sprintf("Good - adjust toward center (Accuracy: %.0f%%)", r.Accuracy)
	case PlacementAdjust:
		return "Move hands to chest center"
	}
	return ""
}

// Message renders the side-view result as coaching text. Tracking frames
// compose rate feedback, then depth feedback, then the running count.
func (r SideViewResult) Message() string {
	switch r.Phase {
	case SideNoPerson:
		return "No person detected in side view"
	case SideNoHands:
		return "Position hands visible in side view"
	case SideBaselineSet:
		return "Baseline set - begin compressions"
	}

	var parts []string

	switch r.Rate {
	case RateNotStarted:
		parts = append(parts, "Start compressions")
	case RateTooSlow:
		parts = append(parts, fmt.Sprintf("Rate: %.0f/min - COMPRESS FASTER!", r.RatePerMin))
	case RateTooFast:
		parts = append(parts, fmt.Sprintf("Rate: %.0f/min - COMPRESS SLOWER!", r.RatePerMin))
	case RateGood:
		parts = append(parts, fmt.Sprintf("Rate: %.0f/min - GOOD!", r.RatePerMin))
	}

	switch r.Depth {
	case DepthTooShallow:
		parts = append(parts, "PRESS HARDER - increase depth")
	case DepthTooDeep:
		parts = append(parts, "PRESS SOFTER - too deep")
	case DepthGood:
		parts = append(parts, "Good compression depth")
	}

	parts = append(parts, fmt.Sprintf("Total compressions: %d", r.Count))

	return strings.Join(parts, " | ")
}
