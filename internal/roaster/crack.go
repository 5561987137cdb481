package roaster

import (
	"coffee_roaster"
)

// CrackEvent identifies which crack latched during an evaluation.
type CrackEvent int

const (
	FirstCrack CrackEvent = iota
	SecondCrack
)

// Fixed marker label/color pairs used when a crack latches.
const (
	firstCrackLabel  = "First Crack"
	firstCrackColor  = "#FF5733"
	firstCrackNotes  = "First crack detected"
	secondCrackLabel = "Second Crack"
	secondCrackColor = "#800080"
	secondCrackNotes = "Second crack detected"
)

// CrackDetector converts instantaneous temperature into one-time
// latched events. It holds no state of its own; the latch lives in the
// session's CrackStatus.
type CrackDetector struct{}

// Evaluate latches first/second crack when temp enters the matching
// band and the latch is not yet set. Both checks run on every call,
// independent of each other and of order; a latch is never cleared
// here, no matter how temperature moves afterwards.
func (CrackDetector) Evaluate(temp, elapsed float64, status *coffee_roaster.CrackStatus) []CrackEvent {
	var events []CrackEvent

	if !status.First && InFirstCrackRange(temp) {
		status.First = true
		t := elapsed
		status.FirstTime = &t
		events = append(events, FirstCrack)
	}

	if !status.Second && InSecondCrackRange(temp) {
		status.Second = true
		t := elapsed
		status.SecondTime = &t
		events = append(events, SecondCrack)
	}

	return events
}
