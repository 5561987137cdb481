package roaster

import (
	"testing"

	"coffee_roaster"
)

func TestCrackDetector_LatchesOncePerBand(t *testing.T) {
	var (
		det    CrackDetector
		status coffee_roaster.CrackStatus
	)

	if events := det.Evaluate(300, 10, &status); len(events) != 0 {
		t.Fatalf("unexpected events below both bands: %v", events)
	}

	events := det.Evaluate(370, 20, &status)
	if len(events) != 1 || events[0] != FirstCrack {
		t.Fatalf("events = %v, want [FirstCrack]", events)
	}
	if !status.First || status.FirstTime == nil || *status.FirstTime != 20 {
		t.Fatalf("first crack not latched at elapsed 20: %+v", status)
	}

	// staying inside the band must not fire again
	if events := det.Evaluate(372, 21, &status); len(events) != 0 {
		t.Fatalf("re-entry fired duplicate events: %v", events)
	}
	if *status.FirstTime != 20 {
		t.Fatalf("first crack time changed to %.1f", *status.FirstTime)
	}
}

func TestCrackDetector_LatchNeverClears(t *testing.T) {
	var (
		det    CrackDetector
		status coffee_roaster.CrackStatus
	)

	det.Evaluate(370, 20, &status)
	// drop way below the band, then climb back through it
	det.Evaluate(100, 30, &status)
	det.Evaluate(380, 40, &status)

	if !status.First {
		t.Fatalf("latch cleared after temperature dropped")
	}
	if *status.FirstTime != 20 {
		t.Fatalf("latch time rewritten: got %.1f, want 20", *status.FirstTime)
	}
}

func TestCrackDetector_BandsAreIndependent(t *testing.T) {
	var (
		det    CrackDetector
		status coffee_roaster.CrackStatus
	)

	// a jump straight into the second band latches second without first
	events := det.Evaluate(440, 50, &status)
	if len(events) != 1 || events[0] != SecondCrack {
		t.Fatalf("events = %v, want [SecondCrack]", events)
	}
	if status.First {
		t.Fatalf("first crack latched without entering its band")
	}
	if !status.Second || status.SecondTime == nil || *status.SecondTime != 50 {
		t.Fatalf("second crack not latched: %+v", status)
	}

	// first can still latch afterwards
	events = det.Evaluate(370, 60, &status)
	if len(events) != 1 || events[0] != FirstCrack {
		t.Fatalf("events = %v, want [FirstCrack]", events)
	}
}

func TestCrackDetector_GapBetweenBandsIsQuiet(t *testing.T) {
	var (
		det    CrackDetector
		status coffee_roaster.CrackStatus
	)
	for _, temp := range []float64{386, 400, 434.5} {
		if events := det.Evaluate(temp, 5, &status); len(events) != 0 {
			t.Fatalf("Evaluate(%.1f) fired %v in the inter-band gap", temp, events)
		}
	}
}
