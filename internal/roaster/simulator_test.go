package roaster

import (
	"testing"
	"time"
)

func zeroJitter() float64 { return 0 }

func newTestSimulator() *Simulator {
	return NewSimulator(SimulatorConfig{Jitter: zeroJitter})
}

func TestSimulator_StartsAndResetsToAmbient(t *testing.T) {
	sim := newTestSimulator()
	if got := sim.Current(); got != DefaultAmbient {
		t.Fatalf("initial temperature = %.2f, want ambient %.2f", got, DefaultAmbient)
	}

	now := time.Now()
	sim.Tick(10, now, true)
	sim.Tick(10, now.Add(time.Second), true)
	if sim.Current() == DefaultAmbient {
		t.Fatalf("expected temperature to rise under heat")
	}

	sim.Reset()
	if got := sim.Current(); got != DefaultAmbient {
		t.Fatalf("after reset = %.2f, want ambient %.2f", got, DefaultAmbient)
	}
}

func TestSimulator_RateLimitsUpdates(t *testing.T) {
	sim := newTestSimulator()
	now := time.Now()

	first := sim.Tick(10, now, false)
	// 50ms later is inside the 200ms interval: value must not move
	second := sim.Tick(10, now.Add(50*time.Millisecond), false)
	if first != second {
		t.Fatalf("rate-limited tick changed value: %.4f -> %.4f", first, second)
	}

	third := sim.Tick(10, now.Add(50*time.Millisecond), true)
	if third == second {
		t.Fatalf("forced tick should bypass the rate limit")
	}
}

func TestSimulator_ClampsToBounds(t *testing.T) {
	t.Run("never below ambient", func(t *testing.T) {
		sim := newTestSimulator()
		now := time.Now()
		for i := 0; i < 100; i++ {
			now = now.Add(time.Second)
			if got := sim.Tick(0, now, true); got < DefaultAmbient {
				t.Fatalf("tick %d: %.2f below ambient", i, got)
			}
		}
	})

	t.Run("never above max for arbitrarily long stalls", func(t *testing.T) {
		sim := newTestSimulator()
		now := time.Now()
		for i := 0; i < 5000; i++ {
			// hour-long gaps exercise the delta-time cap
			now = now.Add(time.Hour)
			if got := sim.Tick(10, now, true); got > DefaultMaxTemp {
				t.Fatalf("tick %d: %.2f above max %.2f", i, got, DefaultMaxTemp)
			}
		}
	})
}

func TestSimulator_DeterministicWithoutJitter(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)

	run := func() []float64 {
		sim := newTestSimulator()
		var out []float64
		for i := 1; i <= 50; i++ {
			out = append(out, sim.Tick(7, base.Add(time.Duration(i)*200*time.Millisecond), false))
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d diverged: %.6f vs %.6f", i, a[i], b[i])
		}
	}
}

func TestSimulator_SetCurrentOverrides(t *testing.T) {
	sim := newTestSimulator()
	sim.SetCurrent(312.5)
	if got := sim.Current(); got != 312.5 {
		t.Fatalf("got %.2f, want 312.5", got)
	}
}

func TestStage_BreakpointsAndMonotonicity(t *testing.T) {
	cases := []struct {
		temp float64
		want RoastStage
	}{
		{24, StageGreen},
		{199.9, StageGreen},
		{200, StageYellow},
		{299.9, StageYellow},
		{300, StageLightBrown},
		{350, StageMediumBrown},
		{400, StageDarkBrown},
		{435, StageNearlyBlack},
		{550, StageNearlyBlack},
	}
	for _, tc := range cases {
		if got := Stage(tc.temp); got != tc.want {
			t.Errorf("Stage(%.1f) = %q, want %q", tc.temp, got, tc.want)
		}
	}

	// severity is non-decreasing in temperature
	rank := map[RoastStage]int{
		StageGreen: 0, StageYellow: 1, StageLightBrown: 2,
		StageMediumBrown: 3, StageDarkBrown: 4, StageNearlyBlack: 5,
	}
	prev := -1
	for temp := 0.0; temp <= 600; temp += 0.5 {
		r := rank[Stage(temp)]
		if r < prev {
			t.Fatalf("stage severity regressed at %.1f", temp)
		}
		prev = r
	}
}

func TestCrackRanges_AreDisjointAndOrdered(t *testing.T) {
	cases := []struct {
		temp          float64
		first, second bool
	}{
		{360, false, false},
		{365, true, false},
		{375, true, false},
		{385, true, false},
		{386, false, false},
		{434.9, false, false},
		{435, false, true},
		{450, false, true},
		{451, false, false},
	}
	for _, tc := range cases {
		if got := InFirstCrackRange(tc.temp); got != tc.first {
			t.Errorf("InFirstCrackRange(%.1f) = %v, want %v", tc.temp, got, tc.first)
		}
		if got := InSecondCrackRange(tc.temp); got != tc.second {
			t.Errorf("InSecondCrackRange(%.1f) = %v, want %v", tc.temp, got, tc.second)
		}
	}
}
