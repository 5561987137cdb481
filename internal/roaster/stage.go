package roaster

// RoastStage is the human-readable roast progress classification. It
// is informational only and never drives control decisions.
type RoastStage string

const (
	StageGreen       RoastStage = "Green"
	StageYellow      RoastStage = "Yellow"
	StageLightBrown  RoastStage = "Light Brown"
	StageMediumBrown RoastStage = "Medium Brown"
	StageDarkBrown   RoastStage = "Dark Brown"
	StageNearlyBlack RoastStage = "Nearly Black"
)

// Stage maps a temperature onto its roast stage. The breakpoints are
// ascending half-open intervals; stage severity is non-decreasing in
// temperature.
func Stage(temp float64) RoastStage {
	switch {
	case temp < 200:
		return StageGreen
	case temp < 300:
		return StageYellow
	case temp < 350:
		return StageLightBrown
	case temp < 400:
		return StageMediumBrown
	case temp < 435:
		return StageDarkBrown
	default:
		return StageNearlyBlack
	}
}
