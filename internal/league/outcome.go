package league

// ResultFromGoalDiff maps a signed goal difference to the outcome for
// team A and team B respectively.
func ResultFromGoalDiff(goalDiff int) (a, b Outcome) {
	switch {
	case goalDiff > 0:
		return OutcomeWin, OutcomeLoss
	case goalDiff < 0:
		return OutcomeLoss, OutcomeWin
	default:
		return OutcomeDraw, OutcomeDraw
	}
}

// PointsFor returns the points a single outcome is worth under the
// season's ruleset.
func PointsFor(r Outcome, pv PointValues) int {
	switch r {
	case OutcomeWin:
		return pv.Win
	case OutcomeDraw:
		return pv.Draw
	default:
		return pv.Loss
	}
}
