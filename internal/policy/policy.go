// Package policy converts an estimated win rate into a continue/abandon verdict.
package policy

// Verdict is the binary decision for the current hand.
type Verdict int

const (
	Abandon Verdict = iota
	Continue
)

// String returns the verdict label
func (v Verdict) String() string {
	if v == Continue {
		return "CONTINUE"
	}
	return "ABANDON"
}

// DefaultThreshold is the win rate at or above which the hand is worth playing on.
const DefaultThreshold = 0.5

// Decide thresholds the win rate with the default threshold.
func Decide(winRate float64) Verdict {
	return DecideWithThreshold(winRate, DefaultThreshold)
}

// DecideWithThreshold returns Continue iff winRate >= threshold.
func DecideWithThreshold(winRate, threshold float64) Verdict {
	if winRate >= threshold {
		return Continue
	}
	return Abandon
}
