// Package bandit models the unknown opponent's hole cards as the arms of a
// multi-armed bandit. Each arm is one 2-card hypothesis with win/simulation
// counters, selected via UCB1.
package bandit

import (
	"fmt"
	"math"

	"github.com/lox/foldem/internal/deck"
)

// InsufficientDeckError reports that too few cards remain to enumerate any
// opponent hypothesis.
type InsufficientDeckError struct {
	Remaining int
}

func (e InsufficientDeckError) Error() string {
	return fmt.Sprintf("need at least 2 cards to enumerate opponent hands, %d remain", e.Remaining)
}

// Arm is one hypothesis about the opponent's two hole cards.
// Invariant: Wins <= Simulations.
type Arm struct {
	Hole        [2]deck.Card
	Wins        int
	Simulations int
}

// Score computes the UCB1 score for the arm. Unsimulated arms score positive
// infinity so every hypothesis is tried at least once before any is
// revisited. Wins here are opponent-perspective-free: they count the hero's
// strict wins against this hypothesis.
func (a *Arm) Score(totalSimulations int) float64 {
	if a.Simulations == 0 {
		return math.Inf(1)
	}
	winRate := float64(a.Wins) / float64(a.Simulations)
	exploration := math.Sqrt(2 * math.Log(float64(totalSimulations)+1) / float64(a.Simulations))
	return winRate + exploration
}

// Enumerate produces all C(n,2) unordered 2-card combinations of the given
// cards as fresh arms. Enumeration order follows the input card order and is
// stable, which keeps UCB1 tie-breaking deterministic.
func Enumerate(cards []deck.Card) ([]*Arm, error) {
	if len(cards) < 2 {
		return nil, InsufficientDeckError{Remaining: len(cards)}
	}

	arms := make([]*Arm, 0, len(cards)*(len(cards)-1)/2)
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			arms = append(arms, &Arm{Hole: [2]deck.Card{cards[i], cards[j]}})
		}
	}

	return arms, nil
}

// Select returns the arm with the maximum UCB1 score. Ties go to the
// first-encountered arm in enumeration order.
func Select(arms []*Arm, totalSimulations int) *Arm {
	best := arms[0]
	bestScore := best.Score(totalSimulations)
	for _, arm := range arms[1:] {
		if score := arm.Score(totalSimulations); score > bestScore {
			best = arm
			bestScore = score
		}
	}
	return best
}
