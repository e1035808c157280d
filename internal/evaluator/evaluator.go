// Package evaluator ranks 5-card poker hands and selects the best 5-card
// hand from a larger set by exhaustive enumeration.
package evaluator

import (
	"fmt"

	"github.com/lox/foldem/internal/deck"
)

// Category enumerates the standard poker hand categories from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandStrength is a totally ordered hand value: category first, then five
// tiebreak ranks compared lexicographically. Tiebreak ranks are ordered by
// group size then rank, so a full house lists the trips rank before the pair
// rank and two pair lists the higher pair first.
type HandStrength struct {
	Category  Category
	Tiebreaks [5]deck.Rank
}

// Compare returns 1 if h is stronger than other, -1 if weaker, 0 if equal
func (h HandStrength) Compare(other HandStrength) int {
	if h.Category != other.Category {
		if h.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := range h.Tiebreaks {
		if h.Tiebreaks[i] != other.Tiebreaks[i] {
			if h.Tiebreaks[i] > other.Tiebreaks[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String returns the category name
func (h HandStrength) String() string {
	return h.Category.String()
}

// Rank evaluates exactly 5 cards to a HandStrength. It is deterministic and
// total over all valid inputs.
//
// An ace always ranks high, so A-2-3-4-5 is not detected as a straight and
// falls through to high card. Wheel straights are deliberately out of scope.
func Rank(cards []deck.Card) (HandStrength, error) {
	if len(cards) != 5 {
		return HandStrength{}, fmt.Errorf("hand must contain exactly 5 cards, got %d", len(cards))
	}
	return rank5(cards), nil
}

func rank5(cards []deck.Card) HandStrength {
	// Fixed-size rank counting keeps evaluation allocation-free.
	var counts [13]int
	flush := true
	minRank, maxRank := deck.Ace, deck.Two
	for i, c := range cards {
		counts[c.Rank-deck.Two]++
		if i > 0 && c.Suit != cards[0].Suit {
			flush = false
		}
		if c.Rank < minRank {
			minRank = c.Rank
		}
		if c.Rank > maxRank {
			maxRank = c.Rank
		}
	}

	distinct := 0
	top, second := 0, 0
	for _, n := range counts {
		if n == 0 {
			continue
		}
		distinct++
		if n > top {
			top, second = n, top
		} else if n > second {
			second = n
		}
	}

	// Five distinct consecutive rank values. Aces never play low.
	straight := distinct == 5 && maxRank-minRank == 4

	var strength HandStrength
	switch {
	case straight && flush:
		strength.Category = StraightFlush
	case top == 4:
		strength.Category = FourOfAKind
	case top == 3 && second == 2:
		strength.Category = FullHouse
	case flush:
		strength.Category = Flush
	case straight:
		strength.Category = Straight
	case top == 3:
		strength.Category = ThreeOfAKind
	case top == 2 && second == 2:
		strength.Category = TwoPair
	case top == 2:
		strength.Category = OnePair
	default:
		strength.Category = HighCard
	}

	// Tiebreaks: larger groups first, higher ranks first within a group size,
	// each rank repeated by its count.
	i := 0
	for count := 4; count >= 1; count-- {
		for r := deck.Ace; r >= deck.Two; r-- {
			if counts[r-deck.Two] != count {
				continue
			}
			for range count {
				strength.Tiebreaks[i] = r
				i++
			}
		}
	}

	return strength
}

// BestOf returns the strongest 5-card subset of 5 to 7 cards, found by
// evaluating every 5-card combination. The first maximum encountered is
// kept; later equal-strength subsets never displace it, so results are
// stable for a given input order.
func BestOf(cards []deck.Card) ([]deck.Card, HandStrength, error) {
	n := len(cards)
	if n < 5 || n > 7 {
		return nil, HandStrength{}, fmt.Errorf("best-of requires 5 to 7 cards, got %d", n)
	}

	var best HandStrength
	var bestHand [5]deck.Card
	first := true
	combo := make([]deck.Card, 5)

	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						combo[0], combo[1], combo[2], combo[3], combo[4] =
							cards[a], cards[b], cards[c], cards[d], cards[e]
						strength := rank5(combo)
						if first || strength.Compare(best) > 0 {
							best = strength
							copy(bestHand[:], combo)
							first = false
						}
					}
				}
			}
		}
	}

	return bestHand[:], best, nil
}
