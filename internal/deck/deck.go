package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// InvalidCardError reports a known card that is not present in the deck,
// typically a duplicate across hole and community cards.
type InvalidCardError struct {
	Card Card
}

func (e InvalidCardError) Error() string {
	return fmt.Sprintf("card %s is not in the deck", e.Card)
}

// Deck represents a deck of playing cards. A deck only shrinks: cards are
// removed when dealt or marked as known, never re-added.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full 52-card deck in suit-then-rank order with explicit RNG.
func New(rng *rand.Rand) *Deck {
	deck := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}

	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			deck.cards = append(deck.cards, NewCard(suit, rank))
		}
	}

	return deck
}

// RemoveKnown removes the given cards from the deck. It fails with
// InvalidCardError on the first card not present rather than silently
// proceeding with a smaller known-set.
func (d *Deck) RemoveKnown(known ...Card) error {
	for _, card := range known {
		if !d.remove(card) {
			return InvalidCardError{Card: card}
		}
	}
	return nil
}

func (d *Deck) remove(card Card) bool {
	for i, c := range d.cards {
		if c == card {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			return true
		}
	}
	return false
}

// Shuffle randomizes the order of cards in the deck using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Pop removes and returns the top card from the deck
func (d *Deck) Pop() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// PopN deals n cards from the deck, or fewer if the deck runs out
func (d *Deck) PopN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}

	cards := make([]Card, 0, n)
	for range n {
		card, ok := d.Pop()
		if !ok {
			break
		}
		cards = append(cards, card)
	}

	return cards
}

// Cards returns a copy of the remaining cards in deck order
func (d *Deck) Cards() []Card {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	return cards
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// Contains reports whether the card is still in the deck
func (d *Deck) Contains(card Card) bool {
	for _, c := range d.cards {
		if c == card {
			return true
		}
	}
	return false
}
