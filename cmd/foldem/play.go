package main

import (
	"fmt"

	"github.com/lox/foldem/internal/deck"
	"github.com/lox/foldem/internal/evaluator"
	"github.com/lox/foldem/internal/policy"
)

// PlayCmd deals a fresh hand against a hidden opponent, runs the decision
// engine at every street and settles the showdown with fully revealed hands.
type PlayCmd struct{}

func (c *PlayCmd) Run(cli *CLI) error {
	logger, est, rng, seed, err := cli.setup()
	if err != nil {
		return err
	}
	logger.Debug("dealing hand", "seed", seed)

	d := deck.New(rng)
	d.Shuffle()

	myCards := d.PopN(2)
	oppHidden := d.PopN(2)

	fmt.Printf("%s %s\n", headerStyle.Render("Your hand:"), formatCards(myCards))

	streets := []struct {
		name string
		deal int
	}{
		{"Pre-flop", 0},
		{"Flop", 3},
		{"Turn", 1},
		{"River", 1},
	}

	var community []deck.Card
	for _, street := range streets {
		if street.deal > 0 {
			community = append(community, d.PopN(street.deal)...)
			fmt.Printf("\n%s %s\n", headerStyle.Render(street.name+":"), formatCards(community))
		}

		verdict, result, err := est.Decide(myCards, community)
		if err != nil {
			return fmt.Errorf("%s decision failed: %w", street.name, err)
		}

		fmt.Printf("%s decision: %s  %s\n",
			street.name,
			renderVerdict(verdict),
			rateStyle.Render(fmt.Sprintf("(win rate %.2f, %d simulations)", result.WinRate, result.Simulations)))
	}

	// Showdown with everything revealed.
	fmt.Printf("\n%s %s\n", headerStyle.Render("Opponent's hand:"), formatCards(oppHidden))

	_, mine, err := evaluator.BestOf(append(append([]deck.Card{}, myCards...), community...))
	if err != nil {
		return err
	}
	_, theirs, err := evaluator.BestOf(append(append([]deck.Card{}, oppHidden...), community...))
	if err != nil {
		return err
	}

	fmt.Printf("You have %s, opponent has %s.\n", mine, theirs)
	switch mine.Compare(theirs) {
	case 1:
		fmt.Println(continueStyle.Render("You WIN!"))
	case -1:
		fmt.Println(abandonStyle.Render("You LOSE."))
	default:
		fmt.Println(rateStyle.Render("It's a TIE."))
	}

	return nil
}

func renderVerdict(v policy.Verdict) string {
	if v == policy.Continue {
		return continueStyle.Render(v.String())
	}
	return abandonStyle.Render(v.String())
}
