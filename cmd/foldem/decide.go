package main

import (
	"fmt"

	"github.com/lox/foldem/internal/deck"
)

// DecideCmd makes a single continue/abandon decision for a known state.
type DecideCmd struct {
	Hand  string `arg:"" help:"Hero hole cards, e.g. 'AsKh'" required:""`
	Board string `short:"b" help:"Community cards, e.g. '2c7d9h' (0-5 cards)"`
}

func (c *DecideCmd) Run(cli *CLI) error {
	myCards, err := deck.ParseCards(c.Hand)
	if err != nil {
		return fmt.Errorf("parsing hand: %w", err)
	}
	if len(myCards) != 2 {
		return fmt.Errorf("hand must contain exactly 2 cards, got %d", len(myCards))
	}

	var community []deck.Card
	if c.Board != "" {
		community, err = deck.ParseCards(c.Board)
		if err != nil {
			return fmt.Errorf("parsing board: %w", err)
		}
		if len(community) > 5 {
			return fmt.Errorf("board cannot have more than 5 cards, got %d", len(community))
		}
	}

	logger, est, _, seed, err := cli.setup()
	if err != nil {
		return err
	}
	logger.Debug("deciding", "hand", c.Hand, "board", c.Board, "seed", seed)

	verdict, result, err := est.Decide(myCards, community)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s   %s %s\n",
		headerStyle.Render("hand"), formatCards(myCards),
		headerStyle.Render("board"), formatCards(community))
	fmt.Printf("win rate %s over %d simulations (%d opponent hands, %v)\n",
		rateStyle.Render(fmt.Sprintf("%.4f", result.WinRate)),
		result.Simulations, result.Arms, result.Elapsed)
	fmt.Println(renderVerdict(verdict))

	return nil
}
