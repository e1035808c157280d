package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/foldem/internal/config"
	"github.com/lox/foldem/internal/deck"
	"github.com/lox/foldem/internal/estimator"
	"github.com/lox/foldem/internal/randutil"
)

// BenchCmd runs many independent decisions in parallel. Every decision gets
// its own estimator, RNG and arms, so nothing is shared between workers.
type BenchCmd struct {
	Count   int           `short:"n" default:"16" help:"Number of decisions to run"`
	Budget  time.Duration `default:"500ms" help:"Time budget per decision"`
	Workers int           `help:"Number of parallel workers (default GOMAXPROCS)"`
}

func (c *BenchCmd) Run(cli *CLI) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: logLevel(cli.Debug)})

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	estCfg := cfg.EstimatorConfig()
	estCfg.TimeBudget = c.Budget
	if cli.Budget > 0 {
		estCfg.TimeBudget = cli.Budget
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var masterSeed int64
	if cli.Seed != nil {
		masterSeed = *cli.Seed
	} else {
		masterSeed = time.Now().UnixNano()
	}
	masterRng := randutil.New(masterSeed)

	// Seeds are drawn up front so worker scheduling cannot change which
	// decision sees which seed.
	seeds := make([]int64, c.Count)
	for i := range seeds {
		seeds[i] = masterRng.Int64()
	}

	fmt.Printf("Running %d decisions, %v budget each, %d workers (seed %d)\n",
		c.Count, estCfg.TimeBudget, workers, masterSeed)

	// Each goroutine writes only its own slot.
	results := make([]estimator.Result, c.Count)
	start := time.Now()

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i := range c.Count {
		g.Go(func() error {
			rng := randutil.New(seeds[i])
			est := estimator.New(logger, estCfg, rng, quartz.NewReal())

			d := deck.New(rng)
			d.Shuffle()
			myCards := d.PopN(2)

			result, err := est.Estimate(myCards, nil)
			if err != nil {
				return err
			}

			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	totalSims := 0
	sumWinRate := 0.0
	for _, r := range results {
		totalSims += r.Simulations
		sumWinRate += r.WinRate
	}

	fmt.Printf("\n%d decisions in %v\n", c.Count, elapsed.Round(time.Millisecond))
	fmt.Printf("Simulations: %d total, %.0f/sec\n",
		totalSims, float64(totalSims)/elapsed.Seconds())
	fmt.Printf("Mean pre-flop win rate: %.4f\n", sumWinRate/float64(c.Count))

	return nil
}
