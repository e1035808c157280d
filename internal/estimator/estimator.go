// Package estimator implements a time-boxed Monte Carlo win-rate estimator.
// Simulation effort is allocated across candidate opponent hole-card
// combinations with a UCB1 bandit policy, and the aggregate win rate is
// thresholded into a continue/abandon verdict.
package estimator

import (
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/foldem/internal/bandit"
	"github.com/lox/foldem/internal/deck"
	"github.com/lox/foldem/internal/evaluator"
	"github.com/lox/foldem/internal/policy"
)

// DefaultTimeBudget bounds a single estimation run. Matches the roughly
// ten-second decision window of live play with headroom for the caller.
const DefaultTimeBudget = 9500 * time.Millisecond

// Config tunes a single estimation run.
type Config struct {
	// TimeBudget is the wall-clock budget for the simulation loop.
	TimeBudget time.Duration

	// MaxIterations caps the number of simulations when > 0. Zero means
	// deadline-only termination. Used to make tests deterministic.
	MaxIterations int

	// Threshold is the continue/abandon win-rate cut-off.
	Threshold float64
}

// DefaultConfig returns the nominal production configuration
func DefaultConfig() Config {
	return Config{
		TimeBudget: DefaultTimeBudget,
		Threshold:  policy.DefaultThreshold,
	}
}

// Result carries the win-rate estimate plus the observables a caller may
// want to display.
type Result struct {
	WinRate     float64
	Simulations int
	Arms        int
	Elapsed     time.Duration
}

// Estimator estimates the probability of winning against one unknown
// opponent hand. All simulation state is created per call; an Estimator
// holds no state across decisions and must not be shared across goroutines
// because the RNG is not synchronized.
type Estimator struct {
	cfg    Config
	logger *log.Logger
	rng    *rand.Rand
	clock  quartz.Clock
}

// New creates an estimator with an injected RNG and clock
func New(logger *log.Logger, cfg Config, rng *rand.Rand, clock quartz.Clock) *Estimator {
	if cfg.TimeBudget == 0 {
		cfg.TimeBudget = DefaultTimeBudget
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = policy.DefaultThreshold
	}
	return &Estimator{
		cfg:    cfg,
		logger: logger.WithPrefix("estimator"),
		rng:    rng,
		clock:  clock,
	}
}

// Estimate runs the simulation loop until the time budget elapses and
// returns the aggregate win rate over all opponent hypotheses.
//
// Each iteration selects an opponent hypothesis via UCB1, completes the
// board to 5 cards with uniform random draws, evaluates both 7-card sets and
// records a win iff the hero's hand strictly beats the hypothesis (ties
// count as neither win nor loss). The deadline is rechecked between
// iterations, so overrun is bounded by the cost of one showdown.
func (e *Estimator) Estimate(myCards, communityCards []deck.Card) (Result, error) {
	if len(myCards) != 2 {
		return Result{}, fmt.Errorf("need exactly 2 hole cards, got %d", len(myCards))
	}
	if len(communityCards) > 5 {
		return Result{}, fmt.Errorf("at most 5 community cards allowed, got %d", len(communityCards))
	}

	d := deck.New(e.rng)
	known := make([]deck.Card, 0, len(myCards)+len(communityCards))
	known = append(known, myCards...)
	known = append(known, communityCards...)
	if err := d.RemoveKnown(known...); err != nil {
		return Result{}, err
	}

	remaining := d.Cards()
	arms, err := bandit.Enumerate(remaining)
	if err != nil {
		return Result{}, err
	}

	unknown := make([]deck.Card, 0, len(remaining))
	board := make([]deck.Card, 0, 5)
	hand := make([]deck.Card, 0, 7)
	need := 5 - len(communityCards)

	start := e.clock.Now()
	total := 0

	for e.clock.Since(start) < e.cfg.TimeBudget {
		arm := bandit.Select(arms, total)

		// Cards still unseen from the hero's point of view under this
		// hypothesis: the remaining deck minus the arm's two cards.
		unknown = unknown[:0]
		for _, c := range remaining {
			if c != arm.Hole[0] && c != arm.Hole[1] {
				unknown = append(unknown, c)
			}
		}

		// Complete the board with uniform draws (partial Fisher-Yates).
		board = append(board[:0], communityCards...)
		for i := 0; i < need; i++ {
			j := i + e.rng.IntN(len(unknown)-i)
			unknown[i], unknown[j] = unknown[j], unknown[i]
			board = append(board, unknown[i])
		}

		hand = append(append(hand[:0], myCards...), board...)
		_, mine, err := evaluator.BestOf(hand)
		if err != nil {
			return Result{}, err
		}

		hand = append(append(hand[:0], arm.Hole[0], arm.Hole[1]), board...)
		_, theirs, err := evaluator.BestOf(hand)
		if err != nil {
			return Result{}, err
		}

		arm.Simulations++
		if mine.Compare(theirs) > 0 {
			arm.Wins++
		}
		total++

		if e.cfg.MaxIterations > 0 && total >= e.cfg.MaxIterations {
			break
		}
	}

	wins, sims := 0, 0
	for _, arm := range arms {
		wins += arm.Wins
		sims += arm.Simulations
	}

	result := Result{
		Simulations: sims,
		Arms:        len(arms),
		Elapsed:     e.clock.Since(start),
	}
	if sims > 0 {
		result.WinRate = float64(wins) / float64(sims)
	}

	e.logger.Debug("estimate complete",
		"win_rate", result.WinRate,
		"simulations", result.Simulations,
		"arms", result.Arms,
		"elapsed", result.Elapsed)

	return result, nil
}

// Decide estimates the win rate for the given state and thresholds it into
// a verdict. On error no verdict is produced.
func (e *Estimator) Decide(myCards, communityCards []deck.Card) (policy.Verdict, Result, error) {
	result, err := e.Estimate(myCards, communityCards)
	if err != nil {
		return policy.Abandon, Result{}, err
	}
	return policy.DecideWithThreshold(result.WinRate, e.cfg.Threshold), result, nil
}
