package main

import (
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	rand "math/rand/v2"

	"github.com/lox/foldem/internal/config"
	"github.com/lox/foldem/internal/deck"
	"github.com/lox/foldem/internal/estimator"
	"github.com/lox/foldem/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"V" help:"Show version"`
	Config  string           `help:"Path to HCL config file" default:"foldem.hcl"`
	Seed    *int64           `help:"Deterministic RNG seed (optional)"`
	Budget  time.Duration    `help:"Simulation time budget per decision (overrides config)"`
	Debug   bool             `help:"Enable debug logging"`

	Play   PlayCmd   `cmd:"" default:"1" help:"Deal a full hand and narrate the decision at every street"`
	Decide DecideCmd `cmd:"" help:"Make one continue/abandon decision for a given hand and board"`
	Bench  BenchCmd  `cmd:"" help:"Benchmark the estimator with parallel independent decisions"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	blackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	continueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	abandonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	rateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("foldem"),
		kong.Description("Time-boxed continue/abandon decision engine for heads-up hold'em"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// setup resolves config file, flags and seed into a ready-to-use estimator.
func (cli *CLI) setup() (*log.Logger, *estimator.Estimator, *rand.Rand, int64, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: logLevel(cli.Debug)})

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	if !cli.Debug {
		logger.SetLevel(parseLevel(cfg.Log.Level))
	}

	estCfg := cfg.EstimatorConfig()
	if cli.Budget > 0 {
		estCfg.TimeBudget = cli.Budget
	}

	var rng *rand.Rand
	var seed int64
	switch {
	case cli.Seed != nil:
		seed = *cli.Seed
		rng = randutil.New(seed)
	case cfg.Simulation.Seed != 0:
		seed = cfg.Simulation.Seed
		rng = randutil.New(seed)
	default:
		rng, seed = randutil.Auto()
	}
	logger.Debug("rng seeded", "seed", seed)

	est := estimator.New(logger, estCfg, rng, quartz.NewReal())
	return logger, est, rng, seed, nil
}

func logLevel(debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	return log.InfoLevel
}

func parseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		style := blackCardStyle
		if c.IsRed() {
			style = redCardStyle
		}
		parts = append(parts, style.Render(c.String()))
	}
	return strings.Join(parts, " ")
}
