package estimator

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/foldem/internal/deck"
	"github.com/lox/foldem/internal/policy"
	"github.com/lox/foldem/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// The mock clock never advances, so the loop terminates on MaxIterations and
// tests stay deterministic.
func newTestEstimator(t *testing.T, cfg Config, seed int64) *Estimator {
	t.Helper()
	return New(testLogger(), cfg, randutil.New(seed), quartz.NewMock(t))
}

func TestEstimateExpiredDeadline(t *testing.T) {
	est := newTestEstimator(t, Config{TimeBudget: -time.Millisecond}, 1)

	result, err := est.Estimate(deck.MustParseCards("AsAh"), nil)
	require.NoError(t, err)

	// A valid, if extreme, configuration: no simulations, zero win rate.
	assert.Equal(t, 0, result.Simulations)
	assert.Equal(t, 0.0, result.WinRate)
	assert.Equal(t, 1225, result.Arms)
}

func TestEstimateTriesEveryArmOnce(t *testing.T) {
	myCards := deck.MustParseCards("AsAh")
	community := deck.MustParseCards("AdAcKsQdJh")

	// 45 unknown cards leave C(45,2) = 990 opponent hypotheses. With exactly
	// that many iterations, UCB1's infinite score for unsimulated arms forces
	// one simulation per arm.
	est := newTestEstimator(t, Config{MaxIterations: 990}, 2)

	result, err := est.Estimate(myCards, community)
	require.NoError(t, err)

	assert.Equal(t, 990, result.Arms)
	assert.Equal(t, 990, result.Simulations)

	// Hero holds quad aces with a king kicker on this board; no opponent
	// hand can tie or beat it.
	assert.Equal(t, 1.0, result.WinRate)
}

func TestEstimateAllTies(t *testing.T) {
	// The board plays for both sides: quad aces with a king kicker. Every
	// showdown ties, ties are not wins, so the win rate is zero.
	myCards := deck.MustParseCards("2c3d")
	community := deck.MustParseCards("AhAsAdAcKh")

	est := newTestEstimator(t, Config{MaxIterations: 500}, 3)

	result, err := est.Estimate(myCards, community)
	require.NoError(t, err)
	assert.Equal(t, 500, result.Simulations)
	assert.Equal(t, 0.0, result.WinRate)
}

func TestEstimateWinRateBounds(t *testing.T) {
	est := newTestEstimator(t, Config{MaxIterations: 300}, 4)

	result, err := est.Estimate(deck.MustParseCards("7c2d"), deck.MustParseCards("AhKs9d"))
	require.NoError(t, err)

	assert.Equal(t, 300, result.Simulations)
	assert.GreaterOrEqual(t, result.WinRate, 0.0)
	assert.LessOrEqual(t, result.WinRate, 1.0)
}

func TestEstimateDeadlineTermination(t *testing.T) {
	budget := 50 * time.Millisecond
	est := New(testLogger(), Config{TimeBudget: budget}, randutil.New(5), quartz.NewReal())

	result, err := est.Estimate(deck.MustParseCards("AsKs"), nil)
	require.NoError(t, err)

	assert.Greater(t, result.Simulations, 0)
	assert.GreaterOrEqual(t, result.Elapsed, budget)
	assert.GreaterOrEqual(t, result.WinRate, 0.0)
	assert.LessOrEqual(t, result.WinRate, 1.0)
}

func TestEstimateDuplicateCard(t *testing.T) {
	est := newTestEstimator(t, Config{MaxIterations: 10}, 6)

	// Hole card repeated on the board.
	_, err := est.Estimate(deck.MustParseCards("AsAh"), deck.MustParseCards("AsKdQc"))
	require.Error(t, err)

	var invalidErr deck.InvalidCardError
	assert.True(t, errors.As(err, &invalidErr), "expected InvalidCardError, got %v", err)
}

func TestEstimateInputValidation(t *testing.T) {
	est := newTestEstimator(t, Config{MaxIterations: 10}, 7)

	_, err := est.Estimate(deck.MustParseCards("As"), nil)
	assert.Error(t, err, "one hole card")

	_, err = est.Estimate(deck.MustParseCards("AsKhQd"), nil)
	assert.Error(t, err, "three hole cards")

	_, err = est.Estimate(deck.MustParseCards("AsKh"), deck.MustParseCards("2c3c4c5c6c7c"))
	assert.Error(t, err, "six community cards")
}

func TestDecide(t *testing.T) {
	t.Run("unbeatable hand continues", func(t *testing.T) {
		est := newTestEstimator(t, Config{MaxIterations: 990}, 8)

		verdict, result, err := est.Decide(
			deck.MustParseCards("AsAh"),
			deck.MustParseCards("AdAcKsQdJh"))
		require.NoError(t, err)
		assert.Equal(t, policy.Continue, verdict)
		assert.Equal(t, 1.0, result.WinRate)
	})

	t.Run("hopeless hand abandons", func(t *testing.T) {
		est := newTestEstimator(t, Config{MaxIterations: 500}, 9)

		verdict, result, err := est.Decide(
			deck.MustParseCards("2c3d"),
			deck.MustParseCards("AhAsAdAcKh"))
		require.NoError(t, err)
		assert.Equal(t, policy.Abandon, verdict)
		assert.Equal(t, 0.0, result.WinRate)
	})

	t.Run("error yields no verdict", func(t *testing.T) {
		est := newTestEstimator(t, Config{MaxIterations: 10}, 10)

		_, result, err := est.Decide(deck.MustParseCards("AsAs"), nil)
		require.Error(t, err)
		assert.Equal(t, Result{}, result)
	})
}

func TestCustomThreshold(t *testing.T) {
	// A mediocre hand continues under a permissive threshold and abandons
	// under a strict one; same seed, same estimate.
	myCards := deck.MustParseCards("9c9d")
	community := deck.MustParseCards("2h7sKd")

	permissive := newTestEstimator(t, Config{MaxIterations: 400, Threshold: 0.01}, 11)
	verdict, result, err := permissive.Decide(myCards, community)
	require.NoError(t, err)
	require.Greater(t, result.WinRate, 0.01)
	assert.Equal(t, policy.Continue, verdict)

	strict := newTestEstimator(t, Config{MaxIterations: 400, Threshold: 0.999}, 11)
	verdict, result, err = strict.Decide(myCards, community)
	require.NoError(t, err)
	require.Less(t, result.WinRate, 0.999)
	assert.Equal(t, policy.Abandon, verdict)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultTimeBudget, cfg.TimeBudget)
	assert.Equal(t, policy.DefaultThreshold, cfg.Threshold)
	assert.Zero(t, cfg.MaxIterations)
}
