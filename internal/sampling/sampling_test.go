package sampling

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vpol/redis/internal/config"
	"github.com/vpol/redis/internal/setval"
)

func testCfg() *config.Config {
	return config.New(config.Config{IntMax: 512, PopStrategyRatio: 5, RandStrategyRatio: 3})
}

func buildSet(cfg *config.Config, n int) *setval.PS {
	ps := setval.Create(cfg, []byte("1"))
	for i := 2; i <= n; i++ {
		ps.Add([]byte(fmt.Sprintf("%d", i)))
	}
	return ps
}

// Scenario S4: POP s 3 from a 10-element set.
func TestScenarioS4(t *testing.T) {
	cfg := testCfg()
	s := buildSet(cfg, 10)

	var emitted []string
	outcome, err := PopCount(cfg, s, 3, func(v []byte) { emitted = append(emitted, string(v)) })
	require.NoError(t, err)

	assert.Len(t, emitted, 3)
	assert.False(t, outcome.Emptied)

	distinct := map[string]struct{}{}
	for _, v := range emitted {
		distinct[v] = struct{}{}
	}
	assert.Len(t, distinct, 3, "emitted elements must be pairwise distinct")

	if outcome.Replaced != nil {
		assert.Equal(t, 7, outcome.Replaced.Size())
	} else {
		assert.Equal(t, 7, s.Size())
	}
}

// Scenario S5: POP s 10 from a 10-element set empties it.
func TestScenarioS5(t *testing.T) {
	cfg := testCfg()
	s := buildSet(cfg, 10)

	var emitted []string
	outcome, err := PopCount(cfg, s, 10, func(v []byte) { emitted = append(emitted, string(v)) })
	require.NoError(t, err)
	assert.True(t, outcome.Emptied)
	assert.Len(t, emitted, 10)
}

func TestPopCountNegativeIsRangeError(t *testing.T) {
	cfg := testCfg()
	s := buildSet(cfg, 5)
	_, err := PopCount(cfg, s, -1, func([]byte) {})
	assert.ErrorIs(t, err, ErrRange)
}

func TestPopCountZeroIsNoop(t *testing.T) {
	cfg := testCfg()
	s := buildSet(cfg, 5)
	called := false
	outcome, err := PopCount(cfg, s, 0, func([]byte) { called = true })
	require.NoError(t, err)
	assert.False(t, called)
	assert.False(t, outcome.Emptied)
	assert.Nil(t, outcome.Replaced)
	assert.Equal(t, 5, s.Size())
}

// Forces strategy B (keep survivors): remaining is small relative to k.
func TestPopCountStrategyBReplacesBinding(t *testing.T) {
	cfg := testCfg()
	s := buildSet(cfg, 100)

	var emitted []string
	outcome, err := PopCount(cfg, s, 95, func(v []byte) { emitted = append(emitted, string(v)) })
	require.NoError(t, err)
	require.NotNil(t, outcome.Replaced)
	assert.Equal(t, 5, outcome.Replaced.Size())
	assert.Len(t, emitted, 95)
}

// Scenario S6: RAND s -7 returns exactly 7 elements, possibly repeated, s
// unchanged.
func TestScenarioS6(t *testing.T) {
	cfg := testCfg()
	s := buildSet(cfg, 5)
	before := s.Size()

	var emitted []string
	RandCount(cfg, s, -7, func(v []byte) { emitted = append(emitted, string(v)) })

	assert.Len(t, emitted, 7)
	assert.Equal(t, before, s.Size())
	for _, v := range emitted {
		assert.True(t, s.Contains([]byte(v)))
	}
}

// Property 11: RAND(S, k, unique=true) with k <= |S| returns k distinct
// members of S.
func TestRandCountUniqueDistinct(t *testing.T) {
	cfg := testCfg()
	s := buildSet(cfg, 20)

	var emitted []string
	RandCount(cfg, s, 6, func(v []byte) { emitted = append(emitted, string(v)) })

	assert.Len(t, emitted, 6)
	distinct := map[string]struct{}{}
	for _, v := range emitted {
		distinct[v] = struct{}{}
		assert.True(t, s.Contains([]byte(v)))
	}
	assert.Len(t, distinct, 6)
	assert.Equal(t, 20, s.Size()) // non-destructive
}

// Forces strategy C (down-sample): k close to |S|.
func TestRandCountStrategyCDownSample(t *testing.T) {
	cfg := testCfg()
	s := buildSet(cfg, 10)

	var emitted []string
	RandCount(cfg, s, 9, func(v []byte) { emitted = append(emitted, string(v)) })
	assert.Len(t, emitted, 9)
	distinct := map[string]struct{}{}
	for _, v := range emitted {
		distinct[v] = struct{}{}
	}
	assert.Len(t, distinct, 9)
}

// Forces strategy D (up-sample): k small relative to |S|.
func TestRandCountStrategyDUpSample(t *testing.T) {
	cfg := testCfg()
	s := buildSet(cfg, 1000)

	var emitted []string
	RandCount(cfg, s, 3, func(v []byte) { emitted = append(emitted, string(v)) })
	assert.Len(t, emitted, 3)
	distinct := map[string]struct{}{}
	for _, v := range emitted {
		distinct[v] = struct{}{}
	}
	assert.Len(t, distinct, 3)
}

func TestRandCountAllWhenKExceedsSize(t *testing.T) {
	cfg := testCfg()
	s := buildSet(cfg, 4)
	var emitted []string
	RandCount(cfg, s, 10, func(v []byte) { emitted = append(emitted, string(v)) })
	assert.Len(t, emitted, 4)
	assert.Equal(t, 4, s.Size())
}

func TestRandCountZeroEmitsNothing(t *testing.T) {
	cfg := testCfg()
	s := buildSet(cfg, 4)
	called := false
	RandCount(cfg, s, 0, func([]byte) { called = true })
	assert.False(t, called)
}
