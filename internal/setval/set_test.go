package setval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vpol/redis/internal/config"
)

func testCfg() *config.Config {
	return config.New(config.Config{IntMax: 512})
}

func TestCreateEncodingByValue(t *testing.T) {
	ps := Create(testCfg(), []byte("42"))
	assert.Equal(t, EncodingInt, ps.Encoding())
	assert.Equal(t, 1, ps.Size())

	ps2 := Create(testCfg(), []byte("hello"))
	assert.Equal(t, EncodingHash, ps2.Encoding())
}

// Invariant 1: S.add(x); S.contains(x) == true.
func TestInvariantAddThenContains(t *testing.T) {
	ps := Create(testCfg(), []byte("1"))
	assert.True(t, ps.Add([]byte("2")))
	assert.True(t, ps.Contains([]byte("2")))
}

// Invariant 2: S.add(x); S.remove(x); S.contains(x) == false.
func TestInvariantAddRemoveContains(t *testing.T) {
	ps := Create(testCfg(), []byte("1"))
	ps.Add([]byte("2"))
	require.True(t, ps.Remove([]byte("2")))
	assert.False(t, ps.Contains([]byte("2")))
}

// Invariant 3: iterating S yields S.size() distinct elements.
func TestInvariantIterationMatchesSize(t *testing.T) {
	ps := Create(testCfg(), []byte("1"))
	for _, v := range []string{"2", "3", "hello"} {
		ps.Add([]byte(v))
	}

	seen := map[string]struct{}{}
	it := ps.Iter()
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		var key string
		if e.IsInt {
			key = fmt.Sprintf("%d", e.Int)
		} else {
			key = string(e.Bytes)
		}
		_, dup := seen[key]
		assert.False(t, dup, "duplicate element from iterator: %s", key)
		seen[key] = struct{}{}
	}
	assert.Equal(t, ps.Size(), len(seen))
}

// Invariant 4: while INT, every element is integer-valued and size <= T_intmax.
func TestInvariantIntEncodingBounds(t *testing.T) {
	cfg := config.New(config.Config{IntMax: 4})
	ps := Create(cfg, []byte("1"))
	ps.Add([]byte("2"))
	ps.Add([]byte("3"))
	assert.Equal(t, EncodingInt, ps.Encoding())
	assert.LessOrEqual(t, ps.Size(), cfg.IntMax)

	ps.Add([]byte("4")) // now size 4, still <= IntMax
	assert.Equal(t, EncodingInt, ps.Encoding())

	ps.Add([]byte("5")) // size would be 5 > IntMax(4): promote
	assert.Equal(t, EncodingHash, ps.Encoding())
}

// Invariant 5: adding a non-integer-valued element to an INT set promotes it.
func TestInvariantNonIntPromotes(t *testing.T) {
	ps := Create(testCfg(), []byte("1"))
	require.Equal(t, EncodingInt, ps.Encoding())
	ps.Add([]byte("not-a-number"))
	assert.Equal(t, EncodingHash, ps.Encoding())
}

// Invariant 6: encoding is monotone, HASH never reverts to INT.
func TestInvariantMonotoneEncoding(t *testing.T) {
	ps := Create(testCfg(), []byte("1"))
	ps.Add([]byte("not-a-number"))
	ps.Remove([]byte("not-a-number"))
	ps.Remove([]byte("1"))
	assert.Equal(t, EncodingHash, ps.Encoding())
	assert.Equal(t, 0, ps.Size())
}

// Scenario S1.
func TestScenarioS1(t *testing.T) {
	cfg := config.New(config.Config{IntMax: 512})
	ps := Create(cfg, []byte("1"))
	ps.Add([]byte("2"))
	ps.Add([]byte("3"))
	assert.Equal(t, 3, ps.Size())
	assert.Equal(t, EncodingInt, ps.Encoding())

	for i := 4; i <= 513; i++ {
		ps.Add([]byte(fmt.Sprintf("%d", i)))
	}
	assert.Equal(t, 513, ps.Size())
	assert.Equal(t, EncodingHash, ps.Encoding())
}

// Scenario S2.
func TestScenarioS2(t *testing.T) {
	ps := Create(testCfg(), []byte("hello"))
	assert.Equal(t, 1, ps.Size())
	assert.Equal(t, EncodingHash, ps.Encoding())
	assert.True(t, ps.Contains([]byte("hello")))
	assert.False(t, ps.Contains([]byte("world")))
}

func TestContainsNonIntegerOnIntSetIsFalse(t *testing.T) {
	ps := Create(testCfg(), []byte("1"))
	assert.False(t, ps.Contains([]byte("abc")))
	assert.Equal(t, EncodingInt, ps.Encoding()) // contains must not promote
}

func TestRandomOneReturnsMember(t *testing.T) {
	ps := Create(testCfg(), []byte("1"))
	ps.Add([]byte("2"))
	ps.Add([]byte("3"))
	for i := 0; i < 20; i++ {
		assert.True(t, ps.Contains(ps.RandomOne()))
	}
}

func TestConvertToHashIdempotent(t *testing.T) {
	ps := Create(testCfg(), []byte("1"))
	ps.ConvertToHash()
	require.Equal(t, EncodingHash, ps.Encoding())
	ps.ConvertToHash() // no-op, must not panic
	assert.Equal(t, EncodingHash, ps.Encoding())
	assert.True(t, ps.Contains([]byte("1")))
}

func TestMaterializingIterMaterializesIntegers(t *testing.T) {
	ps := Create(testCfg(), []byte("7"))
	mi := ps.MaterializingIter()
	v, ok := mi.Next()
	require.True(t, ok)
	assert.Equal(t, []byte("7"), v)
	_, ok = mi.Next()
	assert.False(t, ok)
}

func TestLeadingZeroIsNotIntegerValued(t *testing.T) {
	ps := Create(testCfg(), []byte("007"))
	assert.Equal(t, EncodingHash, ps.Encoding())
}

func TestNegativeZeroIsNotIntegerValued(t *testing.T) {
	ps := Create(testCfg(), []byte("-0"))
	assert.Equal(t, EncodingHash, ps.Encoding())
}
