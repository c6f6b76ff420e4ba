package keyspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vpol/redis/internal/config"
	"github.com/vpol/redis/internal/setval"
	"go.uber.org/zap"
)

func TestLookupSetMissingReturnsNilNil(t *testing.T) {
	ks := New(zap.NewNop())
	ps, err := ks.LookupSet("nope")
	require.NoError(t, err)
	assert.Nil(t, ps)
}

func TestLookupSetWrongKind(t *testing.T) {
	ks := New(zap.NewNop())
	ks.BindOpaque("s", 42)
	_, err := ks.LookupSet("s")
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestBindAndUnbind(t *testing.T) {
	ks := New(zap.NewNop())
	ps := setval.Create(config.NewDefault(), []byte("1"))
	ks.BindSet("s", ps)

	got, err := ks.LookupSet("s")
	require.NoError(t, err)
	assert.Same(t, ps, got)

	assert.True(t, ks.Unbind("s"))
	assert.False(t, ks.Unbind("s"))

	got, err = ks.LookupSet("s")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReplaceSwapsBinding(t *testing.T) {
	ks := New(zap.NewNop())
	cfg := config.NewDefault()
	a := setval.Create(cfg, []byte("1"))
	b := setval.Create(cfg, []byte("2"))
	ks.BindSet("s", a)
	ks.Replace("s", b)

	got, err := ks.LookupSet("s")
	require.NoError(t, err)
	assert.Same(t, b, got)
}
