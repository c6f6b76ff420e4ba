package diagnostics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vpol/redis/internal/config"
	"github.com/vpol/redis/internal/setval"
)

func TestSdumpMissingSet(t *testing.T) {
	out := Sdump("nope", nil)
	assert.Contains(t, out, "<missing>")
}

func TestSdumpIncludesEncodingAndValues(t *testing.T) {
	ps := setval.Create(config.NewDefault(), []byte("7"))
	ps.Add([]byte("9"))

	out := Sdump("myset", ps)
	assert.True(t, strings.Contains(out, "encoding=int"))
	assert.True(t, strings.Contains(out, "size=2"))
}
