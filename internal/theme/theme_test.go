package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tree-scene/internal/config"
)

func TestParseDefaultTheme(t *testing.T) {
	p, err := Parse(config.Default().Theme)
	require.NoError(t, err)
	assert.Equal(t, "classic", p.Name)
	// #0f5132
	assert.EqualValues(t, 0x0f, p.Foliage[0].R)
	assert.EqualValues(t, 0x51, p.Foliage[0].G)
	assert.EqualValues(t, 0x32, p.Foliage[0].B)
	assert.EqualValues(t, 255, p.Foliage[0].A)
}

func TestParseRejectsBadHex(t *testing.T) {
	th := config.Default().Theme
	th.Light = "not-a-color"
	_, err := Parse(th)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "light")
}

func TestBuiltinsAllParse(t *testing.T) {
	names := BuiltinNames()
	require.NotEmpty(t, names)
	for _, name := range names {
		th, ok := Builtin(name)
		require.True(t, ok, name)
		assert.Equal(t, name, th.Name)
		_, err := Parse(th)
		assert.NoError(t, err, name)
	}
}

func TestBuiltinUnknownName(t *testing.T) {
	_, ok := Builtin("neon")
	assert.False(t, ok)
}

func TestLightAtBrightness(t *testing.T) {
	p, err := Parse(config.Default().Theme)
	require.NoError(t, err)

	dark := p.LightAtBrightness(0)
	assert.EqualValues(t, 0, dark.R)
	assert.EqualValues(t, 0, dark.G)
	assert.EqualValues(t, 0, dark.B)
	assert.EqualValues(t, 255, dark.A)

	full := p.LightAtBrightness(1)
	assert.Equal(t, p.Light.R, full.R)

	// Out-of-range brightness clamps instead of wrapping the byte math.
	assert.Equal(t, full, p.LightAtBrightness(3))
	assert.Equal(t, dark, p.LightAtBrightness(-1))
}
