package colormode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	m, err := Parse("DARK")
	require.NoError(t, err)
	assert.Equal(t, Dark, m)

	m, err = Parse("")
	require.NoError(t, err)
	assert.Equal(t, Light, m)

	_, err = Parse("sepia")
	assert.Error(t, err)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, Light, Dark.Toggle())
	assert.Equal(t, Dark, Light.Toggle())
}

func TestPreference(t *testing.T) {
	assert.Equal(t, Light, Preference{}.Initial())
	assert.Equal(t, Dark, Preference{DefaultMode: Dark}.Initial())
	assert.Equal(t, "system", Preference{RespectPrefersColorScheme: true}.HugoThemeDefault())
	assert.Equal(t, "dark", Preference{DefaultMode: Dark}.HugoThemeDefault())
}
