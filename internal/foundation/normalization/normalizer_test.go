package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position string

const (
	left  position = "left"
	right position = "right"
)

func newPositions() *Normalizer[position] {
	return NewNormalizer("position", map[string]position{"left": left, "right": right}, left)
}

func TestNormalize(t *testing.T) {
	n := newPositions()
	assert.Equal(t, right, n.Normalize(" RIGHT "))
	assert.Equal(t, left, n.Normalize("nonsense"))
	assert.Equal(t, left, n.Normalize(""))
}

func TestParse(t *testing.T) {
	n := newPositions()

	v, err := n.Parse("Right")
	require.NoError(t, err)
	assert.Equal(t, right, v)

	v, err = n.Parse("")
	require.NoError(t, err)
	assert.Equal(t, left, v)

	_, err = n.Parse("center")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid position "center"`)
	assert.Contains(t, err.Error(), "left, right")
}

func TestFoldCollapsesSeparators(t *testing.T) {
	assert.Equal(t, "localedropdown", Fold("localeDropdown"))
	assert.Equal(t, "localedropdown", Fold("locale-dropdown"))
	assert.Equal(t, "localedropdown", Fold(" LOCALE_DROPDOWN "))
}

func TestValidAndKeys(t *testing.T) {
	n := newPositions()
	assert.True(t, n.Valid(right))
	assert.False(t, n.Valid(position("up")))

	keys := n.ValidKeys()
	assert.Equal(t, []string{"left", "right"}, keys)
	keys[0] = "mutated"
	assert.Equal(t, []string{"left", "right"}, n.ValidKeys())
}
