package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUsesInjectedValues(t *testing.T) {
	origV, origC, origT := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = origV, origC, origT })

	Version, GitCommit, BuildTime = "v1.2.3", "0123456789abcdef0123", "2026-01-02T03:04:05Z"
	info := Get()
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "0123456789abcdef0123", info.Commit)
	assert.Equal(t, "blogsite v1.2.3 (0123456789ab) built 2026-01-02T03:04:05Z", info.String())
}

func TestStringWithoutMetadata(t *testing.T) {
	assert.Equal(t, "blogsite dev", Info{Version: "dev"}.String())
}
