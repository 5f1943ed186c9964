package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrKeys(t *testing.T) {
	tests := []struct {
		attr slog.Attr
		key  string
	}{
		{BuildID("b1"), KeyBuildID},
		{Stage("generate_config"), KeyStage},
		{DurationMS(1.5), KeyDurationMS},
		{Locale("zh-Hans"), KeyLocale},
		{Path("/tmp/site"), KeyPath},
		{Component("features"), KeyComponent},
		{MessageKey("homepage.features.about.title"), KeyMessageKey},
		{Count(3), KeyCount},
		{URL("https://giscus.app"), KeyURL},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, tt.attr.Key)
	}
}

func TestErrorAttr(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
