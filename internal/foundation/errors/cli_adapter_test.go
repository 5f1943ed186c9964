package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("x"), 1},
		{"validation", ValidationError("v").Build(), 2},
		{"config", ConfigError("c").Build(), 7},
		{"embed", EmbedError("e").Build(), 8},
		{"hugo", HugoError("h").Build(), 11},
		{"links", LinkError("broken").Build(), 11},
		{"internal", InternalError("i").Build(), 10},
		{"unknown category", NewError("mystery", "m").Build(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)

	internal := InternalError("nil pointer in renderer").Build()
	assert.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(internal))
	assert.Contains(t, verbose.FormatError(internal), "nil pointer in renderer")

	cfg := ConfigError("locale list is empty").Build()
	assert.Contains(t, quiet.FormatError(cfg), "locale list is empty")
	assert.Equal(t, "Error: boom", quiet.FormatError(errors.New("boom")))
	assert.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	a := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	a.out = &out
	code := -1
	a.exit = func(c int) { code = c }

	a.HandleError(LinkError("broken links").WithContext("count", 3).Build())

	assert.Equal(t, 11, code)
	assert.Contains(t, out.String(), "broken links")
	assert.Contains(t, logs.String(), "category=links")
	assert.Contains(t, logs.String(), "count=3")
}
