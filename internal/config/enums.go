package config

import (
	"log/slog"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// SlogLevel maps the level onto slog.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// LinkPolicy decides what a broken link does to the build.
type LinkPolicy string

const (
	LinkPolicyThrow  LinkPolicy = "throw"
	LinkPolicyWarn   LinkPolicy = "warn"
	LinkPolicyIgnore LinkPolicy = "ignore"
)

var linkPolicyNormalizer = normalization.NewNormalizer("link policy", map[string]LinkPolicy{
	"throw":  LinkPolicyThrow,
	"error":  LinkPolicyThrow,
	"warn":   LinkPolicyWarn,
	"log":    LinkPolicyWarn,
	"ignore": LinkPolicyIgnore,
}, LinkPolicyWarn)

// ParseLinkPolicy converts raw into a LinkPolicy; empty input yields warn.
func ParseLinkPolicy(raw string) (LinkPolicy, error) { return linkPolicyNormalizer.Parse(raw) }
