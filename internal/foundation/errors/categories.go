package errors

// ErrorCategory says which part of a build failed. The CLI maps it to an exit code.
type ErrorCategory string

const (
	// Input the user controls.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryI18n       ErrorCategory = "i18n"
	CategoryNotFound   ErrorCategory = "not_found"

	// Outside systems.
	CategoryNetwork ErrorCategory = "network"
	CategoryEmbed   ErrorCategory = "embed"
	CategoryGit     ErrorCategory = "git"

	// Producing the site.
	CategoryRender     ErrorCategory = "render"
	CategoryHugo       ErrorCategory = "hugo"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryLinks      ErrorCategory = "links"
	CategoryEventStore ErrorCategory = "eventstore"

	CategoryInternal ErrorCategory = "internal"
)

var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryNotFound:   4,
	CategoryConfig:     7,
	CategoryI18n:       7,
	CategoryNetwork:    8,
	CategoryEmbed:      8,
	CategoryGit:        8,
	CategoryInternal:   10,
	CategoryRender:     11,
	CategoryHugo:       11,
	CategoryFileSystem: 11,
	CategoryLinks:      11,
	CategoryEventStore: 12,
}

// ExitCode is the process status for a failure of this category; unknown
// categories exit 1.
func (c ErrorCategory) ExitCode() int {
	if code, ok := exitCodes[c]; ok {
		return code
	}
	return 1
}

// ErrorSeverity decides whether a build stops.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning" // the build continues
	SeverityInfo    ErrorSeverity = "info"
)
