package errors

import "log/slog"

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of the given category with SeverityError.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{category: category, severity: SeverityError, message: message}}
}

// WrapError is NewError with a cause.
func WrapError(cause error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(cause)
}

func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

// WithContext attaches a log attribute.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.attrs = append(b.err.attrs, slog.Any(key, value))
	return b
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder   { return b.WithSeverity(SeverityFatal) }
func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }

// Transient marks the failure as worth retrying.
func (b *ErrorBuilder) Transient() *ErrorBuilder {
	b.err.transient = true
	return b
}

func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	e.attrs = append([]slog.Attr(nil), b.err.attrs...)
	return &e
}

// ConfigError aborts the build: the site configuration cannot be used.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

// RenderError is a failure rendering the feature list or comment widget.
func RenderError(message string) *ErrorBuilder {
	return NewError(CategoryRender, message).Fatal()
}

// EmbedError reports a comment binding that does not match its repository.
func EmbedError(message string) *ErrorBuilder {
	return NewError(CategoryEmbed, message)
}

func NetworkError(message string) *ErrorBuilder {
	return NewError(CategoryNetwork, message).Transient()
}

func HugoError(message string) *ErrorBuilder {
	return NewError(CategoryHugo, message).Fatal()
}

func FileSystemError(message string) *ErrorBuilder {
	return NewError(CategoryFileSystem, message).Transient()
}

func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}

// EventStoreError is a build history failure. History never fails a build.
func EventStoreError(message string) *ErrorBuilder {
	return NewError(CategoryEventStore, message)
}

// LinkError reports broken links in sources or rendered pages.
func LinkError(message string) *ErrorBuilder {
	return NewError(CategoryLinks, message)
}

func GitError(message string) *ErrorBuilder {
	return NewError(CategoryGit, message)
}
