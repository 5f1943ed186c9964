package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
)

// ClassifiedError is an error with a category, a severity and structured
// attributes for logging.
type ClassifiedError struct {
	category  ErrorCategory
	severity  ErrorSeverity
	transient bool
	message   string
	cause     error
	attrs     []slog.Attr
}

func (e *ClassifiedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.category, e.severity, e.message, e.cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.category, e.severity, e.message)
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }
func (e *ClassifiedError) Message() string         { return e.message }
func (e *ClassifiedError) IsFatal() bool           { return e.severity == SeverityFatal }

// Transient reports whether retrying without user action may succeed.
func (e *ClassifiedError) Transient() bool { return e.transient }

// Attrs returns the attributes attached with WithContext, in order.
func (e *ClassifiedError) Attrs() []slog.Attr { return append([]slog.Attr(nil), e.attrs...) }

// Attr looks up an attribute by key.
func (e *ClassifiedError) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return slog.Value{}, false
}

// WithContext returns a copy carrying one more attribute.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	cp := *e
	cp.attrs = append(e.Attrs(), slog.Any(key, value))
	return &cp
}

// Wrap starts a new error that looks like e (category, severity, message)
// but wraps cause. Sentinels use it so errors.Is keeps matching.
func (e *ClassifiedError) Wrap(cause error) *ErrorBuilder {
	b := WrapError(cause, e.category, e.message).WithSeverity(e.severity)
	b.err.transient = e.transient
	return b
}

// Is matches on category and message.
func (e *ClassifiedError) Is(target error) bool {
	if other, ok := target.(*ClassifiedError); ok {
		return e.category == other.category && e.message == other.message
	}
	return false
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

func IsClassified(err error) bool {
	_, ok := AsClassified(err)
	return ok
}

// HasCategory checks the first classified error in the chain.
func HasCategory(err error, category ErrorCategory) bool {
	ce, ok := AsClassified(err)
	return ok && ce.category == category
}

// HasSeverity checks the first classified error in the chain.
func HasSeverity(err error, severity ErrorSeverity) bool {
	ce, ok := AsClassified(err)
	return ok && ce.severity == severity
}

// CategoryOf returns err's category, or CategoryInternal for unclassified errors.
func CategoryOf(err error) ErrorCategory {
	if ce, ok := AsClassified(err); ok {
		return ce.category
	}
	return CategoryInternal
}
