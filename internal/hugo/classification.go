package hugo

import (
	stderrors "errors"
	"fmt"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying the failing stage and its cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Transient reports whether rerunning the build could succeed without user action.
func (e *StageError) Transient() bool {
	if e == nil || e.Kind == StageErrorCanceled {
		return false
	}
	if ce, ok := errors.AsClassified(e.Err); ok {
		return ce.Transient()
	}
	return false
}

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// StageOutcome is the normalized result of one stage.
type StageOutcome struct {
	Stage     StageName
	Error     *StageError
	Result    StageResult
	IssueCode ReportIssueCode
	Severity  IssueSeverity
	Transient bool
	Abort     bool
}

// classifyStageResult converts a raw stage error into a StageOutcome. Errors
// that are not StageErrors are fatal; classified errors of warning severity
// are downgraded to warnings.
func classifyStageResult(stage StageName, err error) StageOutcome {
	if err == nil {
		return StageOutcome{Stage: stage, Result: StageResultSuccess}
	}

	var se *StageError
	if !stderrors.As(err, &se) {
		if errors.HasSeverity(err, errors.SeverityWarning) {
			se = newWarnStageError(stage, err)
		} else {
			se = newFatalStageError(stage, err)
		}
	}

	out := StageOutcome{
		Stage:     stage,
		Error:     se,
		IssueCode: classifyIssueCode(se),
		Transient: se.Transient(),
	}
	switch se.Kind {
	case StageErrorWarning:
		out.Result = StageResultWarning
		out.Severity = SeverityWarning
	case StageErrorCanceled:
		out.Result = StageResultCanceled
		out.Severity = SeverityError
		out.IssueCode = IssueCanceled
		out.Abort = true
	default:
		out.Result = StageResultFatal
		out.Severity = SeverityError
		out.Abort = true
	}
	return out
}

func classifyIssueCode(se *StageError) ReportIssueCode {
	switch {
	case stderrors.Is(se.Err, ErrHugoNotFound):
		return IssueHugoMissing
	case stderrors.Is(se.Err, ErrHugoExecution):
		return IssueHugoExecution
	case stderrors.Is(se.Err, ErrBrokenLinks):
		return IssueBrokenLinks
	case stderrors.Is(se.Err, ErrBrokenSourceLinks):
		return IssueBrokenMarkdownLinks
	case stderrors.Is(se.Err, ErrUnknownTheme):
		return IssueUnknownTheme
	case stderrors.Is(se.Err, ErrComponentRender):
		return IssueComponentRender
	}
	switch errors.CategoryOf(se.Err) {
	case errors.CategoryI18n:
		return IssueTranslations
	case errors.CategoryConfig, errors.CategoryValidation:
		return IssueConfig
	}
	return IssueGenericStageError
}
