package hugo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/chenyuan/blogsite/internal/linkverify"
)

// BuildOutcome is the final state of a build.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
	OutcomeSkipped  BuildOutcome = "skipped"
)

// ReportIssueCode enumerates machine-parseable issue identifiers. Codes are a
// stable contract: append only.
type ReportIssueCode string

const (
	IssueConfig              ReportIssueCode = "CONFIG"
	IssueUnknownTheme        ReportIssueCode = "UNKNOWN_THEME"
	IssueTranslations        ReportIssueCode = "TRANSLATIONS"
	IssueComponentRender     ReportIssueCode = "COMPONENT_RENDER"
	IssueHugoMissing         ReportIssueCode = "HUGO_MISSING"
	IssueHugoExecution       ReportIssueCode = "HUGO_EXECUTION"
	IssueBrokenLinks         ReportIssueCode = "BROKEN_LINKS"
	IssueBrokenMarkdownLinks ReportIssueCode = "BROKEN_MARKDOWN_LINKS"
	IssueCanceled            ReportIssueCode = "BUILD_CANCELED"
	IssueGenericStageError   ReportIssueCode = "GENERIC_STAGE_ERROR"
)

// IssueSeverity represents normalized severity levels.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// ReportIssue is a structured entry describing one problem.
type ReportIssue struct {
	Code      ReportIssueCode `json:"code"`
	Stage     StageName       `json:"stage"`
	Severity  IssueSeverity   `json:"severity"`
	Message   string          `json:"message"`
	Transient bool            `json:"transient"`
}

// StageCount aggregates outcomes for a stage.
type StageCount struct {
	Success  int `json:"success,omitempty"`
	Warning  int `json:"warning,omitempty"`
	Fatal    int `json:"fatal,omitempty"`
	Canceled int `json:"canceled,omitempty"`
	Skipped  int `json:"skipped,omitempty"`
}

// BuildReport captures what one build did.
type BuildReport struct {
	SchemaVersion int
	BuildID       string
	Trigger       string
	Snapshot      string
	Commit        string
	Locales       []string
	Start         time.Time
	End           time.Time

	Errors   []error // fatal errors (at most one today)
	Warnings []error

	StageDurations  map[StageName]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Issues          []ReportIssue

	Outcome BuildOutcome
	// SkipReason is set when the build stopped early, e.g. "no_changes".
	SkipReason string

	StaticRendered      bool
	Components          int
	MissingTranslations map[string]int
	BrokenLinks         []linkverify.BrokenLink
	LinksChecked        int
}

func newBuildReport(trigger string) *BuildReport {
	return &BuildReport{
		SchemaVersion:       1,
		BuildID:             uuid.NewString(),
		Trigger:             trigger,
		Start:               time.Now(),
		StageDurations:      make(map[StageName]time.Duration),
		StageErrorKinds:     make(map[StageName]StageErrorKind),
		StageCounts:         make(map[StageName]StageCount),
		MissingTranslations: make(map[string]int),
	}
}

// AddIssue appends a structured issue and mirrors err into Errors or Warnings.
func (r *BuildReport) AddIssue(code ReportIssueCode, stage StageName, severity IssueSeverity, msg string, transient bool, err error) {
	r.Issues = append(r.Issues, ReportIssue{Code: code, Stage: stage, Severity: severity, Message: msg, Transient: transient})
	if err == nil {
		return
	}
	switch severity {
	case SeverityError:
		r.Errors = append(r.Errors, err)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, err)
	}
}

// FailedStage returns the stage that aborted the build, if any.
func (r *BuildReport) FailedStage() StageName {
	for stage, kind := range r.StageErrorKinds {
		if kind == StageErrorFatal || kind == StageErrorCanceled {
			return stage
		}
	}
	return ""
}

func (r *BuildReport) finish() { r.End = time.Now() }

// Duration is End minus Start, or the time elapsed so far.
func (r *BuildReport) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	return fmt.Sprintf("build=%s outcome=%s duration=%s locales=%d stages=%d components=%d broken_links=%d errors=%d warnings=%d",
		r.BuildID, r.Outcome, r.Duration().Truncate(time.Millisecond), len(r.Locales), len(r.StageDurations),
		r.Components, len(r.BrokenLinks), len(r.Errors), len(r.Warnings))
}

// deriveOutcome sets Outcome from the recorded errors and warnings.
func (r *BuildReport) deriveOutcome() {
	switch {
	case r.SkipReason != "":
		r.Outcome = OutcomeSkipped
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
		for _, e := range r.Errors {
			if se, ok := e.(*StageError); ok && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				break
			}
		}
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Persist writes build-report.json and build-report.txt into root, each via a
// temp file and rename.
func (r *BuildReport) Persist(root string) error {
	if r.End.IsZero() {
		r.finish()
		r.deriveOutcome()
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return fmt.Errorf("ensure root for report: %w", err)
	}
	jb, err := json.MarshalIndent(r.serializable(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := writeAtomic(filepath.Join(root, ReportFile), jb); err != nil {
		return err
	}
	return writeAtomic(filepath.Join(root, "build-report.txt"), []byte(r.Summary()+"\n"))
}

// ReportFile is the JSON report name inside the output directory.
const ReportFile = "build-report.json"

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	// #nosec G306 -- build reports are not secret
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}

// BuildReportSerializable mirrors BuildReport with string errors and
// millisecond durations for JSON output.
type BuildReportSerializable struct {
	SchemaVersion       int                     `json:"schema_version"`
	BuildID             string                  `json:"build_id"`
	Trigger             string                  `json:"trigger,omitempty"`
	Snapshot            string                  `json:"snapshot"`
	Commit              string                  `json:"commit,omitempty"`
	Locales             []string                `json:"locales"`
	Start               time.Time               `json:"start"`
	End                 time.Time               `json:"end"`
	Outcome             BuildOutcome            `json:"outcome"`
	SkipReason          string                  `json:"skip_reason,omitempty"`
	Errors              []string                `json:"errors"`
	Warnings            []string                `json:"warnings"`
	Stages              []StageEntry            `json:"stages"`
	Issues              []ReportIssue           `json:"issues"`
	StaticRendered      bool                    `json:"static_rendered"`
	Components          int                     `json:"components"`
	MissingTranslations map[string]int          `json:"missing_translations"`
	LinksChecked        int                     `json:"links_checked"`
	BrokenLinks         []linkverify.BrokenLink `json:"broken_links"`
}

// StageEntry is one stage in the serialized report, in execution order.
type StageEntry struct {
	Name       StageName      `json:"name"`
	DurationMS int64          `json:"duration_ms"`
	Counts     StageCount     `json:"counts"`
	ErrorKind  StageErrorKind `json:"error_kind,omitempty"`
}

func (r *BuildReport) serializable() *BuildReportSerializable {
	s := &BuildReportSerializable{
		SchemaVersion:       r.SchemaVersion,
		BuildID:             r.BuildID,
		Trigger:             r.Trigger,
		Snapshot:            r.Snapshot,
		Commit:              r.Commit,
		Locales:             r.Locales,
		Start:               r.Start,
		End:                 r.End,
		Outcome:             r.Outcome,
		SkipReason:          r.SkipReason,
		Errors:              make([]string, len(r.Errors)),
		Warnings:            make([]string, len(r.Warnings)),
		Issues:              r.Issues,
		StaticRendered:      r.StaticRendered,
		Components:          r.Components,
		MissingTranslations: r.MissingTranslations,
		LinksChecked:        r.LinksChecked,
		BrokenLinks:         r.BrokenLinks,
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	if s.Issues == nil {
		s.Issues = []ReportIssue{}
	}
	if s.BrokenLinks == nil {
		s.BrokenLinks = []linkverify.BrokenLink{}
	}

	order := make(map[StageName]int)
	for i, st := range defaultStages() {
		order[st.Name] = i
	}
	for name, d := range r.StageDurations {
		s.Stages = append(s.Stages, StageEntry{
			Name:       name,
			DurationMS: d.Milliseconds(),
			Counts:     r.StageCounts[name],
			ErrorKind:  r.StageErrorKinds[name],
		})
	}
	sort.SliceStable(s.Stages, func(i, j int) bool { return order[s.Stages[i].Name] < order[s.Stages[j].Name] })
	if s.Stages == nil {
		s.Stages = []StageEntry{}
	}
	return s
}

// ReadReport loads a persisted JSON report.
func ReadReport(root string) (*BuildReportSerializable, error) {
	data, err := os.ReadFile(filepath.Join(filepath.Clean(root), ReportFile))
	if err != nil {
		return nil, err
	}
	var s BuildReportSerializable
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ReportFile, err)
	}
	return &s, nil
}
