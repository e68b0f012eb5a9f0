// Package schema validates résumé documents against the record JSON Schema
// and checks scoring reports for internal consistency.
package schema

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/dshills/atscritic/internal/report"
	"github.com/dshills/atscritic/internal/resume"
	"github.com/dshills/atscritic/internal/scorer"
)

//go:embed record.schema.json
var recordSchema string

var recordLoader = gojsonschema.NewStringLoader(recordSchema)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// RecordSchema returns the embedded JSON Schema for résumé records.
func RecordSchema() string { return recordSchema }

// ValidateDocument checks raw record bytes against the record schema.
// It accepts exactly what resume.Decode accepts: null fields are absent
// fields, and YAML scalars of any kind are strings. A non-nil error means the document could not be parsed at all; schema
// violations are returned as the slice.
func ValidateDocument(data []byte, format resume.Format) ([]ValidationError, error) {
	var doc gojsonschema.JSONLoader
	switch format {
	case resume.FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("schema.ValidateDocument: %w", err)
		}
		if v == nil {
			v = map[string]any{}
		}
		doc = gojsonschema.NewGoLoader(stringifyScalars(v))
	default:
		doc = gojsonschema.NewBytesLoader(data)
	}

	result, err := gojsonschema.Validate(recordLoader, doc)
	if err != nil {
		return nil, fmt.Errorf("schema.ValidateDocument: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		errs = append(errs, ValidationError{Path: field, Message: desc.Description()})
	}
	return errs, nil
}

// stringifyScalars turns YAML numbers, booleans and timestamps into strings.
// yaml.v3 decodes any scalar into a string field, so the schema must see
// them the way the decoder does. Nulls, mappings and sequences keep their
// kind.
func stringifyScalars(v any) any {
	switch t := v.(type) {
	case nil, string:
		return t
	case map[string]any:
		for k, val := range t {
			t[k] = stringifyScalars(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringifyScalars(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = stringifyScalars(val)
		}
		return t
	default:
		return fmt.Sprint(t)
	}
}

// ValidateRecord combines schema validation of the raw document with field
// validation of the decoded record.
func ValidateRecord(doc *resume.Document) ([]ValidationError, error) {
	errs, err := ValidateDocument(doc.Raw, doc.Format)
	if err != nil {
		return nil, err
	}
	for _, fe := range resume.Validate(doc.Record) {
		errs = append(errs, ValidationError{Path: fe.Field, Message: fe.Message})
	}
	return errs, nil
}

// ValidateResult checks a scorer result for structural validity.
func ValidateResult(r scorer.Result) []ValidationError {
	var errs []ValidationError

	if r.Score < 0 || r.Score > scorer.StartScore {
		errs = append(errs, ValidationError{"score", fmt.Sprintf("out of range [0,%d]: %d", scorer.StartScore, r.Score)})
	}
	expected := scorer.ComputeScore(r.Findings)
	if r.Score != expected {
		errs = append(errs, ValidationError{"score", fmt.Sprintf("score %d does not match computed %d", r.Score, expected)})
	}
	if len(r.Feedback) != len(r.Findings) {
		errs = append(errs, ValidationError{"feedback", fmt.Sprintf("%d lines for %d findings", len(r.Feedback), len(r.Findings))})
	}

	seen := make(map[scorer.RuleID]bool)
	for i, f := range r.Findings {
		prefix := fmt.Sprintf("findings[%d]", i)
		if !f.Rule.Valid() {
			errs = append(errs, ValidationError{prefix + ".rule", fmt.Sprintf("invalid: %q", f.Rule)})
		} else if seen[f.Rule] {
			errs = append(errs, ValidationError{prefix + ".rule", fmt.Sprintf("duplicate rule: %q", f.Rule)})
		} else {
			seen[f.Rule] = true
		}
		if !f.Severity.Valid() {
			errs = append(errs, ValidationError{prefix + ".severity", fmt.Sprintf("invalid: %q", f.Severity)})
		}
		if f.Penalty <= 0 {
			errs = append(errs, ValidationError{prefix + ".penalty", "must be > 0"})
		}
		if f.Message == "" {
			errs = append(errs, ValidationError{prefix + ".message", "required"})
		}
		if i < len(r.Feedback) && r.Feedback[i] != f.Message {
			errs = append(errs, ValidationError{fmt.Sprintf("feedback[%d]", i), "does not match finding message"})
		}
	}
	if seen[scorer.RuleLengthShort] && seen[scorer.RuleLengthLong] {
		errs = append(errs, ValidationError{"findings", "length cannot be both short and long"})
	}
	return errs
}

// ValidateReport checks a report envelope and the result it carries.
func ValidateReport(r *report.Report) []ValidationError {
	var errs []ValidationError

	if r.Tool == "" {
		errs = append(errs, ValidationError{"tool", "required"})
	}
	if r.Version == "" {
		errs = append(errs, ValidationError{"version", "required"})
	}
	if r.ID == "" {
		errs = append(errs, ValidationError{"id", "required"})
	}
	if r.Input.Catalog == "" {
		errs = append(errs, ValidationError{"input.catalog", "required"})
	}
	if !r.Summary.Verdict.Valid() {
		errs = append(errs, ValidationError{"summary.verdict", fmt.Sprintf("invalid verdict: %q", r.Summary.Verdict)})
	}

	want := scorer.ComputeSummary(r.Result())
	if r.Summary.Verdict.Valid() && r.Summary.Verdict != want.Verdict {
		errs = append(errs, ValidationError{"summary.verdict", fmt.Sprintf("expected %s for score %d", want.Verdict, r.Summary.Score)})
	}
	if r.Summary.Penalty != want.Penalty {
		errs = append(errs, ValidationError{"summary.penalty", fmt.Sprintf("expected %d, got %d", want.Penalty, r.Summary.Penalty)})
	}
	if r.Summary.CriticalCount != want.CriticalCount {
		errs = append(errs, ValidationError{"summary.critical_count", fmt.Sprintf("expected %d, got %d", want.CriticalCount, r.Summary.CriticalCount)})
	}
	if r.Summary.WarnCount != want.WarnCount {
		errs = append(errs, ValidationError{"summary.warn_count", fmt.Sprintf("expected %d, got %d", want.WarnCount, r.Summary.WarnCount)})
	}
	if r.Summary.InfoCount != want.InfoCount {
		errs = append(errs, ValidationError{"summary.info_count", fmt.Sprintf("expected %d, got %d", want.InfoCount, r.Summary.InfoCount)})
	}

	for _, e := range ValidateResult(r.Result()) {
		if e.Path == "score" {
			e.Path = "summary.score"
		}
		errs = append(errs, e)
	}

	for i, p := range r.Patches {
		prefix := fmt.Sprintf("patches[%d]", i)
		if p.ID == "" {
			errs = append(errs, ValidationError{prefix + ".id", "required"})
		}
		if p.Field == "" {
			errs = append(errs, ValidationError{prefix + ".field", "required"})
		}
		if p.Line < 1 {
			errs = append(errs, ValidationError{prefix + ".line", "must be >= 1"})
		}
		if p.DiffUnified == "" {
			errs = append(errs, ValidationError{prefix + ".diff_unified", "required"})
		}
	}
	return errs
}
