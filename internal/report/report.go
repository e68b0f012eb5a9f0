// Package report assembles the output envelope for one scored résumé.
package report

import (
	"github.com/google/uuid"

	"github.com/dshills/atscritic/internal/keywords"
	"github.com/dshills/atscritic/internal/patch"
	"github.com/dshills/atscritic/internal/resume"
	"github.com/dshills/atscritic/internal/scorer"
)

// Tool is the name stamped into every report.
const Tool = "atscritic"

// Report is the top-level output object.
type Report struct {
	Tool     string           `json:"tool"`
	Version  string           `json:"version"`
	ID       string           `json:"id"`
	Input    Input            `json:"input"`
	Summary  scorer.Summary   `json:"summary"`
	Feedback []string         `json:"feedback"`
	Findings []scorer.Finding `json:"findings"`
	Stats    scorer.Stats     `json:"stats"`
	Patches  []patch.Patch    `json:"patches,omitempty"`
	Keywords *Keywords        `json:"keywords,omitempty"`
}

// Input describes the record and catalog used for the evaluation.
type Input struct {
	File    string `json:"file,omitempty"`
	Hash    string `json:"hash,omitempty"`
	Catalog string `json:"catalog"`
}

// Keywords holds role keyword suggestions for the record.
type Keywords struct {
	Role      string   `json:"role"`
	Matched   string   `json:"matched,omitempty"`
	Suggested []string `json:"suggested"`
	Missing   []string `json:"missing"`
}

// Options controls the optional parts of a report.
type Options struct {
	Version string
	File    string
	Hash    string
	// Role selects keyword suggestions. When empty the record's target_role
	// is used; when both are empty no keyword section is added.
	Role    string
	Patches bool
}

// Build evaluates rec and wraps the result in a report.
func Build(s *scorer.Scorer, rec resume.Record, opts Options) *Report {
	return FromResult(s, rec, s.Evaluate(rec), opts)
}

// FromResult wraps a result already computed by s for rec. Patches and
// keyword suggestions are derived from rec and the scorer's catalog.
func FromResult(s *scorer.Scorer, rec resume.Record, res scorer.Result, opts Options) *Report {
	cat := s.Catalog()

	r := &Report{
		Tool:    Tool,
		Version: opts.Version,
		ID:      uuid.NewString(),
		Input: Input{
			File:    opts.File,
			Hash:    opts.Hash,
			Catalog: cat.Name,
		},
		Summary:  scorer.ComputeSummary(res),
		Feedback: res.Feedback,
		Findings: res.Findings,
		Stats:    res.Stats,
	}

	if opts.Patches {
		file := opts.File
		if file == "" {
			file = "resume"
		}
		r.Patches = patch.Suggest(file, rec, cat.Weak())
	}

	role := opts.Role
	if role == "" {
		role = rec.TargetRole
	}
	if role != "" {
		suggested := keywords.Lookup(cat, role)
		_, missing := keywords.Inject(rec.Skills, suggested)
		r.Keywords = &Keywords{
			Role:      role,
			Matched:   keywords.Match(cat, role),
			Suggested: suggested,
			Missing:   missing,
		}
	}
	return r
}

// Result reconstructs the scorer result carried by the report.
func (r *Report) Result() scorer.Result {
	return scorer.Result{
		Score:    r.Summary.Score,
		Feedback: r.Feedback,
		Findings: r.Findings,
		Stats:    r.Stats,
	}
}
