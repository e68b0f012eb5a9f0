package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/atscritic/internal/batch"
	"github.com/dshills/atscritic/internal/logger"
	"github.com/dshills/atscritic/internal/patch"
	"github.com/dshills/atscritic/internal/render"
	"github.com/dshills/atscritic/internal/report"
	"github.com/dshills/atscritic/internal/resume"
	"github.com/dshills/atscritic/internal/schema"
)

type scoreFlags struct {
	out      string
	patchOut string
	role     string
	preview  bool
}

func newScoreCmd(a *app) *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score <resume-file>...",
		Short: "Score one or more résumé records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), a, args, f, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("format", "json", "Output format: json, md or text")
	flags.Int("fail-under", 0, "Exit non-zero if any score is below this value")
	flags.Int("parallel", 0, "Concurrent evaluations (default: number of CPUs)")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.patchOut, "patch-out", "", "Write weak-phrase rewrites as unified diff")
	flags.StringVar(&f.role, "role", "", "Target role for keyword suggestions (default: the record's target_role)")
	flags.BoolVar(&f.preview, "preview", false, "Append a plain-text preview of each résumé (md and text formats)")
	bind(a.v, "format", flags.Lookup("format"))
	bind(a.v, "fail-under", flags.Lookup("fail-under"))
	bind(a.v, "parallel", flags.Lookup("parallel"))

	return cmd
}

func runScore(ctx context.Context, a *app, paths []string, f *scoreFlags, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := a.cfg

	// 1. Catalog
	s, err := a.scorer()
	if err != nil {
		return err
	}

	// 2. Load records
	a.log.Debug("loading records", zap.Int("count", len(paths)))
	docs, err := batch.LoadFiles(ctx, paths, cfg.Parallel)
	if err != nil {
		return exitError(exitInput, "failed to load résumé: %v", err)
	}

	// 3. Validate input. Structural problems stop the run; field problems
	// are reported and scoring continues.
	for _, doc := range docs {
		problems, err := schema.ValidateDocument(doc.Raw, doc.Format)
		if err != nil {
			return exitError(exitInput, "%s: %v", doc.FilePath, err)
		}
		if len(problems) > 0 {
			for _, p := range problems {
				a.log.Error("schema violation",
					zap.String(logger.FieldFile, doc.FilePath),
					zap.String("path", p.Path),
					zap.String("problem", p.Message))
			}
			return exitError(exitValidation, "%s: record failed schema validation (%d problem(s))", doc.FilePath, len(problems))
		}
		for _, fe := range resume.Validate(doc.Record) {
			a.log.Warn("field check failed",
				zap.String(logger.FieldFile, doc.FilePath),
				zap.String("field", fe.Field),
				zap.String("problem", fe.Message))
		}
	}

	// 4. Score
	reports, err := batch.Reports(ctx, s, batch.JobsFromDocuments(docs), batch.Options{
		Limit:  cfg.Parallel,
		Logger: a.log,
		Report: report.Options{
			Version: version,
			Role:    f.role,
			Patches: f.patchOut != "",
		},
	})
	if err != nil {
		return exitError(exitGeneric, "scoring failed: %v", err)
	}

	// 5. Self-check
	for _, r := range reports {
		if errs := schema.ValidateReport(r); len(errs) > 0 {
			for _, e := range errs {
				a.log.Error("report check failed", zap.String(logger.FieldFile, r.Input.File), zap.String("problem", e.Error()))
			}
			return exitError(exitValidation, "%s: generated report failed validation", r.Input.File)
		}
	}

	// 6. Output
	output, err := formatReports(reports, docs, cfg.Format, f.preview)
	if err != nil {
		return err
	}
	if f.out != "" {
		a.log.Debug("writing output", zap.String("path", f.out))
		if err := os.WriteFile(f.out, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprint(w, output)
	}

	// 7. Patch output
	if f.patchOut != "" {
		var all []patch.Patch
		for _, r := range reports {
			all = append(all, r.Patches...)
		}
		a.log.Debug("writing patches", zap.String("path", f.patchOut), zap.Int("count", len(all)))
		if err := patch.WritePatchFile(all, f.patchOut); err != nil {
			return fmt.Errorf("failed to write patches: %w", err)
		}
	}

	// 8. Exit code based on --fail-under
	if cfg.FailUnder > 0 {
		for _, r := range reports {
			if r.Summary.Score < cfg.FailUnder {
				return exitError(exitFailUnder, "%s: score %d is below %d", r.Input.File, r.Summary.Score, cfg.FailUnder)
			}
		}
	}
	return nil
}

// formatReports renders reports in the requested format. A single report is
// emitted as a JSON object, several as an array.
func formatReports(reports []*report.Report, docs []*resume.Document, format string, preview bool) (string, error) {
	switch format {
	case "json":
		var v any = reports
		if len(reports) == 1 {
			v = reports[0]
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal output: %w", err)
		}
		return string(data) + "\n", nil
	case "md":
		parts := make([]string, len(reports))
		for i, r := range reports {
			parts[i] = render.Markdown(r)
			if preview {
				parts[i] += "## Preview\n\n```text\n" + render.Preview(docs[i].Record) + "```\n"
			}
		}
		return strings.Join(parts, "\n---\n\n"), nil
	case "text":
		var b strings.Builder
		for i, r := range reports {
			b.WriteString(render.Text(r))
			if preview {
				b.WriteString("\n")
				b.WriteString(render.Preview(docs[i].Record))
				b.WriteString("\n")
			}
		}
		return b.String(), nil
	default:
		return "", exitError(exitInput, "unknown format: %s", format)
	}
}
