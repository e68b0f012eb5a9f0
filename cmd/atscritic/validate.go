package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/atscritic/internal/resume"
	"github.com/dshills/atscritic/internal/schema"
)

type validateFlags struct {
	export      bool
	printSchema bool
}

func newValidateCmd(a *app) *cobra.Command {
	f := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate <resume-file>...",
		Short: "Check résumé records against the record schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.printSchema {
				fmt.Fprintln(cmd.OutOrStdout(), schema.RecordSchema())
				return nil
			}
			if len(args) == 0 {
				return exitError(exitGeneric, "at least one résumé file is required")
			}
			return runValidate(a, args, f, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&f.export, "export", false, "Also apply export checks (full_name required)")
	flags.BoolVar(&f.printSchema, "print-schema", false, "Print the record JSON Schema and exit")
	return cmd
}

func runValidate(a *app, paths []string, f *validateFlags, w io.Writer) error {
	failed := 0
	for _, path := range paths {
		doc, err := resume.Load(path)
		if err != nil {
			return exitError(exitInput, "failed to load résumé: %v", err)
		}
		problems, err := schema.ValidateRecord(doc)
		if err != nil {
			return exitError(exitInput, "%s: %v", path, err)
		}
		if f.export && len(problems) == 0 {
			for _, fe := range resume.ValidateForExport(doc.Record) {
				problems = append(problems, schema.ValidationError{Path: fe.Field, Message: fe.Message})
			}
		}

		if len(problems) == 0 {
			fmt.Fprintf(w, "%s: ok\n", path)
			continue
		}
		failed++
		fmt.Fprintf(w, "%s: %d problem(s)\n", path, len(problems))
		for _, p := range problems {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
	a.log.Debug("validation finished", zap.Int("files", len(paths)), zap.Int("failed", failed))

	if failed > 0 {
		return exitError(exitValidation, "%d of %d file(s) failed validation", failed, len(paths))
	}
	return nil
}
