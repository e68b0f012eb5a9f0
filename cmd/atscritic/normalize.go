package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dshills/atscritic/internal/normalize"
	"github.com/dshills/atscritic/internal/resume"
)

type normalizeFlags struct {
	record string
}

func newNormalizeCmd(a *app) *cobra.Command {
	f := &normalizeFlags{}

	cmd := &cobra.Command{
		Use:   "normalize [text]...",
		Short: "Strip non-ASCII characters and capitalize text",
		Long: "Normalizes the arguments joined by spaces, or each line of standard input " +
			"when no arguments are given. With --record, normalizes the free-text fields " +
			"of a résumé file and prints the record.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(a, args, f, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&f.record, "record", "", "Résumé file to normalize")
	return cmd
}

func runNormalize(a *app, args []string, f *normalizeFlags, in io.Reader, w io.Writer) error {
	if f.record != "" {
		return normalizeRecord(f.record, w)
	}

	if len(args) > 0 {
		fmt.Fprintln(w, normalize.Text(strings.Join(args, " ")))
		return nil
	}

	sc := bufio.NewScanner(in)
	n := 0
	for sc.Scan() {
		fmt.Fprintln(w, normalize.Text(sc.Text()))
		n++
	}
	if err := sc.Err(); err != nil {
		return exitError(exitInput, "failed to read input: %v", err)
	}
	a.log.Debug("normalized input", zap.Int("lines", n))
	return nil
}

func normalizeRecord(path string, w io.Writer) error {
	doc, err := resume.Load(path)
	if err != nil {
		return exitError(exitInput, "failed to load résumé: %v", err)
	}
	rec := normalize.Record(doc.Record)

	var data []byte
	if doc.Format == resume.FormatYAML {
		data, err = yaml.Marshal(rec)
	} else {
		data, err = json.MarshalIndent(rec, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	}
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	_, err = w.Write(data)
	return err
}
