package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/dshills/atscritic/internal/catalog"
	"github.com/dshills/atscritic/internal/keywords"
	"github.com/dshills/atscritic/internal/resume"
)

type keywordsFlags struct {
	pick   bool
	inject string
}

// pickRole asks the user to choose one of the catalog roles.
var pickRole = func(roles []string) (string, error) {
	prompt := promptui.Select{
		Label: "Target role",
		Items: roles,
		Size:  len(roles),
	}
	_, role, err := prompt.Run()
	return role, err
}

func newKeywordsCmd(a *app) *cobra.Command {
	f := &keywordsFlags{}

	cmd := &cobra.Command{
		Use:   "keywords [role]",
		Short: "Suggest keywords for a target role",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := strings.Join(args, " ")
			return runKeywords(a, role, f, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&f.pick, "pick", false, "Choose the role interactively")
	flags.StringVar(&f.inject, "inject", "", "Résumé file whose skills line receives the missing keywords")
	return cmd
}

func runKeywords(a *app, role string, f *keywordsFlags, w io.Writer) error {
	cat, err := a.catalog()
	if err != nil {
		return err
	}

	var doc *resume.Document
	if f.inject != "" {
		doc, err = resume.Load(f.inject)
		if err != nil {
			return exitError(exitInput, "failed to load résumé: %v", err)
		}
		if role == "" {
			role = doc.Record.TargetRole
		}
	}

	if role == "" && f.pick {
		role, err = pickRole(cat.Roles())
		if err != nil {
			return exitError(exitGeneric, "role selection cancelled: %v", err)
		}
	}
	if strings.TrimSpace(role) == "" {
		return exitError(exitGeneric, "a role is required (pass one, use --pick, or --inject a résumé with target_role)")
	}

	kws := keywords.Lookup(cat, role)
	if doc == nil {
		printKeywords(w, cat, role, kws)
		return nil
	}

	skills, added := keywords.Inject(doc.Record.Skills, kws)
	fmt.Fprintf(w, "skills: %s\n", skills)
	if len(added) == 0 {
		fmt.Fprintln(w, "added: (none)")
	} else {
		fmt.Fprintf(w, "added: %s\n", strings.Join(added, ", "))
	}
	return nil
}

func printKeywords(w io.Writer, cat *catalog.Catalog, role string, kws []string) {
	matched := keywords.Match(cat, role)
	if matched == "" {
		fmt.Fprintf(w, "no keyword set matches role %q\n", role)
		return
	}
	if !strings.EqualFold(matched, strings.TrimSpace(role)) {
		fmt.Fprintf(w, "# matched %q\n", matched)
	}
	for _, kw := range kws {
		fmt.Fprintln(w, kw)
	}
}
