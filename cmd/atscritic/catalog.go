package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/atscritic/internal/catalog"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect rule catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List builtin catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalogList(cmd.OutOrStdout())
		},
	})

	var asYAML bool
	show := &cobra.Command{
		Use:   "show [name-or-path]",
		Short: "Show a catalog (default: the configured one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			return runCatalogShow(a, ref, asYAML, cmd.OutOrStdout())
		},
	}
	show.Flags().BoolVar(&asYAML, "yaml", false, "Print the catalog as YAML")
	cmd.AddCommand(show)

	return cmd
}

func runCatalogList(w io.Writer) error {
	names, err := catalog.List()
	if err != nil {
		return fmt.Errorf("failed to list catalogs: %w", err)
	}
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
	return nil
}

func runCatalogShow(a *app, ref string, asYAML bool, w io.Writer) error {
	var (
		c   *catalog.Catalog
		err error
	)
	if ref == "" {
		c, err = a.catalog()
	} else if c, err = catalog.Load(ref); err != nil {
		err = exitError(exitInput, "failed to load catalog: %v", err)
	}
	if err != nil {
		return err
	}

	if !asYAML {
		fmt.Fprint(w, catalog.Format(c))
		return nil
	}
	data, err := catalog.MarshalYAML(c)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
