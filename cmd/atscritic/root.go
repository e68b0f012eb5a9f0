package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dshills/atscritic/internal/catalog"
	"github.com/dshills/atscritic/internal/config"
	"github.com/dshills/atscritic/internal/logger"
	"github.com/dshills/atscritic/internal/scorer"
)

// app carries the state shared by every subcommand once configuration has
// been resolved.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
	cat     *catalog.Catalog
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "atscritic",
		Short:         "Score résumés against deterministic ATS heuristics",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Config file (default: atscritic.yaml in the working directory)")
	pf.String("catalog", catalog.DefaultName, "Rule catalog: builtin name or path to a YAML file")
	pf.BoolP("debug", "d", false, "Debug logging")
	pf.BoolP("json-log", "j", false, "JSON log output")
	bind(a.v, "catalog", pf.Lookup("catalog"))
	bind(a.v, "log.debug", pf.Lookup("debug"))
	bind(a.v, "log.json", pf.Lookup("json-log"))

	root.AddCommand(
		newScoreCmd(a),
		newKeywordsCmd(a),
		newNormalizeCmd(a),
		newValidateCmd(a),
		newCatalogCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init() error {
	if err := config.LoadDotEnv(); err != nil {
		return exitError(exitInput, "%v", err)
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return exitError(exitInput, "%v", err)
	}
	a.cfg = cfg

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return exitError(exitGeneric, "failed to build logger: %v", err)
	}
	a.log = log
	return nil
}

// catalog loads the configured catalog once.
func (a *app) catalog() (*catalog.Catalog, error) {
	if a.cat != nil {
		return a.cat, nil
	}
	c, err := catalog.Load(a.cfg.Catalog)
	if err != nil {
		return nil, exitError(exitInput, "failed to load catalog: %v", err)
	}
	a.log.Debug("catalog loaded", logger.InputFields("", c.Name)...)
	a.cat = c
	return c, nil
}

func (a *app) scorer() (*scorer.Scorer, error) {
	c, err := a.catalog()
	if err != nil {
		return nil, err
	}
	return scorer.New(c), nil
}
