// Package cli implements the ecometer command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ecometer/ecometer/internal/config"
	"github.com/ecometer/ecometer/internal/engine"
	"github.com/ecometer/ecometer/internal/geocode"
	"github.com/ecometer/ecometer/internal/refdata"
)

// app carries the state shared by subcommands after the persistent pre-run
// has loaded configuration and the reference dataset.
type app struct {
	cfg       *config.Config
	dataset   *refdata.Dataset
	engine    *engine.Engine
	gazetteer *geocode.SQLiteGazetteer // retained for cleanup; nil for the built-in gazetteer
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root cobra command for the ecometer CLI.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:     "ecometer",
		Short:   "Estimate product eco-scores",
		Long:    "EcoMeter: estimate a product's CO2e footprint and eco-grade from partial product data and a delivery postcode",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.gazetteer != nil {
				return a.gazetteer.Close()
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $HOME/.ecometer/config.yaml)")
	cmd.PersistentFlags().String("dataset", "", "reference dataset file (default: embedded dataset)")
	cmd.PersistentFlags().String("gazetteer", "", "sqlite postcode gazetteer (default: built-in UK districts)")

	cmd.AddCommand(newScoreCmd(a), newBatchCmd(a), newDatasetCmd(a))

	return cmd
}

// setup loads config, logging, the reference dataset, and the gazetteer, in
// that order. Dataset and gazetteer flags override the config file.
func (a *app) setup(cmd *cobra.Command) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	explicit := cfgPath != ""
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath, explicit)
	if err != nil {
		return err
	}
	a.cfg = cfg

	setupLogging(cmd, cfg)

	datasetPath, _ := cmd.Flags().GetString("dataset")
	if datasetPath == "" {
		datasetPath = cfg.Dataset
	}
	if datasetPath != "" {
		a.dataset, err = refdata.LoadFile(datasetPath)
	} else {
		a.dataset, err = refdata.Load()
	}
	if err != nil {
		return fmt.Errorf("load reference dataset: %w", err)
	}

	var geocoder geocode.Geocoder
	gazPath, _ := cmd.Flags().GetString("gazetteer")
	if gazPath == "" {
		gazPath = cfg.Gazetteer.SQLite
	}
	if gazPath != "" {
		gaz, gazErr := geocode.OpenSQLite(gazPath)
		if gazErr != nil {
			return gazErr
		}
		a.gazetteer = gaz
		geocoder = gaz
	} else {
		geocoder = geocode.BuiltinUK()
	}

	a.engine = engine.New(a.dataset, geocoder)
	return nil
}

const rootCmdExample = `  # Score a single product
  ecometer score --title "Apple iPhone 14 Pro" --origin china --postcode "SW1A 1AA"

  # Score with a known composition and weight
  ecometer score --title "Slim jeans" --composition "cotton:0.59,polyester:0.41" \
    --weight 0.6 --origin bangladesh --postcode "M1 4BT"

  # Fold in model predictions
  ecometer score --title "Oak desk" --postcode "EH1 1YZ" --predictions preds.yaml

  # Score a catalog export
  ecometer batch --input products.ndjson --interactive

  # Validate an updated reference dataset before shipping it
  ecometer dataset validate --dataset data/v1.3.yaml`
