package main

import (
	"fmt"
	"io"

	"github.com/shamank/entitrack-sdk-go/pkg/config"
	"github.com/shamank/entitrack-sdk-go/pkg/sdk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the flags shared by every subcommand and the Core built from
// them before a subcommand runs.
type app struct {
	out        io.Writer
	configPath string
	debug      bool
	output     string
	core       *sdk.Core
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "entitrack",
		Short: "Named-entity recognition with hosted and trained models",
		Long: `Talk to an EntiTrack backend: list Gen AI models, run hosted NER,
train spaCy models from CSV files and run NER with them.

Configuration is read from ./entitrack.yaml (or --config) and can be
overridden with ENTITRACK_* environment variables.

Examples:
  entitrack models --api-key $KEY
  entitrack ner --api-key $KEY --field CITY "221 B Baker Street London"
  entitrack train addresses.csv --column address --description "UK addresses"
  entitrack sessions list
  entitrack ner-trained <session-id> "10 Downing Street London"`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./entitrack.yaml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputTable, "output format: table, json or yaml")

	root.AddCommand(
		newModelsCmd(a),
		newNERCmd(a),
		newSessionsCmd(a),
		newTrainCmd(a),
		newNERTrainedCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch a.output {
	case outputTable, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.debug {
		cfg.Debug = true
	}

	core, err := sdk.New(cfg)
	if err != nil {
		return err
	}
	core.State().Subscribe(func() {
		snap := core.State().Snapshot()
		zap.L().Debug("session state changed",
			zap.Bool("api_key_set", snap.APIKey != ""),
			zap.String("selected_model", snap.SelectedModel),
			zap.Int("available_models", len(snap.AvailableModels)))
	})
	a.core = core
	return nil
}
