package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/chordflow/chord"
	"github.com/lixenwraith/chordflow/config"
	"github.com/lixenwraith/chordflow/dataset"
)

// Demo dataset defaults used when no --dataset is given
const (
	defaultDemoNodes = 12
	defaultDemoLinks = 60
	defaultDemoSeed  = 7
)

// session is the state every subcommand starts from, prepared by the root pre-run
type session struct {
	cfg     config.Configuration
	ds      chord.Dataset
	logger  *slog.Logger
	logFile *os.File
}

var app session

var rootCmd = &cobra.Command{
	Use:           "chordflow",
	Short:         "Particle chord diagram renderer",
	Long:          "chordflow lays out a node/link dataset as a chord diagram and animates particles along every chord.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return prepare(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app.logFile != nil {
			app.logFile.Close()
		}
	},
	RunE: runView,
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "configuration file (toml, yaml or json)")
	pf.String("dataset", "", "dataset file (toml, yaml or json); a demo dataset is generated when empty")
	pf.Bool("debug", false, "write debug logs to logs/chordflow.log")
	pf.Int("demo-nodes", defaultDemoNodes, "node count of the generated demo dataset")
	pf.Int("demo-links", defaultDemoLinks, "link count of the generated demo dataset")
	pf.Uint64("demo-seed", defaultDemoSeed, "seed of the generated demo dataset")

	// Flags bound to configuration keys; precedence is flag > env > file > default
	pf.Float64("density", 0, "particle density")
	pf.String("distribution", "", "particle distribution: uniform, random or gaussian")
	pf.Bool("accelerated", false, "request the accelerated particle backend")

	addViewFlags(rootCmd)
}

// flagKeys maps persistent flags onto configuration keys
var flagKeys = map[string]string{
	"density":      "particle_density",
	"distribution": "particle_distribution",
	"accelerated":  "use_accelerated_renderer",
}

// prepare loads .env, logging, configuration and the dataset
func prepare(cmd *cobra.Command) error {
	_ = godotenv.Load()

	debug, _ := cmd.Flags().GetBool("debug")
	app.logFile = setupLogging(debug)
	app.logger = slog.Default().With("app", "chordflow")

	path, _ := cmd.Flags().GetString("config")
	v, err := config.NewViper(path)
	if err != nil {
		return err
	}
	if err := bindFlags(cmd, v); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	app.cfg = cfg

	ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}
	app.ds = ds
	app.logger.Info("session prepared", "config", v.ConfigFileUsed(), "nodes", len(ds.Nodes), "links", len(ds.Links))
	return nil
}

// bindFlags binds only flags the user set so unset flags never shadow file or env values
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

func loadDataset(cmd *cobra.Command) (chord.Dataset, error) {
	path, _ := cmd.Flags().GetString("dataset")
	if path != "" {
		return dataset.Load(path)
	}
	nodes, _ := cmd.Flags().GetInt("demo-nodes")
	links, _ := cmd.Flags().GetInt("demo-links")
	seed, _ := cmd.Flags().GetUint64("demo-seed")
	return dataset.Demo(nodes, links, seed), nil
}
