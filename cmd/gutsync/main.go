package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/config"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/engine"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/log"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gutsync",
	Short: "Gutsync - health platform synchronization engine",
	Long: `Gutsync synchronizes logged meals, symptoms and water intake to a
local health platform store, and aggregates the platform's vitals,
activity, sleep and medication data into consolidated snapshots.

The engine is a secondary sync path: the app's own store remains the
source of truth for its entities, the platform for everything else.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Gutsync version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("data-dir", "", "Override the configured data directory")
}

// loadConfig resolves flags over the config file and initializes logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}

	log.Init(log.Config{
		Level:      log.Level(cfg.Log.Level),
		JSONOutput: cfg.Log.JSON,
	})
	return cfg, nil
}

// openEngine opens the platform store and wires an engine over it. The
// caller owns the returned platform and must Close it.
func openEngine(cfg *config.Config) (*engine.Engine, *platform.BoltPlatform, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	plat, err := platform.NewBoltPlatform(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open platform store: %w", err)
	}

	eng := engine.New(plat, engine.Config{
		ReadCategories:  cfg.Categories.Read,
		WriteCategories: cfg.Categories.Write,
		CoalesceWindow:  cfg.CoalesceWindow,
	})
	return eng, plat, nil
}
