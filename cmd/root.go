package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath  string
	profileName string
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "lookslice",
	Short: "Partition a content catalog into balanced slices for parallel validation",
	Long: `lookslice ingests a content catalog (folders owning dashboards and Looks),
weights every folder by the queries its subtree issues, cuts the catalog into
n slices of roughly equal query volume, and resolves the metadata-id closure
each slice's permission grant needs for inheritance to reach its content.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to profiles YAML file")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "default", "Profile name within the config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// newLogger builds the process logger; debug flips the level.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
