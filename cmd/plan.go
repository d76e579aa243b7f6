package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentic-research/lookslice/api"
	"github.com/agentic-research/lookslice/internal/catalog"
	"github.com/agentic-research/lookslice/internal/config"
	"github.com/agentic-research/lookslice/internal/slicer"
	"github.com/agentic-research/lookslice/internal/snapshot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fraction int
	planOut  string
)

var planCmd = &cobra.Command{
	Use:   "plan [catalog]",
	Short: "Compute a balanced slice plan from a catalog snapshot or JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		n := fraction
		if configPath != "" {
			profile, err := config.Load(configPath, profileName)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("fraction") {
				n = profile.Fraction
			}
		}

		folders, items, err := loadCatalog(args[0])
		if err != nil {
			return err
		}
		logger.Debug("catalog loaded",
			zap.String("source", args[0]),
			zap.Int("folders", len(folders)),
			zap.Int("content_items", len(items)),
		)

		tree, err := catalog.Build(folders, items)
		if err != nil {
			return err
		}
		if err := catalog.CountQueries(tree); err != nil {
			return err
		}

		plan, err := slicer.BuildPlan(tree, n)
		if err != nil {
			return err
		}

		fmt.Printf("Plan %s: %d folders, %d dashboards, %d looks, %d queries total\n",
			plan.ID, tree.TotalFolders, tree.TotalDashboards, tree.TotalLooks, tree.TotalQueries)
		for _, s := range plan.Slices {
			fmt.Printf("  slice %d: %d folders, weight %d (target %.1f), closure %d metadata ids\n",
				s.Index, len(s.AssignedFolderIDs), s.ActualWeight, s.TargetWeight, len(s.MetadataClosure))
		}

		if planOut != "" {
			raw, err := json.MarshalIndent(plan, "", "  ")
			if err != nil {
				return fmt.Errorf("encode plan: %w", err)
			}
			if err := os.WriteFile(planOut, raw, 0o644); err != nil {
				return fmt.Errorf("write plan: %w", err)
			}
			fmt.Printf("Wrote plan to %s\n", planOut)
		}
		return nil
	},
}

// loadCatalog reads raw records from a .db snapshot or a .json export.
func loadCatalog(path string) ([]api.RawFolder, []api.ContentItem, error) {
	switch filepath.Ext(path) {
	case ".db":
		return snapshot.Load(path)
	case ".json":
		return snapshot.ImportJSON(path)
	default:
		return nil, nil, fmt.Errorf("unsupported catalog format %q (want .db or .json)", path)
	}
}

func init() {
	planCmd.Flags().IntVarP(&fraction, "fraction", "f", config.DefaultFraction, "Number of slices to cut the catalog into")
	planCmd.Flags().StringVarP(&planOut, "out", "o", "", "Write the full plan as JSON to this file")
	rootCmd.AddCommand(planCmd)
}
