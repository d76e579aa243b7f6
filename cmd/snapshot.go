package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/agentic-research/lookslice/internal/snapshot"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [export.json] [output.db]",
	Short: "Convert a catalog JSON export into a SQLite snapshot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		output := args[1]

		folders, items, err := snapshot.ImportJSON(source)
		if err != nil {
			return err
		}

		_ = os.Remove(output) // overwrite
		start := time.Now()
		fmt.Printf("Building %s from %s...\n", output, source)
		if err := snapshot.Write(output, folders, items); err != nil {
			return err
		}
		fmt.Printf("Done in %v (%d folders, %d content items).\n",
			time.Since(start), len(folders), len(items))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}
