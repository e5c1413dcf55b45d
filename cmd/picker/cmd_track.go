package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"HirschPicks/internal/notifier"
	"HirschPicks/internal/picker"
	"HirschPicks/internal/universe"
)

var (
	trackTier  string
	trackLimit int
	trackJSON  bool
)

// trackCmd prints realized outcomes of prior picks.
var trackCmd = &cobra.Command{
	Use:   "track-record",
	Short: "Show realized outcomes of prior picks, newest first",
	RunE:  runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().StringVar(&trackTier, "tier", "", "Restrict to one tier (penny, small, mid, large, hyper)")
	trackCmd.Flags().IntVar(&trackLimit, "limit", picker.DefaultTrackRecordLimit, "Maximum rows")
	trackCmd.Flags().BoolVar(&trackJSON, "json", false, "Print rows as JSON")
}

func runTrack(cmd *cobra.Command, args []string) error {
	if trackTier != "" {
		if _, ok := universe.Category(trackTier); !ok {
			return fmt.Errorf("unknown tier %q", trackTier)
		}
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	rows, err := a.Generator.TrackRecord(context.Background(), trackTier, trackLimit)
	if err != nil {
		return err
	}
	if trackJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	fmt.Fprintln(cmd.OutOrStdout(), notifier.FormatTrackRecord(trackTier, rows))
	return nil
}
