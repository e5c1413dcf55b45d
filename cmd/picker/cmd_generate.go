package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"HirschPicks/internal/model"
	"HirschPicks/internal/notifier"
	"HirschPicks/internal/picker"
	"HirschPicks/internal/universe"
)

var (
	genDate   string
	genWindow string
	genForce  bool
	genRotate bool
	genJSON   bool
)

// generateCmd runs one generation cycle and prints the result.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate (or load the cached) picks for a trading day",
	Long: `Run one generation cycle: catch up the track record, reuse the cached picks
when they are still fresh, otherwise score every tier and persist the result.

Examples:
  hirsch-picks generate
  hirsch-picks generate --rotate
  hirsch-picks generate --date 2025-06-03 --window open --json`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&genDate, "date", "", "Date key YYYY-MM-DD (default: today in the configured timezone)")
	generateCmd.Flags().StringVar(&genWindow, "window", "", "Window override: early, preopen, open or closed")
	generateCmd.Flags().BoolVar(&genForce, "force", false, "Regenerate even when cached picks are fresh")
	generateCmd.Flags().BoolVar(&genRotate, "rotate", false, "Regenerate excluding today's current picks")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "Print the pick set as JSON")
}

func parseWindow(s string) (model.TimeWindow, error) {
	switch w := model.TimeWindow(s); w {
	case "", model.WindowEarly, model.WindowPreopen, model.WindowOpen, model.WindowClosed:
		return w, nil
	default:
		return "", fmt.Errorf("unknown window %q", s)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	window, err := parseWindow(genWindow)
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	dateKey := genDate
	if dateKey == "" {
		dateKey = a.Generator.Today()
	}
	set, err := a.Generator.Generate(context.Background(), dateKey, picker.Options{
		Force:   genForce,
		Rotate:  genRotate,
		Window:  window,
		Trigger: "manual",
	})
	if err != nil {
		return err
	}

	if genJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}
	fmt.Fprintln(cmd.OutOrStdout(), notifier.FormatPickSet(set, universe.Categories))
	return nil
}
