package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sednafm/aircurator/internal/config"
	"github.com/sednafm/aircurator/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent daily pipeline runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := history.NewStore(ctx, cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no daily runs recorded yet")
		return nil
	}

	for _, run := range runs {
		status := "draft"
		if run.Published {
			status = "published"
		}
		fmt.Printf("%s  [%s]  %d  %s\n", run.Date, status, run.FactYear, run.EpisodeTitle)
		fmt.Printf("    %s\n", run.FactText)
	}
	return nil
}
