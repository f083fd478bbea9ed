package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sednafm/aircurator/internal/app"
	"github.com/sednafm/aircurator/internal/config"
)

var (
	dailyDate   string
	dailyCommit bool
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Run the daily fact & match pipeline once",
	Long: `Fetch historical events for a date, rank them, ask the curator for the
most intriguing fact and its matching episode, and print the decision.
With --commit the decision is also published to the content repository.`,
	RunE: runDaily,
}

func init() {
	dailyCmd.Flags().StringVar(&dailyDate, "date", "", "target date as YYYY-MM-DD (default: today, UTC)")
	dailyCmd.Flags().BoolVar(&dailyCommit, "commit", false, "publish the decision to the content repository")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForCuration(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if dailyCommit {
		if err := cfg.ValidateForPublish(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}

	date := time.Now().UTC()
	if dailyDate != "" {
		date, err = time.Parse("2006-01-02", dailyDate)
		if err != nil {
			return fmt.Errorf("invalid --date (want YYYY-MM-DD): %w", err)
		}
	}

	application, err := app.New(ctx, cfg, app.Options{WithHistory: true})
	if err != nil {
		return err
	}
	defer application.Close()

	result, err := application.Pipeline.Run(ctx, date, dailyCommit)
	if err != nil {
		return err
	}
	if result.NoEvents {
		fmt.Printf("no events found for %s\n", result.Date)
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.Decision); err != nil {
		return fmt.Errorf("encode decision: %w", err)
	}
	fmt.Print(buf.String())

	if dailyCommit {
		if result.Committed {
			fmt.Println("committed to", cfg.GitHubRepo)
		} else {
			return fmt.Errorf("decision generated but not published")
		}
	}
	return nil
}
