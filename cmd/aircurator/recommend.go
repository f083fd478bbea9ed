package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sednafm/aircurator/internal/app"
	"github.com/sednafm/aircurator/internal/config"
	"github.com/sednafm/aircurator/internal/recommend"
)

var (
	recommendMood    string
	recommendExclude []int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get a one-shot mood recommendation",
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendMood, "mood", "",
		fmt.Sprintf("listener mood (one of: %s)", strings.Join(recommend.ValidMoods, ", ")))
	recommendCmd.Flags().IntSliceVar(&recommendExclude, "exclude", nil, "episode ids to exclude")
	recommendCmd.MarkFlagRequired("mood")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForCuration(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	application, err := app.New(ctx, cfg, app.Options{})
	if err != nil {
		return err
	}
	defer application.Close()

	result, err := application.Recommender.Recommend(ctx, recommendMood, recommendExclude)
	if err != nil {
		return err
	}

	fmt.Printf("Episode: %s (id %d)\n", result.Episode.Title, result.Episode.ID)
	fmt.Printf("Reason:  %s\n", result.Reason)
	if result.MemoryReset {
		fmt.Println("Session memory was reset: every episode had been excluded.")
	}
	return nil
}
