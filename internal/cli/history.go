package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trivia-quiz/internal/config"
)

// NewHistoryCmd prints recently completed quizzes.
func NewHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent quiz results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			history, closeHistory, err := openHistory(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeHistory()

			results, err := history.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%d/%d\n",
					r.CompletedAt.Format("2006-01-02 15:04"), r.PlayerID, r.CategoryName, r.ActualDifficulty, r.Score, r.Total)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of results to show")
	return cmd
}
