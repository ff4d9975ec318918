package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trivia-quiz/internal/config"
)

// NewCategoriesCmd prints the category list.
func NewCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List trivia categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			gateway := buildGateway(cfg, *opts, newRedisClient(cfg))
			categories, err := gateway.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			for _, cat := range categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", cat.ID, cat.Name)
			}
			return nil
		},
	}
}
