package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	port       string
	baseURL    string
	offline    bool
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "trivia-quiz",
		Short:        "Trivia quiz client for the Open Trivia Database",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&opts.port, "port", os.Getenv("PORT"), "port to listen on (serve)")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", os.Getenv("TRIVIA_BASE_URL"), "trivia API base URL")
	cmd.PersistentFlags().BoolVar(&opts.offline, "offline", false, "use the built-in question set instead of the API")
	cmd.AddCommand(NewServeCmd(opts))
	cmd.AddCommand(NewPlayCmd(opts))
	cmd.AddCommand(NewCategoriesCmd(opts))
	cmd.AddCommand(NewHistoryCmd(opts))
	cmd.AddCommand(NewMigrateCmd(&opts.configPath))
	return cmd
}
