// ABOUTME: Root CLI command wiring all salesctl subcommands
// ABOUTME: Shared app construction lives here for commands that need full services
package commands

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/app"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/config"
)

var quiet bool

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salesctl",
		Short: "Sales analytics RAG agent",
		Long: `salesctl drives the sales analytics RAG pipeline: aggregate the
transaction data, build the vector index, and ask grounded questions.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	cmd.AddCommand(NewProcessCmd())
	cmd.AddCommand(NewIndexCmd())
	cmd.AddCommand(NewQueryCmd())
	cmd.AddCommand(NewTopCmd())
	cmd.AddCommand(NewTerritoriesCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// buildApp loads .env and config, then constructs the full application
// context. Used by every command that talks to external services.
func buildApp(ctx context.Context) (*app.App, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}
