// ABOUTME: CLI command for one-shot grounded questions against the index
// ABOUTME: Supports scoping retrieval to one entity category
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/agent"
)

var queryScope string

// NewQueryCmd creates the query command.
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Ask the sales agent a question",
		Long: `Ask a natural-language question answered from the indexed sales data.

Examples:
  salesctl query "Which customers should we focus on in EMEA?"
  salesctl query --scope product "What sells best in the small deal segment?"`,
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&queryScope, "scope", agent.ScopeAll, "Retrieval scope: all, customer, product, or territory")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	switch queryScope {
	case agent.ScopeAll, agent.ScopeCustomer, agent.ScopeProduct, agent.ScopeTerritory:
	default:
		return fmt.Errorf("invalid scope %q", queryScope)
	}

	ctx := context.Background()
	application, err := buildApp(ctx)
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}

	result := application.Agent.Query(ctx, args[0], queryScope)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Response)
	if !quiet {
		fmt.Fprintf(out, "\n(%d context items used)\n", result.ContextUsed)
	}
	return nil
}
