// ABOUTME: CLI command to rebuild the vector index from scratch
// ABOUTME: Destructive: clears the collection before re-indexing the aggregates
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewIndexCmd creates the index command.
func NewIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the vector index from the current sales data",
		Long: `Aggregate the sales data, generate embeddings for every customer,
product, and territory, and store them in the vector collection. The
existing collection is cleared first, so do not run this while queries
are being served.`,
		RunE: runIndex,
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := buildApp(ctx)
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}

	if err := application.RebuildIndex(ctx); err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	if !quiet {
		stats := application.Store.GetStats(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d points (%d customers, %d products, %d territories)\n",
			stats.TotalPoints,
			stats.TypeCounts["customer"],
			stats.TypeCounts["product"],
			stats.TypeCounts["territory"])
	}
	return nil
}
