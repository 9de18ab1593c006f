// ABOUTME: CLI command reporting vector collection statistics and health
// ABOUTME: Requires a reachable vector store and configured credentials
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show vector collection statistics",
		Long:  `Report point counts per entity type and collection health.`,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := buildApp(ctx)
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}

	health := application.Store.HealthCheck(ctx)
	stats := application.Store.GetStats(ctx)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Store status:  %s\n", health.Status)
	fmt.Fprintf(out, "Collection:    %s (exists: %v)\n",
		application.Config.QdrantCollection, health.CollectionExists)
	fmt.Fprintf(out, "Total points:  %d\n", stats.TotalPoints)
	fmt.Fprintf(out, "Customers:     %d\n", stats.TypeCounts["customer"])
	fmt.Fprintf(out, "Products:      %d\n", stats.TypeCounts["product"])
	fmt.Fprintf(out, "Territories:   %d\n", stats.TypeCounts["territory"])
	return nil
}
