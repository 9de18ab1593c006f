// ABOUTME: CLI command reporting per-territory performance
// ABOUTME: Shows sales, market share, and customer counts for every territory
package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/data"
)

// NewTerritoriesCmd creates the territories command.
func NewTerritoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "territories",
		Short: "Show the territory breakdown",
		Long:  `Aggregate the sales data and print per-territory performance.`,
		RunE:  runTerritories,
	}
}

func runTerritories(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	path := os.Getenv("DATA_PATH")
	if path == "" {
		path = "sales_data_sample.csv"
	}

	processor := data.NewProcessor(path)
	if _, err := processor.ProcessAll(); err != nil {
		return fmt.Errorf("processing sales data: %w", err)
	}

	insights := processor.TerritoryInsights()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "TERRITORY\tORDERS\tCUSTOMERS\tTOTAL SALES\tMARKET SHARE")
	for _, t := range insights.Breakdown {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.2f%%\n",
			t.Territory, t.TotalOrders, t.UniqueCustomers, t.TotalSales, t.MarketShare)
	}
	if insights.TopTerritory != nil && !quiet {
		fmt.Fprintf(w, "\nTop territory: %s\n", insights.TopTerritory.Territory)
	}
	return nil
}
