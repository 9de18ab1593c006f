// ABOUTME: CLI command listing top customers or products
// ABOUTME: Ranks customers by total sales and products by performance score
package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/data"
)

var topLimit int

// NewTopCmd creates the top command.
func NewTopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top {customers|products}",
		Short: "List top customers or products",
		Long: `List the top customers by total sales, or the top products by
performance score.

Examples:
  salesctl top customers
  salesctl top products --limit 5`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"customers", "products"},
		RunE:      runTop,
	}

	cmd.Flags().IntVar(&topLimit, "limit", 10, "Maximum entries to list")

	return cmd
}

func runTop(cmd *cobra.Command, args []string) error {
	if topLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", topLimit)
	}

	_ = godotenv.Load()
	path := os.Getenv("DATA_PATH")
	if path == "" {
		path = "sales_data_sample.csv"
	}

	processor := data.NewProcessor(path)
	if _, err := processor.ProcessAll(); err != nil {
		return fmt.Errorf("processing sales data: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch args[0] {
	case "customers":
		fmt.Fprintln(w, "CUSTOMER\tTERRITORY\tORDERS\tTOTAL SALES\tSTATUS")
		for _, c := range processor.TopCustomers(topLimit) {
			fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%s\n",
				c.Name, c.Territory, c.TotalOrders, c.TotalSales, c.CustomerStatus)
		}
	case "products":
		fmt.Fprintln(w, "PRODUCT\tORDERS\tTOTAL SALES\tSCORE")
		for _, p := range processor.TopProducts(topLimit) {
			fmt.Fprintf(w, "%s\t%d\t%.2f\t%.3f\n",
				p.Key(), p.OrderCount, p.TotalSales, p.PerformanceScore)
		}
	default:
		return fmt.Errorf("unknown listing %q (want customers or products)", args[0])
	}
	return nil
}
