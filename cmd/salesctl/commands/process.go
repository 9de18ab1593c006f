// ABOUTME: CLI command to run the aggregation pass and report the summary
// ABOUTME: Works offline: no generation service or vector store required
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/data"
)

var processDataPath string

// NewProcessCmd creates the process command.
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Aggregate the sales data and print the run summary",
		Long: `Load, clean, and aggregate the sales transactions into customer,
product, and territory views, then print the processing summary.

Examples:
  salesctl process
  salesctl process --data ./sales_data_sample.csv`,
		RunE: runProcess,
	}

	cmd.Flags().StringVar(&processDataPath, "data", "", "Path to the sales CSV (defaults to $DATA_PATH)")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	path := processDataPath
	if path == "" {
		path = os.Getenv("DATA_PATH")
	}
	if path == "" {
		path = "sales_data_sample.csv"
	}

	processor := data.NewProcessor(path)
	summary, err := processor.ProcessAll()
	if err != nil {
		return fmt.Errorf("processing sales data: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Records:     %d\n", summary.TotalRecords)
	fmt.Fprintf(out, "Customers:   %d\n", summary.TotalCustomers)
	fmt.Fprintf(out, "Products:    %d\n", summary.TotalProducts)
	fmt.Fprintf(out, "Territories: %d\n", summary.TotalTerritories)
	fmt.Fprintf(out, "Date range:  %s to %s\n", summary.DateStart, summary.DateEnd)
	fmt.Fprintf(out, "Total sales: %.2f\n", summary.TotalSales)
	fmt.Fprintf(out, "Avg order:   %.2f\n", summary.AvgOrderValue)
	return nil
}
