package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"datadash/adapters/excel"
	"datadash/domain/table"
	"datadash/internal/analysis"
	"datadash/internal/export"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datadash",
		Short: "Batch companion to the dashboard: summarize, filter, and export spreadsheets",
	}

	rootCmd.AddCommand(
		newSummarizeCmd(),
		newFilterCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadOrExit loads a spreadsheet, printing any reported condition. A
// condition with a non-empty table (never happens today) would still print.
func loadOrExit(path string) *table.Table {
	t, cond := excel.NewDataReader(path).Load()
	if cond != nil {
		fmt.Fprintln(os.Stderr, cond.Error())
		if t.IsEmpty() {
			os.Exit(1)
		}
	}
	return t
}

func newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize [file]",
		Short: "Print column types and summary statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := loadOrExit(args[0])
			fmt.Printf("%d rows, %d columns\n\n", t.RowCount(), t.ColumnCount())
			for _, col := range t.Columns() {
				fmt.Printf("  %-24s %s\n", col.Name, col.Kind)
			}
			fmt.Println()
			for _, name := range t.NumericNames() {
				d, err := analysis.Describe(t, name)
				if err != nil {
					continue
				}
				fmt.Printf("%s: count=%d mean=%.2f std=%.2f min=%.2f median=%.2f max=%.2f\n",
					name, d.Count, d.Mean, d.StdDev, d.Min, d.Median, d.Max)
			}
			return nil
		},
	}
}

func newFilterCmd() *cobra.Command {
	var products []string
	var ranges []string
	var output string

	cmd := &cobra.Command{
		Use:   "filter [file]",
		Short: "Filter rows and write the result as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := loadOrExit(args[0])

			var specs []table.FilterSpec
			if len(products) > 0 {
				specs = append(specs, table.CategoricalSpec(analysis.DefaultCategoryField, products))
			}
			rangeSpecs, err := parseRangeFlags(ranges)
			if err != nil {
				return err
			}
			specs = append(specs, rangeSpecs...)

			filtered := table.Apply(t, specs)
			fmt.Fprintf(os.Stderr, "%d of %d rows match\n", filtered.RowCount(), t.RowCount())
			return writeCSV(filtered, output)
		},
	}

	cmd.Flags().StringSliceVar(&products, "product", nil, "allowed Product values (repeatable)")
	cmd.Flags().StringSliceVar(&ranges, "range", nil, "numeric range as Column=min:max (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the full table as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCSV(loadOrExit(args[0]), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// parseRangeFlags turns Column=min:max flags into interval specs.
func parseRangeFlags(flags []string) ([]table.FilterSpec, error) {
	var specs []table.FilterSpec
	for _, raw := range flags {
		name, bounds, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --range %q, expected Column=min:max", raw)
		}
		lo, hi, ok := strings.Cut(bounds, ":")
		if !ok {
			return nil, fmt.Errorf("invalid --range %q, expected Column=min:max", raw)
		}
		min, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --range min %q: %w", lo, err)
		}
		max, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --range max %q: %w", hi, err)
		}
		if min > max {
			return nil, fmt.Errorf("invalid --range %q: min must not exceed max", raw)
		}
		specs = append(specs, table.RangeSpec(name, min, max))
	}
	return specs, nil
}

func writeCSV(t *table.Table, output string) error {
	data, err := export.CSVBytes(t)
	if err != nil {
		return err
	}
	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0644)
}
