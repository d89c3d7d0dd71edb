package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"salesdash/app"
	"salesdash/internal"
	"salesdash/internal/report"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "salesdash-cli",
		Short: "Salesdash CLI for inspecting and exporting sales datasets",
	}

	rootCmd.AddCommand(
		newLoadCmd(),
		newSnapshotCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [file]",
		Short: "Parse a CSV or xlsx file and print its shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := newDashboard(10)
			t, err := dash.Load(args[0])
			if err != nil {
				return err
			}
			min, _ := t.MinDate()
			max, _ := t.MaxDate()
			fmt.Printf("rows: %d\n", t.Len())
			fmt.Printf("columns: %v\n", t.Headers())
			fmt.Printf("date range: %s to %s\n", min.Format("2006-01-02"), max.Format("2006-01-02"))
			return nil
		},
	}
}

func newSnapshotCmd() *cobra.Command {
	var topN int
	var markdown bool
	f := filterFlags{}

	cmd := &cobra.Command{
		Use:   "snapshot [file]",
		Short: "Compute the full dashboard snapshot for a file",
		Long: `Compute every aggregation over the file and print the result.

Example: salesdash-cli snapshot orders.csv --from 2023-01-01 --categories Technology,Furniture`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := newDashboard(topN)
			t, err := dash.Load(args[0])
			if err != nil {
				return err
			}
			filter, err := f.build()
			if err != nil {
				return err
			}
			snap, err := dash.Snapshot(cmd.Context(), t, filter)
			if err != nil {
				return err
			}
			if markdown {
				fmt.Print(report.Markdown(snap))
				return nil
			}
			out, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().IntVar(&topN, "top-n", 10, "Number of entries in ranked lists")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print a markdown report instead of JSON")
	f.register(cmd)
	return cmd
}

func newExportCmd() *cobra.Command {
	var output string
	f := filterFlags{}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the filtered dataset as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := newDashboard(10)
			t, err := dash.Load(args[0])
			if err != nil {
				return err
			}
			filter, err := f.build()
			if err != nil {
				return err
			}

			w := os.Stdout
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			return dash.ExportCSV(t, filter, w)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default stdout)")
	f.register(cmd)
	return cmd
}

type filterFlags struct {
	from, to            string
	categories, regions []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.to, "to", "", "End date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringSliceVar(&f.categories, "categories", nil, "Categories to include")
	cmd.Flags().StringSliceVar(&f.regions, "regions", nil, "Regions to include")
}

func (f *filterFlags) build() (app.Filter, error) {
	var filter app.Filter
	if f.from != "" {
		d, err := time.Parse("2006-01-02", f.from)
		if err != nil {
			return filter, fmt.Errorf("invalid --from date: %w", err)
		}
		filter.From = d
	}
	if f.to != "" {
		d, err := time.Parse("2006-01-02", f.to)
		if err != nil {
			return filter, fmt.Errorf("invalid --to date: %w", err)
		}
		filter.To = d
	}
	filter.Categories = f.categories
	filter.Regions = f.regions
	return filter, nil
}

func newDashboard(topN int) *app.Dashboard {
	return app.NewDashboard(internal.NewDefaultLogger(), topN)
}
