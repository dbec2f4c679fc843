package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-spectra/internal/report"
	"github.com/robert-malhotra/go-spectra/spectra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the registered readers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, f := range spectra.DefaultRegistry.Formats() {
				fmt.Fprintf(out, "%-18s %-12s %6d  %s\n",
					f.Name, strings.Join(f.Extensions, ","), f.Priority, f.Description)
			}
			return nil
		},
	}
}

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets FILE",
		Short: "List the sheets of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := spectra.Sheets(args[0], readerOptions()...)
			if err != nil {
				return err
			}
			for _, s := range sheets {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

func newReadCmd() *cobra.Command {
	var sheet string
	var summary bool

	cmd := &cobra.Command{
		Use:   "read FILE",
		Short: "Read a file and describe the resulting dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, f, err := spectra.DefaultRegistry.Read(args[0], sheet, readerOptions()...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "format:   %s\n", f.Name)
			fmt.Fprintf(out, "spectra:  %d\n", ds.Rows())
			fmt.Fprintf(out, "channels: %d (%g .. %g)\n", ds.Channels(), ds.Axis[0], ds.Axis[len(ds.Axis)-1])
			if ds.Coords != nil {
				fmt.Fprintf(out, "map:      x %g .. %g, y %g .. %g\n",
					ds.Coords.X[0], ds.Coords.X[len(ds.Coords.X)-1],
					ds.Coords.Y[0], ds.Coords.Y[len(ds.Coords.Y)-1])
			}
			if !summary {
				return nil
			}

			rows, err := report.Summarize(ds)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%12s %12s %12s %12s %12s %12s\n", "axis", "mean", "stddev", "min", "max", "median")
			for _, s := range rows {
				fmt.Fprintf(out, "%12g %12g %12g %12g %12g %12g\n", s.Axis, s.Mean, s.StdDev, s.Min, s.Max, s.Median)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&sheet, "sheet", "s", "", "sheet to read (default: the reader's first)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print per-channel statistics")
	return cmd
}

func newExportCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "export FILE OUTPUT.xlsx",
		Short: "Write a dataset and its channel summary to a workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := spectra.Read(args[0], sheet, readerOptions()...)
			if err != nil {
				return err
			}
			if err := report.WriteXLSX(args[1], ds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d spectra to %s\n", ds.Rows(), args[1])
			return nil
		},
	}
	cmd.Flags().StringVarP(&sheet, "sheet", "s", "", "sheet to read")
	return cmd
}

func newPlotCmd() *cobra.Command {
	var (
		sheet string
		rows  string
		opts  report.PlotOptions
	)

	cmd := &cobra.Command{
		Use:   "plot FILE OUTPUT",
		Short: "Plot spectra to an image (.png, .svg, .pdf)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseRows(rows)
			if err != nil {
				return err
			}
			opts.Rows = sel

			ds, err := spectra.Read(args[0], sheet, readerOptions()...)
			if err != nil {
				return err
			}
			if opts.Title == "" {
				opts.Title = args[0]
			}
			return report.PlotSpectra(args[1], ds, opts)
		},
	}
	cmd.Flags().StringVarP(&sheet, "sheet", "s", "", "sheet to read")
	cmd.Flags().StringVar(&rows, "rows", "", "comma separated spectrum indices (default: the first 16)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "plot title (default: the file name)")
	cmd.Flags().StringVar(&opts.XLabel, "xlabel", "", "x axis label")
	cmd.Flags().StringVar(&opts.YLabel, "ylabel", "", "y axis label")
	return cmd
}

func parseRows(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid row %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
