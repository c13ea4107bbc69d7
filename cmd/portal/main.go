// Command portal is the interactive terminal portal for the Ontario Public
// Library System dataset. Run without arguments it presents the main menu;
// subcommands expose each operation for non-interactive use.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	portal "github.com/timokthy/library-portal"
)

var (
	dataDir  string
	cacheDir string
)

func main() {
	root := &cobra.Command{
		Use:   "portal",
		Short: "Interactive portal for Ontario Public Library statistics (2017-2019)",
		Long: `The Ontario Public Library System Portal looks up branch information,
locates nearby branches by postal code, and summarizes yearly statistics
over the 2017-2019 public library dataset.

Run without a subcommand for the interactive menu.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPortal()
			if err != nil {
				return err
			}
			return runMenu(p, os.Stdin, os.Stdout)
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data-dir", "./library-data", "directory holding the yearly statistics workbooks")
	root.PersistentFlags().StringVar(&cacheDir, "cache-dir", "./library-cache", "directory for the parsed dataset snapshot")

	root.AddCommand(newSearchCommand())
	root.AddCommand(newNearbyCommand())
	root.AddCommand(newArchiveCommand())
	root.AddCommand(newChartCommand())
	root.AddCommand(newExportCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openPortal loads the dataset, preferring the gob snapshot and falling
// back to the workbooks. A failed snapshot write is only a warning.
func openPortal() (*portal.Portal, error) {
	if data, err := portal.LoadCache(cacheDir); err == nil {
		return portal.New(data), nil
	}

	data, err := portal.LoadDataset(dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading dataset from %s: %w", dataDir, err)
	}
	if err := portal.StoreCache(data, cacheDir); err != nil {
		log.Printf("warning: failed to store dataset cache: %v", err)
	}
	return portal.New(data), nil
}

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name or code>",
		Short: "Find a library branch by name or code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPortal()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			records := p.Find(query)
			if len(records) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No library branch matches %q.\n", query)
				return nil
			}
			renderBranches(cmd.OutOrStdout(), records)
			return nil
		},
	}
}

func newNearbyCommand() *cobra.Command {
	var needFlags []string
	var limit int

	cmd := &cobra.Command{
		Use:   "nearby <postal code>",
		Short: "Find library branches near a postal code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var needs []portal.Need
			for _, raw := range needFlags {
				n, err := portal.ParseNeed(raw)
				if err != nil {
					return err
				}
				needs = append(needs, n)
			}

			p, err := openPortal()
			if err != nil {
				return err
			}
			results, err := p.Nearby(args[0], needs...)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Sorry! Could not find any libraries nearby.")
				return nil
			}
			renderRanked(cmd.OutOrStdout(), results, limit)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&needFlags, "need", nil, "required branch feature (repeatable): "+needNames())
	cmd.Flags().IntVar(&limit, "limit", 5, "maximum number of branches to display (0 = all)")
	return cmd
}

func newArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <year>",
		Short: "Summarize a year of library statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year must be a number, got %q", args[0])
			}
			p, err := openPortal()
			if err != nil {
				return err
			}
			summary, err := p.Summarize(year)
			if err != nil {
				return err
			}
			renderSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func newChartCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "chart [year]",
		Short: "Render resource charts to a PNG file",
		Long: `With a year, renders the grouped resources-by-language bar chart for
that year. Without a year, renders the 2017-2019 per-language trend lines.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPortal()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				if err := p.RenderTrendChart(out); err != nil {
					return err
				}
			} else {
				year, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("year must be a number, got %q", args[0])
				}
				if err := p.RenderResourceChart(year, out); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "resources.png", "output PNG path")
	return cmd
}

func newExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the merged dataset to a single workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPortal()
			if err != nil {
				return err
			}
			if err := portal.ExportXLSX(p.Dataset(), out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", p.Dataset().Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "exported_library_data.xlsx", "output workbook path")
	return cmd
}

func needNames() string {
	names := make([]string, 0, len(portal.Needs()))
	for _, n := range portal.Needs() {
		names = append(names, string(n))
	}
	return strings.Join(names, ", ")
}
