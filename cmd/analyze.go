package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/odpanel/internal/analysis"
	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	anaSampleRows int
	anaMaxRows    int
	anaGroupBy    []string
	anaDecimal    string
	anaThousands  string
	anaOutliers   bool
	anaOutlierThr float64
	anaTopValues  int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [trips|socio|dwellings]",
	Short: "Summarize the schema and values of the loaded tables",
	Long: `Print a Markdown summary of each loaded table (or only the named one): inferred
column types, numeric statistics, frequent values, optional group-by metrics and sample rows.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := summaryOptions(cmd)
		if err != nil {
			return err
		}

		var only *dataset.Kind
		if len(args) == 1 {
			k, err := dataset.ParseKind(args[0])
			if err != nil {
				return err
			}
			only = &k
		}

		s, _, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		reg, err := s.Registry()
		if err != nil {
			return err
		}
		var reports []*analysis.Report
		for _, e := range reg.Entries() {
			if only != nil && e.Kind != *only {
				continue
			}
			reports = append(reports, analysis.Summarize(e.Table, opt))
		}
		if len(reports) == 0 {
			return fmt.Errorf("no table of kind %s is loaded", args[0])
		}
		return emit(cmd, reports, func(w io.Writer) {
			for i, rep := range reports {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprint(w, rep.Markdown())
			}
		})
	},
}

// summaryOptions builds the summary options from the shared inspect flags.
func summaryOptions(cmd *cobra.Command) (analysis.Options, error) {
	opt := analysis.DefaultOptions()
	if anaSampleRows > 0 {
		opt.SampleRows = anaSampleRows
	}
	if cmd.Flags().Changed("max-rows") {
		opt.MaxRows = anaMaxRows
	}
	if anaTopValues > 0 {
		opt.TopValues = anaTopValues
	}
	// Locale separators
	switch strings.ToLower(strings.TrimSpace(anaDecimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", anaDecimal)
	}
	switch strings.ToLower(strings.TrimSpace(anaThousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", anaThousands)
	}
	opt.GroupBy = anaGroupBy
	if cmd.Flags().Changed("outliers") {
		opt.Outliers = anaOutliers
	}
	if anaOutlierThr > 0 {
		opt.OutlierThreshold = anaOutlierThr
	}
	return opt, nil
}

func addSummaryFlags(c *cobra.Command) {
	c.Flags().StringVar(&anaDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	c.Flags().StringVar(&anaThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	c.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows to include")
	c.Flags().IntVar(&anaMaxRows, "max-rows", 100000, "maximum rows to process (0 = unlimited)")
	c.Flags().IntVar(&anaTopValues, "top-values", 8, "frequent values listed per categorical column")
	c.Flags().StringSliceVar(&anaGroupBy, "group-by", nil, "comma-separated column names to group by (repeatable)")
	c.Flags().BoolVar(&anaOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	c.Flags().Float64Var(&anaOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addSummaryFlags(inspectCmd)
}
