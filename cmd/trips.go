package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/odpanel/internal/labels"
	"github.com/KaramelBytes/odpanel/internal/render"
	"github.com/KaramelBytes/odpanel/internal/views"
	"github.com/spf13/cobra"
)

var tripsCities string

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "Show the OD matrix, modal split, motives and departure peaks",
	Long: `Show the mobility page. Without --cities the OD matrix covers the first configured
number of location codes; --cities "" selects nothing and prints a prompt instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var q views.TripsQuery
		if cmd.Flags().Changed("cities") {
			codes, err := parseCodes(tripsCities)
			if err != nil {
				return err
			}
			q.Cities = codes
		}
		s, set, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		v, err := views.Trips(s, set, q)
		if err != nil {
			return err
		}
		return emit(cmd, v, func(w io.Writer) { render.Trips(w, v) })
	},
}

// parseCodes reads a comma-separated list of codes or "6 - Guará" options as printed
// by the labels command. An empty list is valid.
func parseCodes(s string) ([]int, error) {
	out := []int{}
	for _, tok := range strings.Split(s, ",") {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		code, err := labels.ParseOption(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid city code: %w", err)
		}
		out = append(out, code)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(tripsCmd)
	tripsCmd.Flags().StringVar(&tripsCities, "cities", "", "comma-separated location codes for the OD matrix, e.g. 6,14")
}
