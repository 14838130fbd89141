package cmd

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/odpanel/internal/labels"
	"github.com/KaramelBytes/odpanel/internal/render"
	"github.com/KaramelBytes/odpanel/internal/views"
	"github.com/spf13/cobra"
)

var labelsCmd = &cobra.Command{
	Use:       "labels <cities|modes|motives>",
	Short:     "List the code/label maps used by the dashboard",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"cities", "modes", "motives"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []labels.Option
		switch args[0] {
		case "cities":
			s, set, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			cities, err := views.CityLabels(s, set)
			if err != nil {
				return err
			}
			opts = cities.Options()
		case "modes", "motives":
			if cfg == nil {
				return errNoConfig
			}
			build := cfg.Modes
			if args[0] == "motives" {
				build = cfg.Motives
			}
			l, err := build()
			if err != nil {
				return err
			}
			opts = l.Options()
		default:
			return fmt.Errorf("unknown label set: %s (use cities, modes or motives)", args[0])
		}
		return emit(cmd, opts, func(w io.Writer) { render.Options(w, "Labels: "+args[0], opts) })
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}
