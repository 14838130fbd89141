package cmd

import (
	"io"

	"github.com/KaramelBytes/odpanel/internal/render"
	"github.com/KaramelBytes/odpanel/internal/views"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "List the loaded survey tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		v := views.Home(s)
		return emit(cmd, v, func(w io.Writer) { render.Home(w, v) })
	},
}

var managementCmd = &cobra.Command{
	Use:   "management",
	Short: "Show fieldwork progress and surveyor productivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		v, err := views.Management(s)
		if err != nil {
			return err
		}
		return emit(cmd, v, func(w io.Writer) { render.Management(w, v) })
	},
}

var socioCmd = &cobra.Command{
	Use:   "socio",
	Short: "Show the socioeconomic profile of residents",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, set, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		v, err := views.Socio(s, set)
		if err != nil {
			return err
		}
		return emit(cmd, v, func(w io.Writer) { render.Socio(w, v) })
	},
}

var dwellingsCmd = &cobra.Command{
	Use:   "dwellings",
	Short: "Show household infrastructure for completed surveys",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, set, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		v, err := views.Dwellings(s, set)
		if err != nil {
			return err
		}
		return emit(cmd, v, func(w io.Writer) { render.Dwellings(w, v) })
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(managementCmd)
	rootCmd.AddCommand(socioCmd)
	rootCmd.AddCommand(dwellingsCmd)
}
