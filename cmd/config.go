package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/odpanel/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set odpanel configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "data_dir: %s\n", cfg.DataDir)
		for _, src := range cfg.Sources() {
			fmt.Fprintf(out, "  %s: %s\n", src.Kind, src.Path)
		}
		fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		fmt.Fprintf(out, "encoding: %s\n", cfg.Encoding)
		if cfg.Sheet != "" {
			fmt.Fprintf(out, "sheet: %s\n", cfg.Sheet)
		}
		fmt.Fprintf(out, "invalid_surveyor_id: %d\n", cfg.InvalidSurveyorID)
		fmt.Fprintf(out, "od_default_cities: %d\n", cfg.ODDefaultCities)
		fmt.Fprintf(out, "histogram_bins: %d\n", cfg.HistogramBins)
		fmt.Fprintf(out, "mode_labels: %d entries\n", len(cfg.ModeLabels))
		fmt.Fprintf(out, "motive_labels: %d entries\n", len(cfg.MotiveLabels))
		fmt.Fprintf(out, "server.addr: %s\n", cfg.Server.Addr)
		fmt.Fprintf(out, "server.session_ttl_min: %d\n", cfg.Server.SessionTTLMin)
		fmt.Fprintf(out, "server.max_sessions: %d\n", cfg.Server.MaxSessions)
		fmt.Fprintf(out, "server.cors_origins: %s\n", strings.Join(cfg.Server.CORSOrigins, ","))
		fmt.Fprintf(out, "log.level: %s\n", cfg.Log.Level)
		fmt.Fprintf(out, "log.format: %s\n", cfg.Log.Format)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk. Label maps take code=label pairs, e.g.
odpanel config set mode_labels.99 "Scooter".`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch {
		case key == "data_dir":
			cfg.DataDir = val
		case key == "trips_file":
			cfg.TripsFile = val
		case key == "socio_file":
			cfg.SocioFile = val
		case key == "dwellings_file":
			cfg.DwellingsFile = val
		case key == "delimiter":
			prev := cfg.Delimiter
			cfg.Delimiter = val
			if _, err := cfg.DelimiterRune(); err != nil {
				cfg.Delimiter = prev
				return err
			}
		case key == "encoding":
			cfg.Encoding = val
		case key == "sheet":
			cfg.Sheet = val
		case key == "invalid_surveyor_id":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for invalid_surveyor_id: %w", err)
			}
			cfg.InvalidSurveyorID = i
		case key == "od_default_cities":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for od_default_cities: %v", val)
			}
			cfg.ODDefaultCities = i
		case key == "histogram_bins":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for histogram_bins: %v", val)
			}
			cfg.HistogramBins = i
		case strings.HasPrefix(key, "mode_labels."), strings.HasPrefix(key, "motive_labels."):
			name, code, _ := strings.Cut(key, ".")
			if _, err := strconv.Atoi(code); err != nil {
				return fmt.Errorf("invalid code in %s: %q", name, code)
			}
			m := cfg.ModeLabels
			if name == "motive_labels" {
				m = cfg.MotiveLabels
			}
			if val == "" {
				delete(m, code)
			} else {
				m[code] = val
			}
		case key == "server.addr":
			cfg.Server.Addr = val
		case key == "server.session_ttl_min":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for server.session_ttl_min: %v", val)
			}
			cfg.Server.SessionTTLMin = i
		case key == "server.max_sessions":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for server.max_sessions: %v", val)
			}
			cfg.Server.MaxSessions = i
		case key == "server.cors_origins":
			cfg.Server.CORSOrigins = strings.Split(val, ",")
		case key == "log.level":
			cfg.Log.Level = val
		case key == "log.format":
			switch val {
			case "json", "console":
				cfg.Log.Format = val
			default:
				return fmt.Errorf("invalid log.format: %s (use json or console)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s (known: %s)", key, strings.Join(configKeys(), ", "))
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func configKeys() []string {
	keys := []string{
		"data_dir", "trips_file", "socio_file", "dwellings_file", "delimiter", "encoding", "sheet",
		"invalid_surveyor_id", "od_default_cities", "histogram_bins", "mode_labels.<code>",
		"motive_labels.<code>", "server.addr", "server.session_ttl_min", "server.max_sessions",
		"server.cors_origins", "log.level", "log.format",
	}
	sort.Strings(keys)
	return keys
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
