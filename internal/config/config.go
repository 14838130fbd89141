package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/labels"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Input files. Explicit file paths win over data_dir + default file name.
	DataDir       string `mapstructure:"data_dir" yaml:"data_dir"`
	TripsFile     string `mapstructure:"trips_file" yaml:"trips_file,omitempty"`
	SocioFile     string `mapstructure:"socio_file" yaml:"socio_file,omitempty"`
	DwellingsFile string `mapstructure:"dwellings_file" yaml:"dwellings_file,omitempty"`
	Delimiter     string `mapstructure:"delimiter" yaml:"delimiter"`
	Encoding      string `mapstructure:"encoding" yaml:"encoding"`
	Sheet         string `mapstructure:"sheet" yaml:"sheet,omitempty"`

	// Trip filters and chart defaults
	InvalidSurveyorID int `mapstructure:"invalid_surveyor_id" yaml:"invalid_surveyor_id"`
	ODDefaultCities   int `mapstructure:"od_default_cities" yaml:"od_default_cities"`
	HistogramBins     int `mapstructure:"histogram_bins" yaml:"histogram_bins"`

	// Fixed category maps, keyed by code ("13": "Car (driver)")
	ModeLabels   map[string]string `mapstructure:"mode_labels" yaml:"mode_labels,omitempty"`
	MotiveLabels map[string]string `mapstructure:"motive_labels" yaml:"motive_labels,omitempty"`

	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr          string   `mapstructure:"addr" yaml:"addr"`
	SessionTTLMin int      `mapstructure:"session_ttl_min" yaml:"session_ttl_min"`
	MaxSessions   int      `mapstructure:"max_sessions" yaml:"max_sessions"`
	CORSOrigins   []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// SessionTTL returns the idle lifetime of an API session.
func (s ServerConfig) SessionTTL() time.Duration {
	if s.SessionTTLMin <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(s.SessionTTLMin) * time.Minute
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Dir is the per-user configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".odpanel"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.odpanel/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("ODPANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", "data")
	v.SetDefault("trips_file", "")
	v.SetDefault("socio_file", "")
	v.SetDefault("dwellings_file", "")
	v.SetDefault("delimiter", ",")
	v.SetDefault("encoding", "latin1")
	v.SetDefault("sheet", "")
	v.SetDefault("invalid_surveyor_id", 0)
	v.SetDefault("od_default_cities", 10)
	v.SetDefault("histogram_bins", 30)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.session_ttl_min", 30)
	v.SetDefault("server.max_sessions", 64)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ModeLabels == nil {
		c.ModeLabels = codeMap(labels.DefaultModes)
	}
	if c.MotiveLabels == nil {
		c.MotiveLabels = codeMap(labels.DefaultMotives)
	}
	return &c, nil
}

func codeMap(m map[int]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[fmt.Sprint(k)] = v
	}
	return out
}

// DelimiterRune decodes the delimiter setting. "tab" and "\t" select a tab.
func (c *Global) DelimiterRune() (rune, error) {
	switch strings.ToLower(c.Delimiter) {
	case "":
		return 0, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size != len(c.Delimiter) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	return r, nil
}

// ReadOptions returns the loader options for the configured input format.
func (c *Global) ReadOptions() (dataset.ReadOptions, error) {
	d, err := c.DelimiterRune()
	if err != nil {
		return dataset.ReadOptions{}, err
	}
	return dataset.ReadOptions{Delimiter: d, Encoding: c.Encoding, Sheet: c.Sheet}, nil
}

// Sources returns the three input files in load order.
func (c *Global) Sources() []dataset.Source {
	sources := dataset.DefaultSources(c.DataDir)
	for i := range sources {
		var explicit string
		switch sources[i].Kind {
		case dataset.KindTrips:
			explicit = c.TripsFile
		case dataset.KindSocio:
			explicit = c.SocioFile
		case dataset.KindDwellings:
			explicit = c.DwellingsFile
		}
		if explicit != "" {
			sources[i].Path = explicit
		}
	}
	return sources
}

// Modes builds the transport mode lookup.
func (c *Global) Modes() (*labels.Labels, error) {
	m, err := labels.ParseMap(c.ModeLabels)
	if err != nil {
		return nil, fmt.Errorf("mode_labels: %w", err)
	}
	return labels.Static(m, labels.OtherID), nil
}

// Motives builds the trip motive lookup.
func (c *Global) Motives() (*labels.Labels, error) {
	m, err := labels.ParseMap(c.MotiveLabels)
	if err != nil {
		return nil, fmt.Errorf("motive_labels: %w", err)
	}
	return labels.Static(m, labels.OtherID), nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	lvl := cfg.Level
	if lvl == "" {
		lvl = "info"
	}
	level, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}
