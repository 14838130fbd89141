package config

import (
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/odpanel/internal/dataset"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataDir != "data" || c.Encoding != "latin1" || c.Delimiter != "," {
		t.Fatalf("unexpected input defaults: %+v", c)
	}
	if c.ODDefaultCities != 10 || c.HistogramBins != 30 || c.InvalidSurveyorID != 0 {
		t.Fatalf("unexpected view defaults: %+v", c)
	}
	if c.Server.Addr != ":8080" || c.Server.SessionTTL().Minutes() != 30 {
		t.Fatalf("unexpected server defaults: %+v", c.Server)
	}
	modes, err := c.Modes()
	if err != nil {
		t.Fatalf("Modes: %v", err)
	}
	if got := modes.Label(99); got != "Other (ID 99)" {
		t.Fatalf("fallback label = %q", got)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ODPANEL_DATA_DIR", "/srv/survey")
	t.Setenv("ODPANEL_SERVER_ADDR", ":9090")
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataDir != "/srv/survey" {
		t.Fatalf("data_dir = %q", c.DataDir)
	}
	if c.Server.Addr != ":9090" {
		t.Fatalf("server.addr = %q", c.Server.Addr)
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "odpanel.yaml")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load missing explicit file: %v", err)
	}
	c.Delimiter = ";"
	c.TripsFile = "/tmp/viagens.xlsx"
	c.ModeLabels["99"] = "Scooter"
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if r, err := back.DelimiterRune(); err != nil || r != ';' {
		t.Fatalf("delimiter = %q, %v", r, err)
	}
	modes, err := back.Modes()
	if err != nil {
		t.Fatalf("Modes: %v", err)
	}
	if got := modes.Label(99); got != "Scooter" {
		t.Fatalf("custom label = %q", got)
	}
	for _, s := range back.Sources() {
		if s.Kind == dataset.KindTrips && s.Path != "/tmp/viagens.xlsx" {
			t.Fatalf("explicit trips path ignored: %s", s.Path)
		}
		if s.Kind == dataset.KindSocio && s.Path != filepath.Join("data", "socio.csv") {
			t.Fatalf("socio path = %s", s.Path)
		}
	}
}

func TestDelimiterRune(t *testing.T) {
	cases := map[string]rune{"": 0, ",": ',', ";": ';', "tab": '\t', `\t`: '\t', "|": '|'}
	for in, want := range cases {
		c := &Global{Delimiter: in}
		got, err := c.DelimiterRune()
		if err != nil || got != want {
			t.Fatalf("DelimiterRune(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	c := &Global{Delimiter: ";;"}
	if _, err := c.DelimiterRune(); err == nil {
		t.Fatalf("expected error for multi-character delimiter")
	}
}

func TestInvalidLabelMap(t *testing.T) {
	c := &Global{MotiveLabels: map[string]string{"work": "Work"}}
	if _, err := c.Motives(); err == nil {
		t.Fatalf("expected error for non-numeric label code")
	}
}

func TestInitLogger(t *testing.T) {
	if err := InitLogger(LogConfig{Level: "debug", Format: "json"}); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	if err := InitLogger(LogConfig{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
