package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInspectFiles_CollisionSuffix(t *testing.T) {
	home := isolate(t)

	// Two extracts with the same basename in different directories
	d1 := filepath.Join(home, "d1")
	d2 := filepath.Join(home, "d2")
	for _, d := range []string{d1, d2} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
		body := "idade,sexo\n34,FEMININO\n36,MASCULINO\n4,MASCULINO\n"
		if err := os.WriteFile(filepath.Join(d, "socio.csv"), []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	outDir := filepath.Join(home, "summaries")
	out := mustRun(t, "inspect-files", filepath.Join(home, "d*", "socio.csv"), "--out-dir", outDir, "--group-by", "sexo")
	if !strings.Contains(out, "[1/2] Processing socio.csv") || !strings.Contains(out, "[2/2] Processing socio.csv") {
		t.Fatalf("expected progress lines, got:\n%s", out)
	}

	b1 := filepath.Join(outDir, "socio.summary.md")
	b2 := filepath.Join(outDir, "socio__2.summary.md")
	body, err := os.ReadFile(b1)
	if err != nil {
		t.Fatalf("missing first summary: %v", err)
	}
	if _, err := os.Stat(b2); err != nil {
		t.Fatalf("missing second summary: %v", err)
	}
	if !strings.Contains(string(body), "[GROUP-BY SUMMARY]") || !strings.Contains(string(body), "idade") {
		t.Fatalf("unexpected summary:\n%s", body)
	}
}

func TestInspectFiles_NoMatch(t *testing.T) {
	home := isolate(t)
	if _, err := runCmd(t, "inspect-files", filepath.Join(home, "nothing*.csv")); err == nil {
		t.Fatalf("expected error when no file matches")
	}
}
