package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestRegisterFlagsAndParse(t *testing.T) {
	f := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.RegisterFlags(fs)
	if err := fs.Parse([]string{"-relational-domain", "-debug-level=2"}); err != nil {
		t.Fatal(err)
	}
	if !f.RelationalDomainEnabled {
		t.Fatal("expected relational-domain flag to be set")
	}
	if !f.DebugEnabled() {
		t.Fatal("expected DebugEnabled() once debug-level >= 1")
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "relational-domain-enabled: true\ndebug-level: 3\nwrite-html: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !f.RelationalDomainEnabled || f.DebugLevel != 3 || !f.WriteHTML {
		t.Fatalf("unexpected flags after Load: %+v", f)
	}
}

func TestDefaultIsQuiet(t *testing.T) {
	f := Default()
	if f.RelationalDomainEnabled || f.WriteHTML || f.DebugEnabled() {
		t.Fatal("Default() must be the least chatty configuration")
	}
}
