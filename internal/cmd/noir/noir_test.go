package noir

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("noir", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "noir.db" {
		t.Fatalf("db path = %q, want noir.db", cfg.DBPath)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("NOIR_PORT", "9100")
	t.Setenv("NOIR_DB_PATH", "/var/lib/noir/journal.db")

	fs := flag.NewFlagSet("noir", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-addr", "127.0.0.1:9200"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("port = %d, want env override 9100", cfg.Port)
	}
	if cfg.Addr != "127.0.0.1:9200" {
		t.Fatalf("addr = %q, want flag override", cfg.Addr)
	}
	if cfg.DBPath != "/var/lib/noir/journal.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
}
