// Package noir parses gateway command flags and starts the service runtime.
package noir

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/noir/internal/platform/cmd"
	"github.com/louisbranch/noir/internal/server"
	"github.com/louisbranch/noir/internal/storage/sqlite"
)

// Config holds gateway command configuration.
type Config struct {
	Port   int    `env:"NOIR_PORT" envDefault:"8080"`
	Addr   string `env:"NOIR_ADDR"`
	DBPath string `env:"NOIR_DB_PATH" envDefault:"noir.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The gateway port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The gateway listen address (overrides -port)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "The SQLite database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the gateway service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceNoir, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		addr := cfg.Addr
		if addr == "" {
			addr = fmt.Sprintf(":%d", cfg.Port)
		}
		hub := server.NewHub()
		service := server.NewService(store, hub)
		return server.New(addr, service, hub).Serve(ctx)
	})
}
