package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	noircmd "github.com/louisbranch/noir/internal/cmd/noir"
)

func main() {
	cfg, err := noircmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[NOIR] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := noircmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
