// Package main runs the dossier command.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	dossiercmd "github.com/louisbranch/dossier/internal/cmd/dossier"
	"github.com/louisbranch/dossier/internal/platform/config"
)

func main() {
	cfg, err := dossiercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dossiercmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("dossier: %v", err)
	}
}
