// Package main runs seeded headless slot battles and prints a report.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/eloibahuet/egypt-adventures/internal/platform/config"

	simulatecmd "github.com/eloibahuet/egypt-adventures/internal/cmd/simulate"
)

func main() {
	cfg, err := simulatecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := simulatecmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.ExitError("Error", cfg.Locale, err)
	}
}
