// Package main performs a provably fair draw and prints its receipt.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	platformcmd "github.com/louisbranch/provable/internal/platform/cmd"
	"github.com/louisbranch/provable/internal/platform/config"
	"github.com/louisbranch/provable/internal/tools/draw"
)

func main() {
	cfg, err := draw.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceDraw, func(ctx context.Context) error {
		return draw.Run(ctx, cfg, os.Stdout, nil)
	})
	if err != nil {
		stop()
		config.ExitError("draw", err, cfg.Lang)
	}
}
