// Package main verifies a revealed draw receipt.
//
// The exit status is 0 when the receipt checks out, 3 when the seed or the
// result does not match, and 2 for invalid input.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	platformcmd "github.com/louisbranch/provable/internal/platform/cmd"
	"github.com/louisbranch/provable/internal/platform/config"
	"github.com/louisbranch/provable/internal/tools/verify"
)

func main() {
	cfg, err := verify.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceVerify, func(ctx context.Context) error {
		return verify.Run(ctx, cfg, os.Stdin, os.Stdout)
	})
	if err != nil {
		stop()
		config.ExitError("verify", err, cfg.Lang)
	}
}
