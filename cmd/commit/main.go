// Package main generates the seed pair for a new round.
//
// It prints the pair as shell exports together with the hashed server seed
// that is published before the round.
package main

import (
	"flag"
	"os"

	"github.com/louisbranch/provable/internal/platform/config"
	"github.com/louisbranch/provable/internal/tools/commit"
)

func main() {
	cfg, err := commit.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := commit.Run(cfg, os.Stdout, nil); err != nil {
		config.ExitError("generate seeds", err, cfg.Lang)
	}
}
