package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/BigHat-Biosciences/NanoNet/internal/log"
	"github.com/BigHat-Biosciences/NanoNet/internal/server"
)

// runServe implements the "serve" subcommand: run the prediction HTTP
// server. The model is resolved before listening so a bad configuration
// fails here, not on the first request.
func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var (
		configPath string
		addr       string
		verbose    bool
	)

	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVar(&addr, "addr", "", "Listen address (overrides the configured one)")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Log server events to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nanonet serve [flags]\n\n"+
			"Serve predictions over HTTP. POST a sequence to /api/v1/predict,\n"+
			"query the model with GET /api/v1/model.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "nanonet: serve takes no arguments\n")
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
		return 2
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger := &log.Logger{Enabled: verbose, W: os.Stderr}

	srv, err := server.New(cfg, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
		return 2
	}

	fmt.Fprintf(os.Stderr, "nanonet: serving on %s\n", cfg.Server.Addr)
	if err := srv.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
		return 2
	}
	return 0
}
