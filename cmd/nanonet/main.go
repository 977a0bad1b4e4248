package main

import (
	"fmt"
	"os"
	"runtime/debug"

	flag "github.com/spf13/pflag"

	"github.com/BigHat-Biosciences/NanoNet/internal/config"
)

func main() {
	os.Exit(run())
}

const usageText = `Usage: nanonet <command> [flags] [args...]

Commands:
  predict   Predict structures for antibody VH / TCR VB sequences
  fetch     Download the trained model repository into the cache
  info      Show the cached model, its weights and its model card
  archive   Zip a results directory
  serve     Run the prediction HTTP server
  init      Generate a default .nanonet.yml config file
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'nanonet <command> --help' for more information on a command.
`

func run() int {
	// Handle no arguments: print usage, exit 0.
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	// Handle global flags before subcommand dispatch.
	first := os.Args[1]

	switch first {
	case "--help", "-h":
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	// Dispatch to subcommand.
	switch first {
	case "predict":
		return runPredict(os.Args[2:])
	case "fetch":
		return runFetch(os.Args[2:])
	case "info":
		return runInfo(os.Args[2:])
	case "archive":
		return runArchive(os.Args[2:])
	case "serve":
		return runServe(os.Args[2:])
	case "init":
		return runInit(os.Args[2:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "nanonet: unknown command %q\n\n%s", first, usageText)
		return 2
	}
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("nanonet %s\n", version)
}

// runInit implements the "init" subcommand: generate .nanonet.yml.
func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nanonet init\n\n"+
			"Generate a default .nanonet.yml config file in the current directory.\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "nanonet: init takes no arguments\n")
		return 2
	}

	const configFile = ".nanonet.yml"

	// Check if config file already exists.
	if _, err := os.Stat(configFile); err == nil {
		fmt.Fprintf(os.Stderr, "nanonet: %s already exists\n", configFile)
		return 2
	}

	data, err := config.Dump(config.Defaults())
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanonet: marshalling config: %v\n", err)
		return 2
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "nanonet: writing %s: %v\n", configFile, err)
		return 2
	}

	fmt.Fprintf(os.Stderr, "nanonet: created %s\n", configFile)
	return 0
}

// loadConfig loads configuration by either using the specified path or
// discovering a config file from the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	defaults := config.Defaults()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return config.Merge(defaults, loaded), nil
	}

	// Try to discover a config file.
	cwd, err := os.Getwd()
	if err != nil {
		return config.Merge(defaults, nil), nil
	}

	discovered, err := config.Discover(cwd)
	if err != nil {
		return config.Merge(defaults, nil), nil
	}

	if discovered == "" {
		return config.Merge(defaults, nil), nil
	}

	loaded, err := config.Load(discovered)
	if err != nil {
		return nil, err
	}

	return config.Merge(defaults, loaded), nil
}
