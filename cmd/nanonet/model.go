package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/BigHat-Biosciences/NanoNet/internal/model"
)

// runFetch implements the "fetch" subcommand: resolve the trained-model
// repository into the cache so later predictions start without cloning.
func runFetch(args []string) int {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	var (
		configPath string
		force      bool
	)

	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.BoolVar(&force, "force", false, "Discard the cached copy and clone anew")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nanonet fetch [flags]\n\n"+
			"Clone or refresh the trained-model repository in the local cache.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "nanonet: fetch takes no arguments\n")
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
		return 2
	}

	src := model.Source{
		Repository: cfg.Model.Repository,
		CommitSHA:  cfg.Model.CommitSHA,
	}

	if force {
		if err := model.Invalidate(src, cfg.CacheDir); err != nil {
			fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
			return 2
		}
	}

	repoDir, err := model.Resolve(src, cfg.CacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
		return 2
	}

	weights, err := model.WeightsDir(repoDir, cfg.Model.Weights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
		return 2
	}

	fmt.Printf("model: %s\n", repoDir)
	fmt.Printf("weights: %s\n", weights)
	if tcr, err := model.WeightsDir(repoDir, cfg.Model.TCRWeights); err == nil {
		fmt.Printf("tcr weights: %s\n", tcr)
	} else {
		fmt.Printf("tcr weights: not available\n")
	}
	return 0
}

// runInfo implements the "info" subcommand: report on the cached model
// without touching the network.
func runInfo(args []string) int {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	var configPath string

	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nanonet info [flags]\n\n"+
			"Show the configured model source, the cached copy and its model card.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "nanonet: info takes no arguments\n")
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanonet: %v\n", err)
		return 2
	}

	src := model.Source{
		Repository: cfg.Model.Repository,
		CommitSHA:  cfg.Model.CommitSHA,
	}

	fmt.Printf("repository: %s\n", cfg.Model.Repository)
	if cfg.Model.CommitSHA != "" {
		fmt.Printf("commit: %s\n", cfg.Model.CommitSHA)
	}

	dir, cached := model.CachePath(src, cfg.CacheDir)
	if !cached {
		fmt.Printf("cache: not fetched (run 'nanonet fetch')\n")
		return 0
	}
	fmt.Printf("cache: %s\n", dir)

	if w, err := model.WeightsDir(dir, cfg.Model.Weights); err == nil {
		fmt.Printf("weights: %s\n", w)
	} else {
		fmt.Printf("weights: missing\n")
	}
	if w, err := model.WeightsDir(dir, cfg.Model.TCRWeights); err == nil {
		fmt.Printf("tcr weights: %s\n", w)
	} else {
		fmt.Printf("tcr weights: missing\n")
	}

	card, err := model.ReadCard(dir)
	if err != nil {
		return 0
	}
	if card.Name != "" {
		fmt.Printf("name: %s\n", card.Name)
	}
	if card.Version != "" {
		fmt.Printf("version: %s\n", card.Version)
	}
	if card.License != "" {
		fmt.Printf("license: %s\n", card.License)
	}
	if card.Description != "" {
		fmt.Printf("description: %s\n", card.Description)
	}
	return 0
}
