package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/viant/jsxmark/annotator"
	"github.com/viant/jsxmark/processor"
)

func main() {
	var configPath string
	var skipCSV string
	var bridge string
	var write bool
	flag.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	flag.StringVar(&skipCSV, "skip", "", "Comma-separated filename fragments to skip")
	flag.StringVar(&bridge, "bridge", "", "Runtime bridge component tag override")
	flag.BoolVar(&write, "write", false, "Rewrite files in place instead of printing to stdout")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file|directory>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAnnotates JSX/TSX sources with traceability metadata.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	config := annotator.DefaultConfig()
	if configPath != "" {
		loaded, err := annotator.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		config = loaded
	}
	if skipCSV != "" {
		for _, skip := range strings.Split(skipCSV, ",") {
			if skip = strings.TrimSpace(skip); skip != "" {
				config.SkipFiles = append(config.SkipFiles, skip)
			}
		}
	}
	if bridge != "" {
		config.Bridge = bridge
	}

	proc := processor.New(config)
	ctx := context.Background()
	for _, target := range flag.Args() {
		if err := run(ctx, proc, target, write); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func run(ctx context.Context, proc *processor.Processor, target string, write bool) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return proc.ProcessPackage(ctx, target)
	}
	if write {
		return proc.ProcessFile(ctx, target)
	}
	src, err := os.ReadFile(target)
	if err != nil {
		return err
	}
	result, err := proc.ProcessSource(src, target)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(result)
	return err
}
