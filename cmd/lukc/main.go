package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/lhaig/lukasiewicz/internal/backend"
	"github.com/lhaig/lukasiewicz/internal/compiler"
	"github.com/lhaig/lukasiewicz/internal/config"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
)

const usage = `lukc - the Łukasiewicz compiler

Usage:
  lukc [-log level] <command> [options] [path ...]

Commands:
  print   Build each file and write it to stdout in the chosen mode
  emit    Build each file and write <file>.<ext> beside it
  check   Build only and report diagnostics
  lint    Build and run the style checks
  repl    Read statements interactively
  help    Show this message

Options (print, emit, check, lint, repl):
  -config path   Settings file (default ./.lukc.yaml when present)
  -mode name     Output mode: %s

Directories are searched for *.luk files.
`

func printUsage() {
	fmt.Fprintf(os.Stderr, usage, strings.Join(backend.Names(), ", "))
}

func main() {
	log.AddFlags()
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(2)
	}

	switch cmd := args[0]; cmd {
	case "print":
		os.Exit(cmdBuild(cmd, args[1:], writeStdout))
	case "emit":
		os.Exit(cmdBuild(cmd, args[1:], writeTarget))
	case "check":
		os.Exit(cmdCheck("check", args[1:], compiler.Check))
	case "lint":
		os.Exit(cmdCheck("lint", args[1:], compiler.Lint))
	case "repl":
		os.Exit(cmdRepl(args[1:]))
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "lukc: unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(2)
	}
}

// settings parses the options every command shares and returns the
// resulting configuration with the remaining arguments.
func settings(name string, args []string) (*config.Config, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	configPath := fs.String("config", "", "settings file")
	mode := fs.String("mode", "", "output mode")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, nil, err
	}
	if *mode != "" {
		cfg.Mode = *mode
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	log.Debug.Printf("mode %s, indent %d, jobs %d", cfg.Mode, cfg.Indent, cfg.Jobs)
	return cfg, fs.Args(), nil
}

func sources(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, errors.E(errors.Invalid, "no input files")
	}
	return compiler.Discover(paths)
}

type writer func(res compiler.FileResult, cfg *config.Config) error

func writeStdout(res compiler.FileResult, _ *config.Config) error {
	_, err := fmt.Print(res.Output)
	return err
}

func writeTarget(res compiler.FileResult, cfg *config.Config) error {
	be, err := backend.Lookup(cfg.Mode)
	if err != nil {
		return err
	}
	out := strings.TrimSuffix(res.Path, compiler.SourceExt) + be.Extension()
	if err := os.WriteFile(out, []byte(res.Output), 0644); err != nil {
		return err
	}
	log.Printf("wrote %s", out)
	return nil
}

func cmdBuild(name string, args []string, write writer) int {
	cfg, rest, err := settings(name, args)
	if err != nil {
		log.Error.Printf("%s: %v", name, err)
		return 2
	}
	paths, err := sources(rest)
	if err != nil {
		log.Error.Printf("%s: %v", name, err)
		return 2
	}

	results, err := compiler.CompileFiles(context.Background(), paths, cfg)
	if err != nil {
		log.Error.Printf("%s: %v", name, err)
		return 1
	}

	status := 0
	for _, res := range results {
		if res.Diagnostics.Count() > 0 {
			fmt.Fprintln(os.Stderr, res.Diagnostics.Format(res.Path))
		}
		if res.Diagnostics.HasErrors() {
			status = 1
			continue
		}
		if err := write(res, cfg); err != nil {
			log.Error.Printf("%s: %v", res.Path, err)
			status = 1
		}
	}
	return status
}

func cmdCheck(name string, args []string, run func(string, *config.Config) *diagnostic.Diagnostics) int {
	cfg, rest, err := settings(name, args)
	if err != nil {
		log.Error.Printf("%s: %v", name, err)
		return 2
	}
	paths, err := sources(rest)
	if err != nil {
		log.Error.Printf("%s: %v", name, err)
		return 2
	}

	status, total := 0, 0
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			log.Error.Printf("%s: %v", name, err)
			return 1
		}
		diags := run(string(source), cfg)
		total += diags.Count()
		if diags.Count() > 0 {
			fmt.Println(diags.Format(path))
		}
		if diags.HasErrors() {
			status = 1
		}
	}

	if total == 0 {
		fmt.Println("No problems found.")
	}
	return status
}
