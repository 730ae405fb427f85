// On the Rocks is a bartending narrative game: pour, serve, and watch the
// patrons' moods steer the conversation.
// Usage: ontherocks [--version] [--plain] [--trace] [--config <file>] [--script <file>] [content_directory]
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nathoo/ontherocks/cli"
	"github.com/nathoo/ontherocks/config"
	"github.com/nathoo/ontherocks/engine"
	"github.com/nathoo/ontherocks/loader"
	"github.com/nathoo/ontherocks/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: ontherocks [--version] [--plain] [--trace] [--config <file>] [--script <file>] [content_directory]\n"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run plays one session and returns the process exit code. Deferred
// cleanup always runs before main exits.
func run(args []string, stdout, stderr io.Writer) int {
	plain := false
	trace := false
	var contentDir string
	var scriptFile string
	var configFile string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Fprintf(stdout, "ontherocks %s (commit %s, built %s)\n", version, commit, date)
			return 0
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script", "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(stderr, "%s requires a file path\n", args[i])
				return 1
			}
			if args[i] == "--script" {
				scriptFile = args[i+1]
			} else {
				configFile = args[i+1]
			}
			i++
		case "--help", "-h":
			fmt.Fprint(stdout, usage)
			return 0
		default:
			if contentDir == "" {
				contentDir = args[i]
			}
		}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if contentDir != "" {
		cfg.ContentDir = contentDir
	}
	cfg.Plain = cfg.Plain || plain
	cfg.Trace = cfg.Trace || trace

	logger := log.New(io.Discard, "", 0)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "Error opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	}

	// Load and compile Lua bar content.
	defs, err := loader.Load(cfg.ContentDir, loader.WithLogger(log.New(stderr, "warning: ", 0)))
	if err != nil {
		logger.Printf("main: %v", err)
		fmt.Fprintf(stderr, "Error loading content: %v\n", err)
		return 1
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	if cfg.Glass != "" {
		opts = append(opts, engine.WithGlass(cfg.Glass))
	}
	eng, err := engine.New(defs, opts...)
	if err != nil {
		logger.Printf("main: %v", err)
		fmt.Fprintf(stderr, "Error starting engine: %v\n", err)
		return 1
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error opening script: %v\n", err)
			return 1
		}
		defer f.Close()
		fmt.Fprintf(stdout, "%s v%s by %s\n\n", defs.Game.Title, defs.Game.Version, defs.Game.Author)
		c := cli.New(eng)
		c.In = f
		c.Out = stdout
		c.EchoInput = true
		c.Trace = cfg.Trace
		c.Run()
		return 0
	}

	// Use plain CLI if requested or stdout is not a terminal.
	if cfg.Plain || !isTerminal() {
		fmt.Fprintf(stdout, "%s v%s by %s\n\n", defs.Game.Title, defs.Game.Version, defs.Game.Author)
		c := cli.New(eng)
		c.Out = stdout
		c.Trace = cfg.Trace
		c.Run()
		return 0
	}

	if err := tui.Run(eng, tui.Options{Trace: cfg.Trace, HistorySize: cfg.HistorySize}); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
