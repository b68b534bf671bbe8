// Package main is a standalone terminal harness for the enum editor plugin.
// It plays the role of the host: it loads the plugin, dispatches an open
// request for the path on the command line, and drives the returned panel.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/enumedit/internal/enumdoc"
	"github.com/dshills/enumedit/internal/logging"
	"github.com/dshills/enumedit/internal/plugin"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	logLevel string
	logFile  string
	watch    bool
	create   bool
	path     string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger := logging.New(logging.DefaultConfig())
	logger.SetLevel(logging.ParseLevel(opts.logLevel))
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		// The terminal belongs to tcell while we run; keep stderr quiet.
		logger.SetLevel(logging.LevelError)
	}

	if opts.create {
		if err := createDocument(opts.path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	p := plugin.New(
		plugin.WithLogger(logger.WithComponent("plugin")),
		plugin.WithFileWatching(opts.watch),
	)
	p.OnLoad()
	defer p.OnUnload()

	panel, inst, err := p.CreateEditor(context.Background(), plugin.EditorIDEnum, opts.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	ctx := context.Background()
	for {
		screen.Clear()
		w, h := screen.Size()
		panel.Draw(screen, 0, 0, w, h)
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventInterrupt:
			return 0
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyCtrlQ:
				return 0
			case ev.Key() == tcell.KeyCtrlS:
				if err := inst.Save(ctx); err != nil {
					logger.Error("save failed: %v", err)
				}
			case ev.Key() == tcell.KeyCtrlR:
				if err := inst.Reload(ctx); err != nil {
					logger.Error("reload failed: %v", err)
				}
			default:
				if !panel.HandleKey(ev) && ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
					return 0
				}
			}
		}
	}
}

// createDocument materializes a fresh folder-based enum document at path so
// the editor has something to open.
func createDocument(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create document folder: %w", err)
	}
	marker := filepath.Join(path, "enum.json")
	if _, err := os.Stat(marker); err == nil {
		return nil
	}
	if _, err := enumdoc.Create(marker); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	flag.BoolVar(&opts.watch, "watch", true, "Detect external changes to the open document")
	flag.BoolVar(&opts.create, "new", false, "Create the document if it does not exist")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Enumedit - terminal enum definition editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: enumedit [options] <path.enum>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  enumedit Colors.enum          Open an enum document folder\n")
		fmt.Fprintf(os.Stderr, "  enumedit -new Status.enum     Create and open a new document\n")
		fmt.Fprintf(os.Stderr, "\nKeys: Tab cycles panes, Ctrl+S saves, Ctrl+R reloads, Ctrl+Q quits\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Enumedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	opts.path = flag.Arg(0)

	return opts
}
