package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	opts, cmd, args, err := parseMainArgs(os.Args[1:], ui)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	configureLogging(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runCommand(ctx, cmd, args, ui); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fprintErr(ui.Err, err)
		stop()
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "qadecl: %v\n", err)
}

func configureLogging(opts MainOptions) {
	var path *string
	if opts.LogPath != "" {
		path = &opts.LogPath
	}
	commonlog.Configure(opts.Verbose, path)
}

func runCommand(ctx context.Context, cmd string, args []string, ui UI) error {
	switch cmd {
	case "help":
		if len(args) > 0 {
			return runCommand(ctx, args[0], []string{"--help"}, ui)
		}
		fs := flag.NewFlagSet("qadecl", flag.ContinueOnError)
		fs.SetOutput(ui.Out)
		setupUsage(fs)
		fs.Usage()
		return nil

	case "convert":
		opts, err := parseConvertArgs(args, ui)
		if err != nil {
			return err
		}
		return convertCommand(ctx, opts, ui)

	case "dec":
		opts, question, answer, err := parseDecArgs(args, ui)
		if err != nil {
			return err
		}
		return decCommand(ctx, opts, question, answer, ui)

	case "sentence":
		opts, text, err := parseSentenceArgs(args, ui)
		if err != nil {
			return err
		}
		return sentenceCommand(ctx, opts, text, ui)

	case "query":
		opts, err := parseQueryArgs(args, ui)
		if err != nil {
			return err
		}
		return queryCommand(ctx, opts, ui)

	case "import-parse":
		opts, err := parseImportParseArgs(args, ui)
		if err != nil {
			return err
		}
		return importParseCommand(opts, ui)

	case "export-parse":
		opts, err := parseExportParseArgs(args, ui)
		if err != nil {
			return err
		}
		return exportParseCommand(opts, ui)

	case "bash":
		if err := parseBashArgs(args, ui); err != nil {
			return err
		}
		return bashCommand(ui)

	case "complete":
		return completeCommand(args, ui)

	case "version":
		return versionCommand(ui)
	}

	return fmt.Errorf("unknown command: %s", cmd)
}
