package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MainOptions are the global flags, given before the command.
type MainOptions struct {
	Verbose int
	LogPath string
}

// SourceOptions select where the parses come from.
type SourceOptions struct {
	ParserURL string
	TaggerURL string
	Conll     string
	Cache     string
}

// Option structs for subcommands that have flags
type ConvertOptions struct {
	SourceOptions
	In      string
	Out     string
	Workers int
	Ordered bool
	NoColor bool
}

type DecOptions struct {
	SourceOptions
	Debug   bool
	JSON    bool
	Context string
	NoColor bool
}

type SentenceOptions struct {
	SourceOptions
	NoColor bool
}

type QueryOptions struct {
	SourceOptions
	NoColor bool
}

type ImportParseOptions struct {
	From string
	To   string
}

type ExportParseOptions struct {
	From string
	To   string
}

func parseMainArgs(args []string, ui UI) (MainOptions, string, []string, error) {
	fs := flag.NewFlagSet("qadecl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	setupUsage(fs)

	var opts MainOptions
	fs.IntVar(&opts.Verbose, "v", 0, "Log verbosity (0 warnings and notices, 1 info, 2 debug)")
	fs.StringVar(&opts.LogPath, "log", os.Getenv("QADECL_LOG"), "Log file path (default stderr)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, "", nil, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, "", nil, err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", nil, errors.New("no command provided")
	}

	cmd := fs.Arg(0)
	cmdArgs := fs.Args()[1:]
	return opts, cmd, cmdArgs, nil
}

// addSourceFlags registers the flags shared by every command that parses
// sentences.
func addSourceFlags(fs *flag.FlagSet, opts *SourceOptions) {
	fs.StringVar(&opts.ParserURL, "parser-url", os.Getenv("QADECL_PARSER_URL"), "URL of the dependency parser predict endpoint")
	fs.StringVar(&opts.TaggerURL, "tagger-url", os.Getenv("QADECL_TAGGER_URL"), "URL of the fine-grained tagger predict endpoint")
	fs.StringVar(&opts.Conll, "conll", "", "Directory of pre-parsed CoNLL files, used instead of the parser service")
	fs.StringVar(&opts.Cache, "cache", os.Getenv("QADECL_CACHE"), "Parse cache: directory, *.bolt file or SQLite file")
	fs.StringVar(&opts.Cache, "c", os.Getenv("QADECL_CACHE"), "alias for -cache")
}

func validateSource(opts SourceOptions) error {
	if opts.Conll != "" {
		return nil
	}

	if opts.ParserURL == "" || opts.TaggerURL == "" {
		return errors.New("parser and tagger URLs must be specified via -parser-url/-tagger-url or QADECL_PARSER_URL/QADECL_TAGGER_URL, or use -conll")
	}

	return nil
}

func defaultWorkers() int {
	if v := os.Getenv("QADECL_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 4
}

func parseConvertArgs(args []string, ui UI) (ConvertOptions, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ConvertOptions
	fs.StringVar(&opts.In, "in", "", "Input SQuAD JSON file")
	fs.StringVar(&opts.Out, "out", "", "Output SQuAD JSON file with cloze questions")
	fs.IntVar(&opts.Workers, "workers", defaultWorkers(), "Number of concurrent workers")
	fs.IntVar(&opts.Workers, "w", defaultWorkers(), "alias for -workers")
	fs.BoolVar(&opts.Ordered, "ordered", false, "Keep the input order of the articles in the output")
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable color output")
	addSourceFlags(fs, &opts.SourceOptions)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s convert [options] -in <squad.json> -out <cloze.json>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Rewrite every answerable question of a SQuAD dataset as a cloze question.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, err
	}

	if fs.NArg() > 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, errors.New("convert command does not accept arguments")
	}

	if opts.In == "" || opts.Out == "" {
		return opts, errors.New("both -in and -out must be specified")
	}

	if opts.Workers < 1 {
		return opts, fmt.Errorf("invalid number of workers: %d", opts.Workers)
	}

	if err := validateSource(opts.SourceOptions); err != nil {
		return opts, err
	}

	return opts, nil
}

func parseDecArgs(args []string, ui UI) (DecOptions, string, string, error) {
	fs := flag.NewFlagSet("dec", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts DecOptions
	fs.BoolVar(&opts.Debug, "debug", false, "Dump the question and answer analyses")
	fs.BoolVar(&opts.JSON, "json", false, "Print the result as JSON")
	fs.StringVar(&opts.Context, "context", "", "Passage the answer must occur in (default question and answer)")
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable color output")
	addSourceFlags(fs, &opts.SourceOptions)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s dec [options] <question> <answer>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Convert one question and answer pair to a declarative and a cloze sentence.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, "", "", err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, "", "", err
	}

	if fs.NArg() != 2 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", "", errors.New("dec command needs exactly two arguments: <question> <answer>")
	}

	if err := validateSource(opts.SourceOptions); err != nil {
		return opts, "", "", err
	}

	return opts, fs.Arg(0), fs.Arg(1), nil
}

func parseSentenceArgs(args []string, ui UI) (SentenceOptions, string, error) {
	fs := flag.NewFlagSet("sentence", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts SentenceOptions
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable color output")
	addSourceFlags(fs, &opts.SourceOptions)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s sentence [options] <text>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Show the tokens of the parse of a sentence.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, "", err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, "", err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", errors.New("sentence command needs a text argument")
	}

	if err := validateSource(opts.SourceOptions); err != nil {
		return opts, "", err
	}

	return opts, strings.Join(fs.Args(), " "), nil
}

func parseQueryArgs(args []string, ui UI) (QueryOptions, error) {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts QueryOptions
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable color output")
	addSourceFlags(fs, &opts.SourceOptions)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s query [options]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Interactive prompt: type 'question | answer [| context]'.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, err
	}

	if fs.NArg() > 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, errors.New("query command does not accept arguments")
	}

	if err := validateSource(opts.SourceOptions); err != nil {
		return opts, err
	}

	return opts, nil
}

func parseImportParseArgs(args []string, ui UI) (ImportParseOptions, error) {
	fs := flag.NewFlagSet("import-parse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ImportParseOptions
	fs.StringVar(&opts.From, "from", "", "Source directory of CoNLL files")
	fs.StringVar(&opts.To, "to", "", "Destination parse cache (*.bolt or SQLite file)")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s import-parse -from <dir> -to <cache>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Import CoNLL parses into a parse cache.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, err
	}

	if opts.From == "" || opts.To == "" {
		return opts, errors.New("both -from and -to must be specified")
	}

	return opts, nil
}

func parseExportParseArgs(args []string, ui UI) (ExportParseOptions, error) {
	fs := flag.NewFlagSet("export-parse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ExportParseOptions
	fs.StringVar(&opts.From, "from", "", "Source parse cache (*.bolt or SQLite file)")
	fs.StringVar(&opts.To, "to", "", "Destination directory for CoNLL files")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s export-parse -from <cache> -to <dir>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Export the parses of a parse cache as CoNLL files.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, err
	}

	if opts.From == "" || opts.To == "" {
		return opts, errors.New("both -from and -to must be specified")
	}

	return opts, nil
}

func parseBashArgs(args []string, ui UI) error {
	fs := flag.NewFlagSet("bash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s bash\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Print the bash completion script. Use: source <(%s bash)\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return err
	}

	return nil
}

func setupUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s [global options] <command> [options]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nCommands:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  convert       Convert a SQuAD dataset to cloze questions\n")
		_, _ = fmt.Fprintf(fs.Output(), "  dec           Convert one question and answer pair\n")
		_, _ = fmt.Fprintf(fs.Output(), "  sentence      Show the parse of a sentence\n")
		_, _ = fmt.Fprintf(fs.Output(), "  query         Interactive question and answer prompt\n")
		_, _ = fmt.Fprintf(fs.Output(), "  import-parse  Import CoNLL parses into a parse cache\n")
		_, _ = fmt.Fprintf(fs.Output(), "  export-parse  Export a parse cache as CoNLL files\n")
		_, _ = fmt.Fprintf(fs.Output(), "  bash          Print the bash completion script\n")
		_, _ = fmt.Fprintf(fs.Output(), "  version       Show version\n")
		_, _ = fmt.Fprintf(fs.Output(), "  help          Show help for a command\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nGlobal options:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nEnvironment:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  QADECL_PARSER_URL, QADECL_TAGGER_URL, QADECL_CACHE, QADECL_WORKERS, QADECL_LOG\n")
	}
}
