package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Kaljurand/aceview-sub001/render"
)

const (
	envDocPath = "ACEVIEW_DOC_PATH"
	envLexicon = "ACEVIEW_LEXICON"

	jsonFormat = "json"
)

var digitRegex = regexp.MustCompile(`^\d+$`)

// Option structs for subcommands that have flags
type TokenizeOptions struct {
	Lexicon string
}

type SplitOptions struct {
	CSV     bool
	Format  string
	Lexicon string
}

type StatOptions struct {
	CSV     bool
	DocPath string
	Lexicon string
}

type LexiconOptions struct {
	Lexicon string
}

type ImportOptions struct {
	From    string
	To      string
	Lexicon string
}

type ExportOptions struct {
	From string
	To   string
}

type DocOptions struct {
	Start   int
	Count   int
	Format  string
	DocPath string
}

type LabelsOptions struct {
	Match   string
	DocPath string
}

type QueryOptions struct {
	NoColor  bool
	NoPrefix bool
	NMatches int
	Format   string
	Doc      *int // nil = not set
	DocPath  string
	Lexicon  string
}

type EditOptions struct {
	Lexicon string
}

type WatchOptions struct {
	Dir        string
	Extensions []string
	DocPath    string
	Lexicon    string
}

// stringSliceFlag implements flag.Value for multi-value strings
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// enumFlag implements flag.Value for restricted strings
type enumFlag struct {
	allowed []string
	value   *string
}

func (e *enumFlag) String() string {
	if e.value == nil {
		return ""
	}
	return *e.value
}

func (e *enumFlag) Set(value string) error {
	for _, a := range e.allowed {
		if a == value {
			*e.value = value
			return nil
		}
	}
	return fmt.Errorf("allowed values are %s", strings.Join(e.allowed, ", "))
}

// optionalInt implements flag.Value for optional integer flags
type optionalInt struct {
	value *int
}

func (o *optionalInt) String() string {
	if o.value == nil {
		return ""
	}
	return strconv.Itoa(*o.value)
}

func (o *optionalInt) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	o.value = &v
	return nil
}

// parseFlags parses args and prints the usage to ui.Out on -help and to
// ui.Err on a flag error.
func parseFlags(fs *flag.FlagSet, args []string, ui UI) error {
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

func usageFunc(fs *flag.FlagSet, usage, description string) func() {
	return func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s %s\n", os.Args[0], usage)
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  %s\n", description)
		hasFlags := false
		fs.VisitAll(func(*flag.Flag) { hasFlags = true })
		if hasFlags {
			_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
			fs.PrintDefaults()
		}
	}
}

func lexiconFlag(fs *flag.FlagSet, p *string) {
	fs.StringVar(p, "lexicon", os.Getenv(envLexicon), "Path to ACE lexicon file (.pl, .lex) or SQLite file")
	fs.StringVar(p, "l", os.Getenv(envLexicon), "alias for -lexicon")
}

func docPathFlag(fs *flag.FlagSet, p *string) {
	fs.StringVar(p, "doc-path", os.Getenv(envDocPath), "Path to docs directory or SQLite file")
	fs.StringVar(p, "d", os.Getenv(envDocPath), "alias for -doc-path")
}

// registerGlogFlags makes the glog flags of flag.CommandLine (-v,
// -logtostderr, ...) global options of aceview.
func registerGlogFlags(fs *flag.FlagSet) {
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		fs.Var(f.Value, f.Name, f.Usage)
	})
}

func parseMainArgs(args []string, ui UI) (string, []string, error) {
	fs := flag.NewFlagSet("aceview", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	registerGlogFlags(fs)
	setupUsage(fs)

	if err := parseFlags(fs, args, ui); err != nil {
		return "", nil, err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return "", nil, errors.New("no command provided")
	}

	cmd := fs.Arg(0)
	cmdArgs := fs.Args()[1:]
	return cmd, cmdArgs, nil
}

// optionalFileArg returns the single optional file argument. An empty
// string means standard input.
func optionalFileArg(fs *flag.FlagSet, name string) (string, error) {
	if fs.NArg() > 1 {
		return "", fmt.Errorf("%s command accepts at most one argument", name)
	}
	return fs.Arg(0), nil
}

func parseTokenizeArgs(args []string, ui UI) (TokenizeOptions, string, error) {
	fs := flag.NewFlagSet("tokenize", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts TokenizeOptions
	lexiconFlag(fs, &opts.Lexicon)
	fs.Usage = usageFunc(fs, "tokenize [options] [file]", "Print one token per line with its kind and facets. Reads standard input without file.")

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, "", err
	}

	path, err := optionalFileArg(fs, "tokenize")
	return opts, path, err
}

func parseSplitArgs(args []string, ui UI) (SplitOptions, string, error) {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts SplitOptions
	fs.BoolVar(&opts.CSV, "csv", false, "Input is tagged text (tag, tab, token per line) instead of ACE text")

	opts.Format = render.DefaultFormat
	formatFlag := &enumFlag{allowed: append(render.TextFormats(), jsonFormat), value: &opts.Format}
	fs.Var(formatFlag, "format", "Show sentences as tokens (all), plain (simple), OWL Manchester syntax (mos), indented (pretty) or json")
	fs.Var(formatFlag, "f", "alias for -format")
	lexiconFlag(fs, &opts.Lexicon)

	fs.Usage = usageFunc(fs, "split [options] [file]", "Split text into paragraphs and sentences. Reads standard input without file.")

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, "", err
	}

	path, err := optionalFileArg(fs, "split")
	return opts, path, err
}

func parseStatArgs(args []string, ui UI) (StatOptions, string, error) {
	fs := flag.NewFlagSet("stat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts StatOptions
	fs.BoolVar(&opts.CSV, "csv", false, "Input is tagged text instead of ACE text")
	docPathFlag(fs, &opts.DocPath)
	lexiconFlag(fs, &opts.Lexicon)

	fs.Usage = usageFunc(fs, "stat [options] [file|db_id]", "Show statistics of a text file, of a stored doc or of all stored docs.")

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, "", err
	}

	arg, err := optionalFileArg(fs, "stat")
	if err != nil {
		return opts, "", err
	}

	if digitRegex.MatchString(arg) {
		if _, err := os.Stat(arg); err != nil && opts.DocPath == "" {
			return opts, "", fmt.Errorf("Doc path must be specified via -d or %s for doc id %s", envDocPath, arg)
		}
	}
	return opts, arg, nil
}

func parseLexiconArgs(args []string, ui UI) (LexiconOptions, error) {
	fs := flag.NewFlagSet("lexicon", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts LexiconOptions
	lexiconFlag(fs, &opts.Lexicon)
	fs.Usage = usageFunc(fs, "lexicon [options]", "Print the lexicon in ACE lexicon format, followed by its counts.")

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, err
	}

	if opts.Lexicon == "" {
		return opts, fmt.Errorf("Lexicon must be specified via -l or %s", envLexicon)
	}
	return opts, nil
}

func parseImportArgs(args []string, ui UI) (ImportOptions, error) {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ImportOptions
	fs.StringVar(&opts.From, "from", "", "Source directory with ACE text (.ace) and tagged (.tsv) files")
	fs.StringVar(&opts.To, "to", "", "Target SQLite database file or docs directory")
	lexiconFlag(fs, &opts.Lexicon)

	fs.Usage = usageFunc(fs, "import --from <dir> --to <sqlite_file|dir>", "Tokenize all source files of a directory into a doc store.")

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, err
	}

	if opts.From == "" || opts.To == "" {
		return opts, errors.New("--from and --to are required")
	}
	return opts, nil
}

func parseExportArgs(args []string, ui UI) (ExportOptions, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ExportOptions
	fs.StringVar(&opts.From, "from", "", "Source SQLite database file or docs directory")
	fs.StringVar(&opts.To, "to", "", "Target directory for JSON docs")

	fs.Usage = usageFunc(fs, "export --from <sqlite_file|dir> --to <dir>", "Export stored docs as JSON files.")

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, err
	}

	if opts.From == "" || opts.To == "" {
		return opts, errors.New("--from and --to are required")
	}
	return opts, nil
}

func parseDocArgs(args []string, ui UI) (DocOptions, string, error) {
	fs := flag.NewFlagSet("doc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts DocOptions
	fs.IntVar(&opts.Start, "start", 0, "Index of the first sentence to show")
	fs.IntVar(&opts.Count, "n", -1, "Number of sentences to show (-1 for all)")

	opts.Format = render.DefaultFormat
	formatFlag := &enumFlag{allowed: append(render.TextFormats(), jsonFormat), value: &opts.Format}
	fs.Var(formatFlag, "format", "Show sentences as tokens (all), plain (simple), OWL Manchester syntax (mos), indented (pretty) or json")
	fs.Var(formatFlag, "f", "alias for -format")
	docPathFlag(fs, &opts.DocPath)

	fs.Usage = usageFunc(fs, "doc [options] [file_path|db_id]", "List stored docs, or show the sentences of a file or of a stored doc.")

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, "", err
	}

	if fs.NArg() > 1 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", errors.New("doc command accepts at most one argument")
	}

	arg := fs.Arg(0)
	isFile := false
	if arg != "" {
		if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			isFile = true
		} else if !digitRegex.MatchString(arg) {
			return opts, "", fmt.Errorf("file not found and not a valid DB ID: %s", arg)
		}
	}

	if !isFile && opts.DocPath == "" {
		return opts, "", fmt.Errorf("Doc path must be specified via -d or %s when not reading from a file", envDocPath)
	}

	return opts, arg, nil
}

func parseLabelsArgs(args []string, ui UI) (LabelsOptions, error) {
	fs := flag.NewFlagSet("labels", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts LabelsOptions
	fs.StringVar(&opts.Match, "match", "", "Only show labels containing this string")
	fs.StringVar(&opts.Match, "m", "", "alias for -match")
	docPathFlag(fs, &opts.DocPath)

	fs.Usage = usageFunc(fs, "labels [options]", "List the labels of the stored docs.")

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, err
	}

	if opts.DocPath == "" {
		return opts, fmt.Errorf("Doc path must be specified via -d or %s", envDocPath)
	}
	return opts, nil
}

func parseQueryArgs(args []string, ui UI) (QueryOptions, error) {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts QueryOptions
	fs.BoolVar(&opts.NoColor, "no-color", false, "Show matched sentences without formatting (color)")
	fs.BoolVar(&opts.NoColor, "c", false, "alias for -no-color")

	fs.BoolVar(&opts.NoPrefix, "no-prefix", false, "Show matched sentences without prefixes with metadata")
	fs.BoolVar(&opts.NoPrefix, "x", false, "alias for -no-prefix")

	fs.IntVar(&opts.NMatches, "nmatches", 0, "Only show matched sentences with at least this number of matched words")
	fs.IntVar(&opts.NMatches, "n", 0, "alias for -nmatches")

	opts.Format = render.DefaultFormat
	formatFlag := &enumFlag{allowed: render.SupportedFormats(), value: &opts.Format}
	fs.Var(formatFlag, "format", "Show whole sentence (all), surrounding of matched words (part), indented (pretty), matched words (words) or counts per words (aggr)")
	fs.Var(formatFlag, "f", "alias for -format")

	docPathFlag(fs, &opts.DocPath)
	lexiconFlag(fs, &opts.Lexicon)

	var docOpt optionalInt
	fs.Var(&docOpt, "doc", "Limit the search to the doc with this id")

	fs.Usage = usageFunc(fs, "query [options]", "Enter interactive query mode: find stored sentences with the content words of an ACE sentence.")

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, err
	}
	opts.Doc = docOpt.value

	if opts.DocPath == "" {
		return opts, fmt.Errorf("Doc path must be specified via -d or %s", envDocPath)
	}
	return opts, nil
}

func parseEditArgs(args []string, ui UI) (EditOptions, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts EditOptions
	lexiconFlag(fs, &opts.Lexicon)
	fs.Usage = usageFunc(fs, "edit [options]", "Enter interactive lexicon edit mode.")

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, err
	}

	if opts.Lexicon == "" {
		return opts, fmt.Errorf("Lexicon must be specified via -l or %s", envLexicon)
	}
	return opts, nil
}

func parseWatchArgs(args []string, ui UI) (WatchOptions, error) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts WatchOptions
	fs.StringVar(&opts.Dir, "dir", "", "Directory with ACE text (.ace) and tagged (.tsv) files")
	exts := (*stringSliceFlag)(&opts.Extensions)
	fs.Var(exts, "ext", "Only watch files with this extension (default .ace and .tsv)")
	docPathFlag(fs, &opts.DocPath)
	lexiconFlag(fs, &opts.Lexicon)

	fs.Usage = usageFunc(fs, "watch --dir <dir> [options]", "Tokenize and store the source files of a directory, and again whenever they change.")

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, err
	}

	if opts.Dir == "" {
		return opts, errors.New("--dir is required")
	}
	if opts.DocPath == "" {
		return opts, fmt.Errorf("Doc path must be specified via -d or %s", envDocPath)
	}
	return opts, nil
}

// parseNoArgs parses the arguments of a command without options.
func parseNoArgs(name, description string, args []string, ui UI) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = usageFunc(fs, name, description)

	return parseFlags(fs, args, ui)
}

func parseCompleteArgs(args []string, ui UI) ([]string, error) {
	fs := flag.NewFlagSet("complete", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return fs.Args(), nil
}

func setupUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: %s [global options] command [command options] [arguments...]\n", os.Args[0])
		_, _ = fmt.Fprintf(output, "\nDescription:\n")
		_, _ = fmt.Fprintf(output, "  Tokenizer, sentence splitter and sentence browser for Attempto Controlled English\n")
		_, _ = fmt.Fprintf(output, "\nCommands:\n")
		_, _ = fmt.Fprintf(output, "  tokenize  Print the tokens of a text.\n")
		_, _ = fmt.Fprintf(output, "  split     Split a text into paragraphs and sentences.\n")
		_, _ = fmt.Fprintf(output, "  stat      Show statistics of a text or of stored docs.\n")
		_, _ = fmt.Fprintf(output, "  lexicon   Print a lexicon and its counts.\n")
		_, _ = fmt.Fprintf(output, "  import    Tokenize source files into a doc store.\n")
		_, _ = fmt.Fprintf(output, "  export    Export stored docs as JSON files.\n")
		_, _ = fmt.Fprintf(output, "  doc       List stored docs or show a doc.\n")
		_, _ = fmt.Fprintf(output, "  labels    List the labels of the stored docs.\n")
		_, _ = fmt.Fprintf(output, "  query     Enter interactive query mode.\n")
		_, _ = fmt.Fprintf(output, "  edit      Enter interactive lexicon edit mode.\n")
		_, _ = fmt.Fprintf(output, "  watch     Keep a doc store in sync with a source directory.\n")
		_, _ = fmt.Fprintf(output, "  bash      Output bash completion script.\n")
		_, _ = fmt.Fprintf(output, "  version   Show version.\n")
		_, _ = fmt.Fprintf(output, "  help      Show help for a command.\n")
		_, _ = fmt.Fprintf(output, "\nGlobal options (logging):\n")
		fs.PrintDefaults()
	}
}
