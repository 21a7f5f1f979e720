package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
)

// UI contains the input and output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	os.Exit(run(os.Args[1:], ui))
}

// run executes the command line and returns the exit code.
func run(args []string, ui UI) int {
	defer glog.Flush()

	cmd, cmdArgs, err := parseMainArgs(args, ui)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if err := runCommand(cmd, cmdArgs, ui); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fprintErr(ui.Err, err)
		return 1
	}
	return 0
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "aceview: %v\n", err)
}

func runCommand(cmd string, args []string, ui UI) error {
	switch cmd {
	case "help":
		if len(args) > 0 {
			return runCommand(args[0], []string{"--help"}, ui)
		}
		fs := flag.NewFlagSet("aceview", flag.ContinueOnError)
		fs.SetOutput(ui.Out)
		setupUsage(fs)
		fs.Usage()
		return nil

	case "tokenize":
		opts, path, err := parseTokenizeArgs(args, ui)
		if err != nil {
			return err
		}
		return tokenizeCommand(opts, path, ui)

	case "split":
		opts, path, err := parseSplitArgs(args, ui)
		if err != nil {
			return err
		}
		return splitCommand(opts, path, ui)

	case "stat":
		opts, arg, err := parseStatArgs(args, ui)
		if err != nil {
			return err
		}
		return statCommand(opts, arg, ui)

	case "lexicon":
		opts, err := parseLexiconArgs(args, ui)
		if err != nil {
			return err
		}
		return lexiconCommand(opts, ui)

	case "import":
		opts, err := parseImportArgs(args, ui)
		if err != nil {
			return err
		}
		return importCommand(opts, ui)

	case "export":
		opts, err := parseExportArgs(args, ui)
		if err != nil {
			return err
		}
		return exportCommand(opts, ui)

	case "doc":
		opts, arg, err := parseDocArgs(args, ui)
		if err != nil {
			return err
		}
		return docCommand(opts, arg, ui)

	case "labels":
		opts, err := parseLabelsArgs(args, ui)
		if err != nil {
			return err
		}
		return labelsCommand(opts, ui)

	case "query":
		opts, err := parseQueryArgs(args, ui)
		if err != nil {
			return err
		}
		return queryCommand(opts, ui)

	case "edit":
		opts, err := parseEditArgs(args, ui)
		if err != nil {
			return err
		}
		return editCommand(opts, ui)

	case "watch":
		opts, err := parseWatchArgs(args, ui)
		if err != nil {
			return err
		}
		return watchCommand(opts, ui)

	case "bash":
		if err := parseNoArgs("bash", "Output bash completion script.", args, ui); err != nil {
			return err
		}
		return bashCommand(ui)

	case "version":
		if err := parseNoArgs("version", "Show version and build commit.", args, ui); err != nil {
			return err
		}
		return versionCommand(ui)

	case "complete":
		completeArgs, err := parseCompleteArgs(args, ui)
		if err != nil {
			return err
		}
		return completeCommand(completeArgs, ui)
	}

	return fmt.Errorf("unknown command: %s", cmd)
}
