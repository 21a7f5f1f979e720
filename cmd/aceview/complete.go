package main

import (
	"fmt"
	"strings"
)

var commands = []string{
	"tokenize",
	"split",
	"stat",
	"lexicon",
	"import",
	"export",
	"doc",
	"labels",
	"query",
	"edit",
	"watch",
	"bash",
	"version",
	"help",
}

// commandFlags are the long flags offered after a command.
var commandFlags = map[string][]string{
	"tokenize": {"-lexicon"},
	"split":    {"-csv", "-format", "-lexicon"},
	"stat":     {"-csv", "-doc-path", "-lexicon"},
	"lexicon":  {"-lexicon"},
	"import":   {"-from", "-to", "-lexicon"},
	"export":   {"-from", "-to"},
	"doc":      {"-start", "-n", "-format", "-doc-path"},
	"labels":   {"-match", "-doc-path"},
	"query":    {"-no-color", "-no-prefix", "-nmatches", "-format", "-doc", "-doc-path", "-lexicon"},
	"edit":     {"-lexicon"},
	"watch":    {"-dir", "-ext", "-doc-path", "-lexicon"},
}

// completeCommand handles the autocompletion requests triggered by the bash completion script.
func completeCommand(args []string, ui UI) error {
	completions := getCompletions(args)
	for _, c := range completions {
		_, _ = fmt.Fprintln(ui.Out, c)
	}
	return nil
}

func getCompletions(args []string) []string {
	if len(args) < 2 {
		return nil
	}

	// args[0] is "aceview" (binary name from COMP_WORDS[0])
	commandIndex := 1
	cursorIndex := len(args) - 1
	lastWord := args[cursorIndex]

	if cursorIndex == commandIndex {
		return withPrefix(commands, lastWord)
	}

	cmd := args[commandIndex]
	if cmd == "help" && cursorIndex == commandIndex+1 {
		return withPrefix(commands, lastWord)
	}
	if strings.HasPrefix(lastWord, "-") {
		return withPrefix(commandFlags[cmd], lastWord)
	}

	// file names are completed by bash (-o default)
	return nil
}

func withPrefix(words []string, prefix string) []string {
	var out []string
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	return out
}
