package main

import (
	"fmt"

	"github.com/Kaljurand/aceview-sub001/lexicon"
)

// lexiconCommand prints the lexicon so that the output is itself a valid
// ACE lexicon: counts and ambiguous wordforms are Prolog comments.
func lexiconCommand(opts LexiconOptions, ui UI) error {
	var p Pool
	defer p.Close()

	lx, err := loadLexicon(&p, opts.Lexicon)
	if err != nil {
		return err
	}

	if err := lexicon.WriteACE(ui.Out, lx.Entries()); err != nil {
		return err
	}

	c := lx.Counts()
	fmt.Fprintf(ui.Out, "%% entities: %d (CN %d, TV %d, PN %d), partial: %d\n", lx.Len(), c.CN, c.TV, c.PN, c.Partial)
	fmt.Fprintf(ui.Out, "%% wordforms: %d, ambiguous: %d, ambiguous within a class: %d\n", c.Wordforms, c.Ambiguous, c.ClassAmbiguous)
	for _, w := range lx.AmbiguousWordforms() {
		fmt.Fprintf(ui.Out, "%% ambiguous: %s\n", w)
	}
	return nil
}
