package main

import (
	"fmt"
	"strings"
)

func labelsCommand(opts LabelsOptions, ui UI) error {
	var p Pool
	defer p.Close()

	repo, err := NewDocRepository(&p, opts.DocPath, false)
	if err != nil {
		return err
	}

	labels, err := repo.Labels(opts.Match)
	if err != nil {
		return err
	}

	if len(labels) > 0 {
		fmt.Fprintln(ui.Out, strings.Join(labels, ", "))
	}

	return nil
}
