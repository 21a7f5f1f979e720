package main

import (
	"fmt"
	"os"

	"github.com/Kaljurand/aceview-sub001/storage/filesystem"
)

// exportCommand writes the docs of the store opts.From as JSON files to the
// directory opts.To.
func exportCommand(opts ExportOptions, ui UI) error {
	var p Pool
	defer p.Close()

	src, err := NewDocRepository(&p, opts.From, false)
	if err != nil {
		return err
	}

	// Ensure target directory exists
	if err := os.MkdirAll(opts.To, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}
	dst, err := filesystem.NewDocStore(opts.To)
	if err != nil {
		return err
	}

	docs, err := src.List("")
	if err != nil {
		return err
	}

	bar := startProgress(len(docs), ui)
	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			bar.Stop()
			return fmt.Errorf("failed to read doc %s (id %d): %w", docMeta.Title, docMeta.Id, err)
		}

		if _, err := dst.Write(doc); err != nil {
			bar.Stop()
			return fmt.Errorf("failed to write doc %s: %w", doc.Title, err)
		}
		count++
		bar.Incr(doc.Title)
	}
	bar.Stop()

	fmt.Fprintf(ui.Out, "Successfully exported %d docs from %s to %s\n", count, opts.From, opts.To)
	return nil
}
