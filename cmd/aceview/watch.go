package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kaljurand/aceview-sub001/watch"
)

// watchCommand stores all source files of opts.Dir and then every file
// that is created or written, until interrupted.
func watchCommand(opts WatchOptions, ui UI) error {
	var p Pool
	defer p.Close()

	lx, err := loadLexicon(&p, opts.Lexicon)
	if err != nil {
		return err
	}

	repo, err := NewDocRepository(&p, opts.DocPath, true)
	if err != nil {
		return err
	}

	ix := &watch.Indexer{
		Splitter:   newSplitter(lx),
		Docs:       repo,
		Root:       opts.Dir,
		Extensions: opts.Extensions,
		OnDoc: func(path string, id int) {
			fmt.Fprintf(ui.Out, "📖 %d %s\n", id, path)
		},
	}

	if err := ix.Sync(); err != nil {
		return err
	}

	w, err := watch.New(opts.Extensions)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events, err := w.Watch(ctx, opts.Dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "👀 watching %s, Ctrl+C to stop\n", opts.Dir)
	if err := ix.Run(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
