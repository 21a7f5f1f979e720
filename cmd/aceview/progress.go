package main

import (
	"github.com/gosuri/uiprogress"
)

// progress renders a single bar on the error stream, so that command output
// on ui.Out stays clean.
type progress struct {
	p   *uiprogress.Progress
	bar *uiprogress.Bar

	current string
}

func startProgress(total int, ui UI) *progress {
	pr := &progress{p: uiprogress.New()}
	pr.p.Out = ui.Err
	pr.p.Start()

	pr.bar = pr.p.AddBar(total)
	pr.bar.AppendCompleted()
	pr.bar.PrependElapsed()
	// Append doc name to the progress bar
	pr.bar.AppendFunc(func(b *uiprogress.Bar) string {
		return pr.current
	})
	return pr
}

// Incr advances the bar past the item name.
func (pr *progress) Incr(name string) {
	pr.current = name
	pr.bar.Incr()
}

// SetTotal replaces a placeholder total once the real one is known.
func (pr *progress) SetTotal(total int) {
	if pr.bar.Total != total {
		pr.bar.Total = total
		pr.bar.Set(0)
	}
}

func (pr *progress) Stop() {
	pr.p.Stop()
}
