package cli

import (
	"fmt"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
)

// -------------- rendering helpers --------------

const maxTitleWidth = 80

// numbered keeps the 1-based position of an item in the full list, so
// grouped output still shows the index the other subcommands accept.
type numbered struct {
	n int
	model.Item
}

func listLines(items []model.Item, group bool) []string {
	t := ui.Current()
	d, p := model.Stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymPending), p,
		ui.C(t.Accent, "Total"), len(items),
	)

	lines := []string{
		header,
		ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)),
		"",
	}

	all := make([]numbered, len(items))
	for i, it := range items {
		all[i] = numbered{n: i + 1, Item: it}
	}
	switch {
	case len(items) == 0:
		lines = append(lines, ui.C(t.Muted, "Your todo list is empty."))
	case group:
		lines = append(lines, groupLines(all)...)
	default:
		lines = append(lines, flatLines(all)...)
	}

	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

func flatLines(items []numbered) []string {
	t := ui.Current()
	out := make([]string, 0, len(items))
	for _, it := range items {
		box, c := t.BoxUnchecked, t.Muted
		if it.Completed {
			box, c = t.BoxChecked, t.Success
		}
		text := it.Text
		if r := []rune(text); len(r) > maxTitleWidth {
			text = string(r[:maxTitleWidth-3]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C(t.Muted, fmt.Sprintf("%2d.", it.n)), ui.C(c, box), text))
	}
	return out
}

func groupLines(items []numbered) []string {
	t := ui.Current()
	var pend, done []numbered
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	section := func(title string, part []numbered) []string {
		out := []string{ui.C(t.Accent, title)}
		if len(part) == 0 {
			return append(out, ui.C(t.Muted, "(none)"))
		}
		return append(out, flatLines(part)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
