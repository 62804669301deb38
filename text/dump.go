package text

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// dumpPalette mirrors styled/formatter's console palette idiom: one color
// per structural role, rather than one global style.
var dumpPalette = struct {
	branch *color.Color
	leaf   *color.Color
	text   *color.Color
}{
	branch: color.New(color.FgBlue),
	leaf:   color.New(color.FgGreen),
	text:   color.New(color.FgHiBlack),
}

// Dump writes a colorized, indented structural dump of t's tree to w, for
// test-failure diagnostics. It mirrors the teacher's Cord2Dot debug
// visualizer, adapted from a Graphviz dump to a plain indented tree: Text
// values are trees of lines, not trees of byte chunks, so the more useful
// debug shape is "depth, node kind, length/lines, and a short preview" per
// line rather than DOT node/edge records.
//
// When w is an *os.File that is a terminal, each leaf preview is truncated
// to the detected terminal width; callers writing to a file or buffer get
// the untruncated preview.
func Dump(t Text, w io.Writer) {
	width := 0
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = cols
		}
	}
	dumpNode(t, w, 0, width)
}

func dumpNode(t Text, w io.Writer, depth, width int) {
	indent := strings.Repeat("  ", depth)
	switch n := t.(type) {
	case *leaf:
		preview := strings.Join(n.lines, "⏎")
		if width > 0 && len(preview) > width {
			preview = preview[:width] + "…"
		}
		fmt.Fprintf(w, "%s%s %s\n", indent,
			dumpPalette.leaf.Sprintf("leaf(len=%d,lines=%d)", n.Length(), n.Lines()),
			dumpPalette.text.Sprint(preview))
	case *branch:
		fmt.Fprintf(w, "%s%s\n", indent,
			dumpPalette.branch.Sprintf("branch(len=%d,lines=%d,children=%d)", n.length, n.lines, len(n.kids)))
		for _, c := range n.kids {
			dumpNode(c, w, depth+1, width)
		}
	}
}
