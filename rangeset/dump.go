package rangeset

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// dumpPalette mirrors the text package's dump palette: one color per
// structural role (chunk, range, point) instead of one global style.
var dumpPalette = struct {
	chunk *color.Color
	rng   *color.Color
	point *color.Color
}{
	chunk: color.New(color.FgBlue),
	rng:   color.New(color.FgGreen),
	point: color.New(color.FgYellow),
}

// Dump writes a colorized, indented structural dump of s's layers and
// chunks to w, for test-failure diagnostics, following the same
// leaf/branch dump idiom text.Dump uses for the rope.
func Dump(s *RangeSet, w io.Writer) {
	width := 0
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = cols
		}
	}
	layer := 0
	for cur := s; ; cur = cur.nextLayer {
		dumpLayer(cur, w, layer, width)
		layer++
		if cur.nextLayer == cur {
			break
		}
	}
}

func dumpLayer(s *RangeSet, w io.Writer, layer, width int) {
	fmt.Fprintf(w, "layer %d: %d chunk(s)\n", layer, len(s.chunks))
	for i, c := range s.chunks {
		pos := s.chunkPos[i]
		fmt.Fprintf(w, "  %s\n", dumpPalette.chunk.Sprintf("chunk(pos=%d,len=%d,maxPoint=%d)", pos, c.Len(), c.maxPoint))
		for j := range c.from {
			from, to := pos+c.from[j], pos+c.to[j]
			v := c.value[j]
			label := dumpPalette.rng
			if v.Point() {
				label = dumpPalette.point
			}
			line := label.Sprintf("[%d,%d)", from, to)
			if width > 0 && len(line) > width {
				line = line[:width] + "…"
			}
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}
