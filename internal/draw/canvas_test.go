package draw

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
)

var green = color.RGBA{R: 0, G: 255, B: 0, A: 255}

func newTestCanvas(out *bytes.Buffer) (*Canvas, *ChunkWriter) {
	cw := NewChunkWriter(out)
	return NewCanvas(4, 3, NewPainter(out), color.RGBA{R: 93, G: 216, B: 228, A: 255}), cw
}

func TestCanvasFirstRenderClearsAndFrames(t *testing.T) {
	var out bytes.Buffer
	c, cw := newTestCanvas(&out)

	c.Render(cw)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\033[H\033[2J") {
		t.Errorf("first render does not clear the screen: %q", got)
	}
	if !strings.Contains(got, "┌────┐") || !strings.Contains(got, "└────┘") {
		t.Errorf("border missing from first render: %q", got)
	}
}

func TestCanvasRendersOnlyChangedCells(t *testing.T) {
	var out bytes.Buffer
	c, cw := newTestCanvas(&out)
	c.Render(cw)
	_ = cw.Flush()
	out.Reset()

	c.Set(1, 2, green)
	c.Render(cw)
	_ = cw.Flush()

	got := out.String()
	// Column 1 sits at terminal column 3; grid row 2 is the upper half of
	// terminal row 2 + 2/2 = 3.
	if !strings.Contains(got, "\033[3;3H") {
		t.Errorf("changed cell not positioned at 3;3: %q", got)
	}
	if strings.Count(got, "\033[") < 1 || strings.Contains(got, "\033[2J") {
		t.Errorf("incremental render cleared the screen: %q", got)
	}
	if !strings.Contains(got, BlockUpperHalf) {
		t.Errorf("upper half block missing: %q", got)
	}

	out.Reset()
	c.Render(cw)
	_ = cw.Flush()
	if out.Len() != 0 {
		t.Errorf("unchanged canvas produced output: %q", out.String())
	}
}

func TestCanvasEraseEmitsBlank(t *testing.T) {
	var out bytes.Buffer
	c, cw := newTestCanvas(&out)
	c.Set(0, 0, green)
	c.Render(cw)
	_ = cw.Flush()
	out.Reset()

	c.Erase(0, 0)
	if _, ok := c.At(0, 0); ok {
		t.Fatal("cell still painted after Erase")
	}
	c.Render(cw)
	_ = cw.Flush()

	if got := out.String(); got != "\033[2;2H"+BlockEmpty {
		t.Errorf("erase output = %q", got)
	}
}

func TestCanvasOffsetForcesRedraw(t *testing.T) {
	var out bytes.Buffer
	c, cw := newTestCanvas(&out)
	c.Set(0, 0, green)
	c.Render(cw)
	_ = cw.Flush()
	out.Reset()

	c.SetOffset(3, 1)
	c.Render(cw)
	_ = cw.Flush()

	got := out.String()
	if !strings.Contains(got, "\033[2J") {
		t.Errorf("offset change did not clear the screen: %q", got)
	}
	if !strings.Contains(got, "\033[3;5H") {
		t.Errorf("cell not redrawn at shifted position: %q", got)
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	var out bytes.Buffer
	c, _ := newTestCanvas(&out)
	c.Set(-1, 0, green)
	c.Set(4, 0, green)
	c.Set(0, 3, green)
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			if _, ok := c.At(col, row); ok {
				t.Fatalf("cell %d,%d painted by out of range Set", col, row)
			}
		}
	}
}

func TestChunkWriterSplitsLargeWrites(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	payload := strings.Repeat("x", maxChunkSize*3+7)
	cw.WriteString(payload)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if out.String() != payload {
		t.Errorf("flushed %d bytes, want %d", out.Len(), len(payload))
	}
	out.Reset()
	if err := cw.Flush(); err != nil {
		t.Fatalf("second Flush() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("buffer not reset after flush: %d bytes written again", out.Len())
	}
}

func TestCanvasPacksTwoRowsPerTerminalRow(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	c := NewCanvas(32, 24, NewPainter(&out), color.RGBA{A: 255})

	if c.TerminalWidth() != 34 || c.TerminalHeight() != 14 {
		t.Fatalf("framed board = %dx%d, want 34x14", c.TerminalWidth(), c.TerminalHeight())
	}

	c.Render(cw)
	_ = cw.Flush()
	out.Reset()

	red := color.RGBA{R: 255, A: 255}
	c.Set(5, 6, green)
	c.Set(5, 7, red)
	c.Set(6, 9, green)
	c.Render(cw)
	_ = cw.Flush()

	got := out.String()
	if strings.Count(got, "\033[") < 2 {
		t.Fatalf("expected two positioned glyphs: %q", got)
	}
	// Rows 6 and 7 share terminal row 2 + 3 = 5.
	if !strings.Contains(got, "\033[5;7H") {
		t.Errorf("shared cell not positioned at 5;7: %q", got)
	}
	// Row 9 is the lower half of terminal row 2 + 4 = 6.
	if !strings.Contains(got, "\033[6;8H") || !strings.Contains(got, BlockLowerHalf) {
		t.Errorf("lower half cell not drawn at 6;8: %q", got)
	}
}

func TestCanvasOddRowCountLeavesLowerHalfEmpty(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	c := NewCanvas(2, 3, NewPainter(&out), color.RGBA{A: 255})
	if c.TerminalHeight() != 4 {
		t.Fatalf("TerminalHeight() = %d, want 4", c.TerminalHeight())
	}

	c.Set(0, 2, green)
	c.Render(cw)
	_ = cw.Flush()

	if got := out.String(); !strings.Contains(got, "\033[3;2H") || !strings.Contains(got, BlockUpperHalf) {
		t.Errorf("last odd row not drawn as upper half at 3;2: %q", got)
	}
}

func TestPainterPairGlyphs(t *testing.T) {
	p := NewPainter(&bytes.Buffer{})
	red := color.RGBA{R: 255, A: 255}

	tests := []struct {
		name         string
		upper, lower color.RGBA
		want         string
	}{
		{"empty", color.RGBA{}, color.RGBA{}, BlockEmpty},
		{"upper only", green, color.RGBA{}, BlockUpperHalf},
		{"lower only", color.RGBA{}, green, BlockLowerHalf},
		{"same color", green, green, BlockFull},
		{"two colors", green, red, BlockUpperHalf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Pair(tt.upper, tt.lower); !strings.Contains(got, tt.want) {
				t.Errorf("Pair() = %q, want glyph %q", got, tt.want)
			}
		})
	}

	if p.Pair(green, red) == p.Pair(green, color.RGBA{}) {
		t.Error("two-color pair rendered without a background color")
	}
}
