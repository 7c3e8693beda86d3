// Package label implements the seventh pass of the layout pipeline:
// choosing where each edge's text label is drawn, falling back to a
// shared legend when no free cell run can be found.
package label

// Buffer is a simple rune grid standing in for whatever has already been
// drawn by earlier passes (node boxes, routed edges); the label placer
// checks candidate cells against it before claiming them.
type Buffer struct {
	Width, Height int
	Cells         [][]rune
}

// NewBuffer returns a Width x Height buffer initialised to blank cells.
func NewBuffer(width, height int) *Buffer {
	cells := make([][]rune, height)
	for y := range cells {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		cells[y] = row
	}
	return &Buffer{Width: width, Height: height, Cells: cells}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Get returns the glyph at (x,y), or a blank if the coordinate falls
// outside the buffer.
func (b *Buffer) Get(x, y int) rune {
	if !b.inBounds(x, y) {
		return ' '
	}
	return b.Cells[y][x]
}

// Set writes a glyph at (x,y); out-of-bounds writes are silently dropped.
func (b *Buffer) Set(x, y int, r rune) {
	if b.inBounds(x, y) {
		b.Cells[y][x] = r
	}
}

// WriteString writes s starting at (x,y), one rune per column.
func (b *Buffer) WriteString(x, y int, s string) {
	for i, r := range s {
		b.Set(x+i, y, r)
	}
}

// canPlaceLabel reports whether text fits entirely within the buffer at
// row y starting at column x, without overwriting any glyph other than a
// blank or a vertical-line character.
func canPlaceLabel(buf *Buffer, text string, x, y int) bool {
	runes := []rune(text)
	if x < 0 || y < 0 || y >= buf.Height || x+len(runes) > buf.Width {
		return false
	}
	for i := range runes {
		c := buf.Get(x+i, y)
		if c != ' ' && c != '|' {
			return false
		}
	}
	return true
}

// Placement records where one edge's label ended up on the grid.
type Placement struct {
	EdgeIndex int
	Text      string
	X, Y      int
}

// LegendEntry is a label that found no free row and was bumped to the
// fallback legend instead.
type LegendEntry struct {
	FromID, ToID, Text string
}

// EdgeLabel is one candidate label placement: the edge's preferred anchor
// plus the vertical span the policy may slide within when that anchor row
// is blocked.
type EdgeLabel struct {
	EdgeIndex  int
	FromID     string
	ToID       string
	Text       string
	MidX, MidY int
	// FromY, ToY bound the edge's vertical span; the slide search tries
	// every row in (FromY, ToY) exclusive of the endpoints.
	FromY, ToY int

	Reversed bool
	ChannelX int // anchor column used instead of MidX for a reversed edge

	SelfLoop               bool
	LoopGlyphX, LoopGlyphY int // anchor cell immediately before a self-loop's label
}

// Place computes a Placement for every labelled entry in labels, writing
// each placed label's glyphs into buf so later entries cannot overlap it,
// and returns the legend entries for labels that found no free row.
func Place(buf *Buffer, labels []EdgeLabel) ([]Placement, []LegendEntry) {
	var placements []Placement
	var legend []LegendEntry

	for _, l := range labels {
		if l.Text == "" {
			continue
		}
		quoted := "\"" + l.Text + "\""

		var x, y int
		var ok bool
		switch {
		case l.SelfLoop:
			x, y = l.LoopGlyphX+1, l.LoopGlyphY
			ok = canPlaceLabel(buf, quoted, x, y)
		case l.Reversed:
			x = l.ChannelX - len([]rune(quoted))/2
			y, ok = placeInSpan(buf, quoted, x, l.MidY, l.FromY, l.ToY)
		default:
			x = l.MidX - len([]rune(quoted))/2
			y, ok = placeInSpan(buf, quoted, x, l.MidY, l.FromY, l.ToY)
		}

		if !ok {
			legend = append(legend, LegendEntry{FromID: l.FromID, ToID: l.ToID, Text: l.Text})
			continue
		}

		buf.WriteString(x, y, quoted)
		placements = append(placements, Placement{EdgeIndex: l.EdgeIndex, Text: l.Text, X: x, Y: y})
	}

	return placements, legend
}

// placeInSpan tries the preferred row first, then every row strictly
// between fromY and toY, returning the first row the label fits on.
func placeInSpan(buf *Buffer, quoted string, x, preferredY, fromY, toY int) (int, bool) {
	if canPlaceLabel(buf, quoted, x, preferredY) {
		return preferredY, true
	}
	for y := fromY + 1; y <= toY-1; y++ {
		if y == preferredY {
			continue
		}
		if canPlaceLabel(buf, quoted, x, y) {
			return y, true
		}
	}
	return 0, false
}
