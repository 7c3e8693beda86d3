package label

import "testing"

func TestCanPlaceLabelOnBlankRow(t *testing.T) {
	buf := NewBuffer(20, 5)
	if !canPlaceLabel(buf, "\"hi\"", 2, 2) {
		t.Error("expected a blank row to accept the label")
	}
}

func TestCanPlaceLabelRejectsOccupiedCell(t *testing.T) {
	buf := NewBuffer(20, 5)
	buf.Set(3, 2, 'X')
	if canPlaceLabel(buf, "\"hi\"", 2, 2) {
		t.Error("expected an occupied non-space non-pipe cell to block placement")
	}
}

func TestCanPlaceLabelAllowsVerticalLineGlyph(t *testing.T) {
	buf := NewBuffer(20, 5)
	buf.Set(3, 2, '|')
	if !canPlaceLabel(buf, "\"hi\"", 2, 2) {
		t.Error("expected a vertical-line glyph to be overwritable")
	}
}

func TestCanPlaceLabelRejectsOutOfBounds(t *testing.T) {
	buf := NewBuffer(5, 5)
	if canPlaceLabel(buf, "\"too long\"", 0, 0) {
		t.Error("expected a too-wide label to be rejected")
	}
	if canPlaceLabel(buf, "\"x\"", 1, -1) {
		t.Error("expected a negative row to be rejected")
	}
}

func TestPlaceCentresOnMidpoint(t *testing.T) {
	buf := NewBuffer(40, 10)
	labels := []EdgeLabel{
		{EdgeIndex: 0, FromID: "a", ToID: "b", Text: "go", MidX: 10, MidY: 5, FromY: 1, ToY: 9},
	}
	placements, legend := Place(buf, labels)
	if len(legend) != 0 {
		t.Fatalf("expected no legend fallback, got %v", legend)
	}
	if len(placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(placements))
	}
	p := placements[0]
	if p.Y != 5 {
		t.Errorf("Y = %d, want 5 (midpoint row)", p.Y)
	}
	wantX := 10 - len("\"go\"")/2
	if p.X != wantX {
		t.Errorf("X = %d, want %d", p.X, wantX)
	}
}

func TestPlaceSlidesWhenMidpointBlocked(t *testing.T) {
	buf := NewBuffer(40, 10)
	// block the entire midpoint row so the label must slide.
	for x := 0; x < buf.Width; x++ {
		buf.Set(x, 5, 'X')
	}
	labels := []EdgeLabel{
		{EdgeIndex: 0, FromID: "a", ToID: "b", Text: "go", MidX: 10, MidY: 5, FromY: 1, ToY: 9},
	}
	placements, legend := Place(buf, labels)
	if len(legend) != 0 {
		t.Fatalf("expected no legend fallback, got %v", legend)
	}
	if placements[0].Y == 5 {
		t.Error("expected placement to slide off the blocked midpoint row")
	}
	if placements[0].Y <= 1 || placements[0].Y >= 9 {
		t.Errorf("placement row %d outside the vertical span (1,9)", placements[0].Y)
	}
}

func TestPlaceFallsBackToLegendWhenNoRowFits(t *testing.T) {
	buf := NewBuffer(40, 10)
	for y := 1; y < 9; y++ {
		for x := 0; x < buf.Width; x++ {
			buf.Set(x, y, 'X')
		}
	}
	labels := []EdgeLabel{
		{EdgeIndex: 0, FromID: "a", ToID: "b", Text: "go", MidX: 10, MidY: 5, FromY: 1, ToY: 9},
	}
	placements, legend := Place(buf, labels)
	if len(placements) != 0 {
		t.Fatalf("expected no placement, got %v", placements)
	}
	if len(legend) != 1 || legend[0] != (LegendEntry{FromID: "a", ToID: "b", Text: "go"}) {
		t.Errorf("unexpected legend: %v", legend)
	}
}

func TestPlaceReversedEdgeUsesChannelX(t *testing.T) {
	buf := NewBuffer(40, 10)
	labels := []EdgeLabel{
		{EdgeIndex: 0, FromID: "a", ToID: "b", Text: "r", Reversed: true, ChannelX: 30, MidY: 4, FromY: 1, ToY: 8},
	}
	placements, _ := Place(buf, labels)
	wantX := 30 - len("\"r\"")/2
	if placements[0].X != wantX {
		t.Errorf("X = %d, want %d (centred on channel)", placements[0].X, wantX)
	}
}

func TestPlaceSelfLoopAnchorsAfterGlyph(t *testing.T) {
	buf := NewBuffer(40, 10)
	labels := []EdgeLabel{
		{EdgeIndex: 0, FromID: "a", ToID: "a", Text: "loop", SelfLoop: true, LoopGlyphX: 5, LoopGlyphY: 3},
	}
	placements, legend := Place(buf, labels)
	if len(legend) != 0 {
		t.Fatalf("expected no legend fallback, got %v", legend)
	}
	if placements[0].X != 6 || placements[0].Y != 3 {
		t.Errorf("placement = (%d,%d), want (6,3)", placements[0].X, placements[0].Y)
	}
}

func TestPlaceSkipsEmptyText(t *testing.T) {
	buf := NewBuffer(40, 10)
	labels := []EdgeLabel{{EdgeIndex: 0, FromID: "a", ToID: "b"}}
	placements, legend := Place(buf, labels)
	if len(placements) != 0 || len(legend) != 0 {
		t.Errorf("expected no output for an unlabelled edge, got placements=%v legend=%v", placements, legend)
	}
}
