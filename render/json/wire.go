package json

import "github.com/matzehuels/layerflow/pkg/ir"

// document is the top-level shape of the external JSON IR.
type document struct {
	Version    string     `json:"version"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	LevelCount int        `json:"level_count"`
	Nodes      []wireNode `json:"nodes"`
	Edges      []wireEdge `json:"edges"`
}

type wireNode struct {
	ID            int    `json:"id"`
	Label         string `json:"label"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Width         int    `json:"width"`
	CenterX       int    `json:"center_x"`
	Level         int    `json:"level"`
	LevelPosition int    `json:"level_position"`
	Kind          string `json:"kind"`
	EdgeIndex     *int   `json:"edge_index"`
}

type wireEdge struct {
	From      int        `json:"from"`
	To        int        `json:"to"`
	FromX     int        `json:"from_x"`
	FromY     int        `json:"from_y"`
	ToX       int        `json:"to_x"`
	ToY       int        `json:"to_y"`
	EdgeIndex int        `json:"edge_index"`
	Directed  bool       `json:"directed"`
	Reversed  bool       `json:"reversed,omitempty"`
	Path      wirePath   `json:"path"`
	Label     string     `json:"label,omitempty"`
	LabelX    *int       `json:"label_x,omitempty"`
	LabelY    *int       `json:"label_y,omitempty"`
}

// wirePath is the union of all five <path-object> shapes. Only the fields
// relevant to Type are populated; the rest are omitted on encode.
type wirePath struct {
	Type        string `json:"type"`
	HorizontalY *int   `json:"horizontal_y,omitempty"`
	ChannelX    *int   `json:"channel_x,omitempty"`
	StartY      *int   `json:"start_y,omitempty"`
	EndY        *int   `json:"end_y,omitempty"`
	Waypoints   [][2]int `json:"waypoints,omitempty"`
	CP1X        *int   `json:"cp1_x,omitempty"`
	CP1Y        *int   `json:"cp1_y,omitempty"`
	CP2X        *int   `json:"cp2_x,omitempty"`
	CP2Y        *int   `json:"cp2_y,omitempty"`
}

func intPtr(v int) *int { return &v }

func encodePath(p ir.EdgePath[int]) wirePath {
	switch p.Kind {
	case ir.PathDirect:
		return wirePath{Type: "direct"}
	case ir.PathCorner:
		y := p.Waypoints[0].Y
		if len(p.Waypoints) > 1 {
			y = p.Waypoints[len(p.Waypoints)/2].Y
		}
		return wirePath{Type: "corner", HorizontalY: intPtr(y)}
	case ir.PathSideChannel:
		start, end := p.Waypoints[0].Y, p.Waypoints[len(p.Waypoints)-1].Y
		x := p.Waypoints[0].X
		if len(p.Waypoints) > 1 {
			x = p.Waypoints[1].X
		}
		return wirePath{Type: "side_channel", ChannelX: intPtr(x), StartY: intPtr(start), EndY: intPtr(end)}
	case ir.PathSpline:
		wp := wirePath{Type: "spline"}
		if len(p.Controls) > 0 {
			wp.CP1X, wp.CP1Y = intPtr(p.Controls[0].X), intPtr(p.Controls[0].Y)
		}
		if len(p.Controls) > 1 {
			wp.CP2X, wp.CP2Y = intPtr(p.Controls[len(p.Controls)-1].X), intPtr(p.Controls[len(p.Controls)-1].Y)
		}
		return wp
	default: // PathMultiSegment
		wps := make([][2]int, len(p.Waypoints))
		for i, w := range p.Waypoints {
			wps[i] = [2]int{w.X, w.Y}
		}
		return wirePath{Type: "multi_segment", Waypoints: wps}
	}
}

func decodePath(wp wirePath) ir.EdgePath[int] {
	switch wp.Type {
	case "direct":
		return ir.EdgePath[int]{Kind: ir.PathDirect}
	case "corner":
		y := 0
		if wp.HorizontalY != nil {
			y = *wp.HorizontalY
		}
		return ir.EdgePath[int]{Kind: ir.PathCorner, Waypoints: []ir.Point[int]{{Y: y}}}
	case "side_channel":
		x, start, end := 0, 0, 0
		if wp.ChannelX != nil {
			x = *wp.ChannelX
		}
		if wp.StartY != nil {
			start = *wp.StartY
		}
		if wp.EndY != nil {
			end = *wp.EndY
		}
		return ir.EdgePath[int]{
			Kind:      ir.PathSideChannel,
			Waypoints: []ir.Point[int]{{X: x, Y: start}, {X: x, Y: end}},
		}
	case "spline":
		p := ir.EdgePath[int]{Kind: ir.PathSpline}
		if wp.CP1X != nil && wp.CP1Y != nil {
			p.Controls = append(p.Controls, ir.Point[int]{X: *wp.CP1X, Y: *wp.CP1Y})
		}
		if wp.CP2X != nil && wp.CP2Y != nil {
			p.Controls = append(p.Controls, ir.Point[int]{X: *wp.CP2X, Y: *wp.CP2Y})
		}
		return p
	case "multi_segment":
		p := ir.EdgePath[int]{Kind: ir.PathMultiSegment}
		for _, w := range wp.Waypoints {
			p.Waypoints = append(p.Waypoints, ir.Point[int]{X: w[0], Y: w[1]})
		}
		return p
	default:
		return ir.EdgePath[int]{Kind: ir.PathDirect}
	}
}
