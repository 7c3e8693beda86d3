// Package config loads a TOML configuration document into a
// pipeline.Options, so a caller (CLI or long-running service) can pin down
// layout behaviour in a file instead of repeating flags or struct literals
// at every call site.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/layerflow/layout/crossing"
	"github.com/matzehuels/layerflow/layout/layer"
	"github.com/matzehuels/layerflow/layout/position"
	"github.com/matzehuels/layerflow/layout/route"
	lferrors "github.com/matzehuels/layerflow/pkg/errors"
	"github.com/matzehuels/layerflow/pkg/pipeline"
)

// File is the TOML document shape: one top-level [layout] table mirroring
// pipeline.Options' configurable fields by their wire names (see spec §6).
type File struct {
	Layout LayoutConfig `toml:"layout"`
}

// LayoutConfig mirrors the enumerated options consumed by the pipeline.
// Every field is optional; a zero value defers to pipeline.Options'
// own defaulting.
type LayoutConfig struct {
	Algorithm         string `toml:"algorithm"`
	Layering          string `toml:"layering"`
	CycleBreaking     string `toml:"cycle_breaking"`
	CrossingReducers  string `toml:"crossing_reducers"`
	Positioning       string `toml:"positioning"`
	Routing           string `toml:"routing"`
	Seed              int64  `toml:"seed"`
	Iterations        int    `toml:"iterations"`
	NodeSpacing       int    `toml:"node_spacing"`
	LevelSpacing      int    `toml:"level_spacing"`
	MinNodeWidth      int    `toml:"min_node_width"`
	ShowDummyNodes    bool   `toml:"show_dummy_nodes"`
	IncludeDummyNodes bool   `toml:"include_dummy_nodes"`
	SkipValidation    bool   `toml:"skip_validation"`
}

// Load reads and parses a TOML configuration file from path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, lferrors.Wrap(lferrors.ErrCodeLayoutOptionInvalid, err, "reading config file %q", path)
	}
	return Parse(data)
}

// Parse decodes a TOML document's bytes into a File.
func Parse(data []byte) (File, error) {
	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return File{}, lferrors.Wrap(lferrors.ErrCodeLayoutOptionInvalid, err, "decoding config")
	}
	return f, nil
}

// ToOptions converts the parsed config into pipeline.Options. Fields left
// at their TOML zero value are left unset, so pipeline.Options'
// ValidateAndSetDefaults supplies the actual defaults - this function only
// carries over values the caller actually specified.
func (f File) ToOptions() pipeline.Options {
	l := f.Layout
	return pipeline.Options{
		Algorithm:         pipeline.Algorithm(l.Algorithm),
		Layering:          layer.Algorithm(l.Layering),
		CycleBreaking:     pipeline.CycleBreaking(l.CycleBreaking),
		CrossingPreset:    crossing.Preset(l.CrossingReducers),
		Positioning:       position.Strategy(l.Positioning),
		Routing:           route.Style(l.Routing),
		Seed:              l.Seed,
		Iterations:        l.Iterations,
		NodeSpacing:       l.NodeSpacing,
		LevelSpacing:      l.LevelSpacing,
		MinNodeWidth:      l.MinNodeWidth,
		ShowDummyNodes:    l.ShowDummyNodes,
		IncludeDummyNodes: l.IncludeDummyNodes,
		SkipValidation:    l.SkipValidation,
	}
}
