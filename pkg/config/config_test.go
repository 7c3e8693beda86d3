package config

import (
	"testing"

	"github.com/matzehuels/layerflow/pkg/pipeline"
)

func TestParseDecodesLayoutTable(t *testing.T) {
	doc := `
[layout]
algorithm = "fruchterman_reingold"
positioning = "brandes_kopf"
seed = 42
node_spacing = 5
show_dummy_nodes = true
`
	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Layout.Algorithm != "fruchterman_reingold" {
		t.Errorf("Algorithm = %q", f.Layout.Algorithm)
	}
	if f.Layout.Seed != 42 {
		t.Errorf("Seed = %d", f.Layout.Seed)
	}
	if !f.Layout.ShowDummyNodes {
		t.Error("expected ShowDummyNodes = true")
	}
}

func TestToOptionsCarriesOverSpecifiedFields(t *testing.T) {
	f := File{Layout: LayoutConfig{
		Algorithm: "sugiyama", Positioning: "compact", Seed: 7, NodeSpacing: 8,
	}}
	opts := f.ToOptions()
	if opts.Algorithm != pipeline.Sugiyama {
		t.Errorf("Algorithm = %q", opts.Algorithm)
	}
	if opts.Seed != 7 || opts.NodeSpacing != 8 {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestToOptionsThenValidateFillsDefaults(t *testing.T) {
	f := File{}
	opts := f.ToOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Algorithm != pipeline.Sugiyama {
		t.Errorf("expected default algorithm sugiyama, got %q", opts.Algorithm)
	}
	if opts.NodeSpacing != pipeline.DefaultNodeSpacing {
		t.Errorf("expected default node spacing, got %d", opts.NodeSpacing)
	}
}

func TestParseRejectsMalformedTOML(t *testing.T) {
	if _, err := Parse([]byte("not = [valid toml")); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}
