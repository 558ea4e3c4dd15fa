package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/chordflow/chord"
)

func weight(v float64) *float64 { return &v }

var wantDataset = chord.Dataset{
	Nodes: []chord.Node{{ID: "a", Category: "red"}, {ID: "b", Category: "blue"}},
	Links: []chord.Link{
		{Source: "a", Target: "b", Weight: weight(2.5)},
		{Source: "b", Target: "a"},
	},
}

func TestLoadFormats(t *testing.T) {
	files := map[string]string{
		"data.toml": `
[[nodes]]
id = "a"
category = "red"

[[nodes]]
id = "b"
category = "blue"

[[links]]
source = "a"
target = "b"
weight = 2.5

[[links]]
source = "b"
target = "a"
`,
		"data.yaml": `
nodes:
  - id: a
    category: red
  - id: b
    category: blue
links:
  - source: a
    target: b
    weight: 2.5
  - source: b
    target: a
`,
		"data.json": `{
  "nodes": [{"id": "a", "category": "red"}, {"id": "b", "category": "blue"}],
  "links": [{"source": "a", "target": "b", "weight": 2.5}, {"source": "b", "target": "a"}]
}`,
	}

	dir := t.TempDir()
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if diff := cmp.Diff(wantDataset, got); diff != "" {
				t.Errorf("Dataset mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a,b"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		ds   chord.Dataset
		ok   bool
	}{
		{"valid", wantDataset, true},
		{"no nodes", chord.Dataset{Links: wantDataset.Links}, false},
		{"no links", chord.Dataset{Nodes: wantDataset.Nodes}, false},
		{"duplicate id", chord.Dataset{
			Nodes: []chord.Node{{ID: "a"}, {ID: "a"}},
			Links: []chord.Link{{Source: "a", Target: "a"}},
		}, false},
		{"empty id", chord.Dataset{
			Nodes: []chord.Node{{ID: ""}},
			Links: []chord.Link{{Source: "", Target: ""}},
		}, false},
		{"dangling target", chord.Dataset{
			Nodes: []chord.Node{{ID: "a"}},
			Links: []chord.Link{{Source: "a", Target: "z"}},
		}, false},
		{"negative weight", chord.Dataset{
			Nodes: []chord.Node{{ID: "a"}},
			Links: []chord.Link{{Source: "a", Target: "a", Weight: weight(-1)}},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.ds)
			if tt.ok && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidDataset) {
				t.Errorf("Expected ErrInvalidDataset, got %v", err)
			}
		})
	}
}

func TestDemoDeterministic(t *testing.T) {
	a := Demo(12, 40, 7)
	b := Demo(12, 40, 7)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Demo not reproducible:\n%s", diff)
	}
	if err := Validate(a); err != nil {
		t.Errorf("Demo dataset invalid: %v", err)
	}
	if len(a.Nodes) != 12 || len(a.Links) != 40 {
		t.Errorf("Unexpected size: %d nodes %d links", len(a.Nodes), len(a.Links))
	}
	placeholders := 0
	for _, l := range a.Links {
		if l.Weight == nil {
			placeholders++
		}
	}
	if placeholders != 8 {
		t.Errorf("Expected 8 placeholder links, got %d", placeholders)
	}
}
