package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/ports"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// document is the on-disk representation of a graph.
// IDs are decoded weakly so that numeric OSM ids and string station names
// both end up as NodeIDs.
type document struct {
	Name     string      `mapstructure:"name" json:"name,omitempty" yaml:"name,omitempty"`
	Directed bool        `mapstructure:"directed" json:"directed" yaml:"directed"`
	Nodes    []nodeEntry `mapstructure:"nodes" json:"nodes" yaml:"nodes"`
	Edges    []edgeEntry `mapstructure:"edges" json:"edges" yaml:"edges"`
}

type nodeEntry struct {
	ID string   `mapstructure:"id" json:"id" yaml:"id"`
	X  *float64 `mapstructure:"x" json:"x,omitempty" yaml:"x,omitempty"`
	Y  *float64 `mapstructure:"y" json:"y,omitempty" yaml:"y,omitempty"`
}

type edgeEntry struct {
	From  string `mapstructure:"from" json:"from" yaml:"from"`
	To    string `mapstructure:"to" json:"to" yaml:"to"`
	Color string `mapstructure:"color" json:"color,omitempty" yaml:"color,omitempty"`
}

// FileLoader implements ports.GraphLoader for JSON and YAML graph documents.
type FileLoader struct {
	// LargestComponent reduces the loaded graph to its largest weakly
	// connected component.
	LargestComponent bool
}

var _ ports.GraphLoader = FileLoader{}

// Load reads the document at path.
func (l FileLoader) Load(path string) (ports.Graph, error) {
	g, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if l.LargestComponent {
		g = LargestComponent(g)
	}
	return g, nil
}

// LoadFile reads a graph document. The format is chosen by extension:
// ".json" is decoded as JSON, anything else as YAML.
func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	g, err := Decode(data, strings.ToLower(filepath.Ext(path)) == ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if g.name == "" {
		g.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return g, nil
}

// Decode parses a graph document held in memory.
func Decode(data []byte, isJSON bool) (*Graph, error) {
	var raw map[string]any
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	}

	var doc document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode graph document: %w", err)
	}

	return doc.build()
}

func (d document) build() (*Graph, error) {
	b := NewBuilder(d.Name, d.Directed)
	for i, n := range d.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node #%d has no id", i)
		}
		id := domain.NodeID(n.ID)
		if n.X != nil && n.Y != nil {
			b.AddNodeAt(id, domain.Position{X: *n.X, Y: *n.Y})
		} else {
			b.AddNode(id)
		}
	}
	for i, e := range d.Edges {
		from, to := domain.NodeID(e.From), domain.NodeID(e.To)
		if !b.Has(from) {
			return nil, fmt.Errorf("edge #%d: %w: %q", i, domain.ErrNodeNotFound, e.From)
		}
		if !b.Has(to) {
			return nil, fmt.Errorf("edge #%d: %w: %q", i, domain.ErrNodeNotFound, e.To)
		}
		b.AddEdge(from, to, e.Color)
	}
	return b.Build(), nil
}

// Encode serializes g as JSON or YAML.
func Encode(g *Graph, asJSON bool) ([]byte, error) {
	doc := document{
		Name:     g.name,
		Directed: g.directed,
		Nodes:    make([]nodeEntry, len(g.ids)),
		Edges:    make([]edgeEntry, len(g.edges)),
	}
	for i, id := range g.ids {
		doc.Nodes[i] = nodeEntry{ID: string(id)}
		if g.hasPos[i] {
			x, y := g.positions[i].X, g.positions[i].Y
			doc.Nodes[i].X, doc.Nodes[i].Y = &x, &y
		}
	}
	for i, e := range g.edges {
		doc.Edges[i] = edgeEntry{From: string(e.From), To: string(e.To), Color: e.Color}
	}

	if asJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}

// WriteFile writes g to path, choosing the format by extension like LoadFile.
func WriteFile(path string, g *Graph) error {
	data, err := Encode(g, strings.ToLower(filepath.Ext(path)) == ".json")
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write graph file: %w", err)
	}
	return nil
}
