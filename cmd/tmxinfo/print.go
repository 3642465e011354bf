package main

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/retroblast-engine/tiled"
)

// writeText prints the map header followed by its layer tree, one layer per
// line, indented by group depth.
func writeText(w io.Writer, name string, m *tiled.Map[string]) error {
	if _, err := fmt.Fprintf(w, "%s: %s %dx%d tiles of %dx%d, version %s\n",
		name, m.Orientation, m.Size.X, m.Size.Y, m.TileSize.X, m.TileSize.Y, m.Version); err != nil {
		return err
	}
	for _, ts := range m.TileSets {
		if _, err := fmt.Fprintf(w, "  tileset %q firstgid=%d tiles=%d image=%s\n",
			ts.Name, ts.FirstGID, ts.TileCount, ts.ImageSource); err != nil {
			return err
		}
	}

	depth := 0
	for l, pops := range m.AllLayers() {
		depth -= pops
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth+1), describe(l)); err != nil {
			return err
		}
		if _, ok := l.(*tiled.GroupLayer); ok {
			depth++
		}
	}
	return nil
}

func describe(l tiled.Layer) string {
	info := l.Info()
	switch l := l.(type) {
	case *tiled.TileLayer:
		used := 0
		for _, gid := range l.Tiles {
			if gid != 0 {
				used++
			}
		}
		return fmt.Sprintf("layer %q %dx%d, %d tiles", info.Name, l.Size.X, l.Size.Y, used)
	case *tiled.GroupLayer:
		return fmt.Sprintf("group %q", info.Name)
	case *tiled.ObjectLayer:
		return fmt.Sprintf("objectgroup %q, %d objects", info.Name, len(l.Objects))
	case *tiled.ImageLayer[string]:
		return fmt.Sprintf("imagelayer %q %s", info.Name, l.ImageSource)
	default:
		return fmt.Sprintf("%T %q", l, info.Name)
	}
}

type mapSummary struct {
	File        string            `yaml:"file"`
	Version     string            `yaml:"version"`
	Orientation string            `yaml:"orientation"`
	RenderOrder string            `yaml:"renderorder"`
	Size        [2]int            `yaml:"size,flow"`
	TileSize    [2]int            `yaml:"tilesize,flow"`
	TileSets    []tileSetInfo     `yaml:"tilesets,omitempty"`
	Layers      []layerSummary    `yaml:"layers,omitempty"`
	Properties  map[string]string `yaml:"properties,omitempty"`
}

type tileSetInfo struct {
	Name      string `yaml:"name"`
	FirstGID  uint32 `yaml:"firstgid"`
	TileCount int    `yaml:"tilecount"`
	Image     string `yaml:"image,omitempty"`
	Source    string `yaml:"source,omitempty"`
}

type layerSummary struct {
	Kind    string         `yaml:"kind"`
	Name    string         `yaml:"name"`
	Visible bool           `yaml:"visible"`
	Opacity float64        `yaml:"opacity"`
	Objects int            `yaml:"objects,omitempty"`
	Layers  []layerSummary `yaml:"layers,omitempty"`
}

func summarize(name string, m *tiled.Map[string]) mapSummary {
	s := mapSummary{
		File:        name,
		Version:     m.Version.String(),
		Orientation: m.Orientation.String(),
		RenderOrder: m.RenderOrder.String(),
		Size:        [2]int{m.Size.X, m.Size.Y},
		TileSize:    [2]int{m.TileSize.X, m.TileSize.Y},
	}
	for _, ts := range m.TileSets {
		s.TileSets = append(s.TileSets, tileSetInfo{
			Name:      ts.Name,
			FirstGID:  ts.FirstGID.ID(),
			TileCount: ts.TileCount,
			Image:     ts.ImageSource,
			Source:    ts.Source,
		})
	}
	if len(m.Properties) > 0 {
		s.Properties = make(map[string]string, len(m.Properties))
		for k, p := range m.Properties {
			s.Properties[k] = fmt.Sprint(p.Value)
		}
	}

	// Rebuild the tree from the flat walk: stack holds the open groups.
	root := &layerSummary{}
	stack := []*layerSummary{root}
	for l, pops := range m.AllLayers() {
		stack = stack[:len(stack)-pops]
		parent := stack[len(stack)-1]
		info := l.Info()
		ls := layerSummary{Name: info.Name, Visible: info.Visible, Opacity: info.Opacity}
		switch l := l.(type) {
		case *tiled.TileLayer:
			ls.Kind = "tile"
		case *tiled.GroupLayer:
			ls.Kind = "group"
		case *tiled.ObjectLayer:
			ls.Kind = "object"
			ls.Objects = len(l.Objects)
		case *tiled.ImageLayer[string]:
			ls.Kind = "image"
		default:
			ls.Kind = fmt.Sprintf("%T", l)
		}
		parent.Layers = append(parent.Layers, ls)
		if ls.Kind == "group" {
			stack = append(stack, &parent.Layers[len(parent.Layers)-1])
		}
	}
	s.Layers = root.Layers
	return s
}

func writeYAML(w io.Writer, name string, m *tiled.Map[string]) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summarize(name, m)); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return enc.Close()
}
