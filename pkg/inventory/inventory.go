// Package inventory walks every layer of every mockup document under a
// source directory and reports smart objects and keyword-matched key
// layers as JSON.
package inventory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vhsmock/pkg/psdoc"
)

// keyTokens classify a layer as a "key layer" when any of them occurs in
// the lowercased layer name.
var keyTokens = []string{
	"texture",
	"shadow",
	"lighting",
	"design here",
	"mockup",
	"front",
	"back",
	"spine",
}

// BBox is a layer bounding box as origin plus size.
type BBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LayerInfo describes one recorded layer.
type LayerInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	BBox    BBox   `json:"bbox"`
	Visible bool   `json:"visible"`
}

// Entry is the inventory record for one document.
type Entry struct {
	File         string      `json:"file"`
	Name         string      `json:"name"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	SmartObjects []LayerInfo `json:"smartObjects"`
	KeyLayers    []LayerInfo `json:"keyLayers"`
}

// IsKeyLayer reports whether a layer name matches the key-layer keyword
// set.
func IsKeyLayer(name string) bool {
	lower := strings.ToLower(name)
	for _, token := range keyTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// Scan walks every layer of doc and classifies it. A layer may appear in
// both lists, one, or neither. Visibility is effective visibility: the
// layer's own flag and every ancestor's.
func Scan(doc *psdoc.Document, file string) Entry {
	entry := Entry{
		File:         file,
		Name:         doc.Name,
		Width:        doc.Width,
		Height:       doc.Height,
		SmartObjects: []LayerInfo{},
		KeyLayers:    []LayerInfo{},
	}

	var walk func(layers []psdoc.Layer, path []string, parentVisible bool)
	walk = func(layers []psdoc.Layer, path []string, parentVisible bool) {
		for _, l := range layers {
			current := append(append([]string{}, path...), l.Name())
			visible := parentVisible && l.Visible()
			bbox := l.BBox()
			info := LayerInfo{
				Name: l.Name(),
				Path: strings.Join(current, " > "),
				Kind: l.Kind(),
				BBox: BBox{
					X:      bbox.Min.X,
					Y:      bbox.Min.Y,
					Width:  bbox.Dx(),
					Height: bbox.Dy(),
				},
				Visible: visible,
			}

			if info.Kind == psdoc.KindSmartObject {
				entry.SmartObjects = append(entry.SmartObjects, info)
			}
			if IsKeyLayer(l.Name()) {
				entry.KeyLayers = append(entry.KeyLayers, info)
			}

			if l.IsGroup() {
				walk(l.Children(), current, visible)
			}
		}
	}
	walk(doc.Layers, nil, true)
	return entry
}

// Collect opens every document under <root>/Mockups and <root>/Template
// (in that order, each sorted) and scans it.
func Collect(root string) ([]Entry, error) {
	files, err := listDocuments(root)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(files))
	for _, file := range files {
		doc, err := psdoc.Open(file)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Scan(doc, file))
	}
	return entries, nil
}

// Write serializes the inventory to path in a single all-or-nothing
// write, creating parent directories as needed.
func Write(path string, entries []Entry) error {
	encoded, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}

func listDocuments(root string) ([]string, error) {
	var files []string
	for _, sub := range []string{"Mockups", "Template"} {
		var group []string
		for _, pattern := range []string{"*.psb", "*.psd"} {
			matches, err := filepath.Glob(filepath.Join(root, sub, pattern))
			if err != nil {
				return nil, err
			}
			group = append(group, matches...)
		}
		sort.Strings(group)
		files = append(files, group...)
	}
	return files, nil
}
