// Package psdoc abstracts a layered image document (PSD/PSB) behind a
// minimal capability interface so the locator, rasterizer and inventory
// walker do not depend on any concrete parser's layer types.
package psdoc

import (
	"fmt"
	"image"
	"sort"
	"strings"
)

// Layer kinds reported by Kind.
const (
	KindPixel       = "pixel"
	KindGroup       = "group"
	KindSmartObject = "smartobject"
	KindType        = "type"
)

// Blend modes reported by BlendMode. Anything the document declares beyond
// these is composited as normal.
const (
	BlendNormal   = "normal"
	BlendScreen   = "screen"
	BlendMultiply = "multiply"
)

// Layer is a single node of the document's layer tree.
type Layer interface {
	Name() string
	Kind() string
	// BBox is the rectangle the layer's rendered content occupies, in
	// document pixel space. For groups it is the union of the children.
	BBox() image.Rectangle
	Visible() bool
	SetVisible(v bool)
	IsGroup() bool
	Children() []Layer
	BlendMode() string
	Opacity() float64
	// Composite renders the layer's own content clipped to its bounding
	// box. Returns nil when the layer has nothing to render.
	Composite() *image.NRGBA
}

// Document is a loaded layered image document. Layers are ordered bottom
// to top, matching composite order.
type Document struct {
	Name   string
	Width  int
	Height int
	Layers []Layer
}

// Walk visits every layer depth-first. Groups are visited before their
// children, so a group and a leaf can share a path prefix. The path slice
// is owned by the callback.
func (d *Document) Walk(fn func(path []string, layer Layer)) {
	var walk func(prefix []string, layers []Layer)
	walk = func(prefix []string, layers []Layer) {
		for _, l := range layers {
			path := make([]string, 0, len(prefix)+1)
			path = append(append(path, prefix...), l.Name())
			fn(path, l)
			if l.IsGroup() {
				walk(path, l.Children())
			}
		}
	}
	walk(nil, d.Layers)
}

// ByPath maps every slash-joined layer path to its layer. Layer names are
// not guaranteed unique; on a collision the last occurrence in walk order
// wins.
func (d *Document) ByPath() map[string]Layer {
	m := make(map[string]Layer)
	d.Walk(func(path []string, l Layer) {
		m[strings.Join(path, "/")] = l
	})
	return m
}

// FindByName returns the first layer in walk order whose name matches
// exactly, or nil.
func (d *Document) FindByName(name string) Layer {
	var found Layer
	d.Walk(func(_ []string, l Layer) {
		if found == nil && l.Name() == name {
			found = l
		}
	})
	return found
}

// ResolveAliases looks up every alias's layer path. Resolution is
// all-or-nothing: a single absent path fails the whole call, naming the
// unresolved path.
func ResolveAliases(d *Document, aliases map[string]string) (map[string]Layer, error) {
	byPath := d.ByPath()
	resolved := make(map[string]Layer, len(aliases))

	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)

	for _, alias := range names {
		path := aliases[alias]
		layer, ok := byPath[path]
		if !ok {
			return nil, fmt.Errorf("could not find required layer path: %s", path)
		}
		resolved[alias] = layer
	}
	return resolved, nil
}
