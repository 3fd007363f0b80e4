package psdoc

import "image"

// StaticLayer is an in-memory Layer implementation, used to assemble
// synthetic documents in tests and fixtures.
type StaticLayer struct {
	name     string
	kind     string
	bbox     image.Rectangle
	visible  bool
	mode     string
	opacity  float64
	img      *image.NRGBA
	children []Layer
}

// NewStaticLayer builds a leaf layer whose composite is img placed at
// bbox. img may be nil for an empty layer.
func NewStaticLayer(name, kind string, bbox image.Rectangle, img *image.NRGBA) *StaticLayer {
	return &StaticLayer{
		name:    name,
		kind:    kind,
		bbox:    bbox,
		visible: true,
		mode:    BlendNormal,
		opacity: 1,
		img:     img,
	}
}

// NewStaticGroup builds a group layer. Children are ordered bottom to top.
func NewStaticGroup(name string, children ...Layer) *StaticLayer {
	return &StaticLayer{
		name:     name,
		kind:     KindGroup,
		visible:  true,
		mode:     BlendNormal,
		opacity:  1,
		children: children,
	}
}

func (l *StaticLayer) Name() string      { return l.name }
func (l *StaticLayer) Kind() string      { return l.kind }
func (l *StaticLayer) Visible() bool     { return l.visible }
func (l *StaticLayer) SetVisible(v bool) { l.visible = v }
func (l *StaticLayer) IsGroup() bool     { return l.kind == KindGroup }
func (l *StaticLayer) Children() []Layer { return l.children }
func (l *StaticLayer) BlendMode() string { return l.mode }
func (l *StaticLayer) Opacity() float64  { return l.opacity }

func (l *StaticLayer) SetBlendMode(mode string)   { l.mode = mode }
func (l *StaticLayer) SetOpacity(opacity float64) { l.opacity = opacity }

func (l *StaticLayer) BBox() image.Rectangle {
	if l.IsGroup() {
		return unionBBox(l.children)
	}
	return l.bbox
}

func (l *StaticLayer) Composite() *image.NRGBA {
	if l.IsGroup() {
		return compositeGroup(l)
	}
	return l.img
}
