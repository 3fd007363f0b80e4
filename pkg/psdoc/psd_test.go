package psdoc

import (
	"image"
	"image/color"
	"testing"

	"github.com/oov/psd"
)

func TestConvertLayer_MapsRecordFields(t *testing.T) {
	l := &psd.Layer{
		Name:      "Front Case Mokcup",
		Rect:      image.Rect(4, 8, 20, 24),
		BlendMode: psd.BlendModeScreen,
		Opacity:   128,
	}

	got := convertLayer(l)
	if got.Name() != "Front Case Mokcup" {
		t.Errorf("unexpected name %q", got.Name())
	}
	if got.Kind() != KindPixel {
		t.Errorf("expected %q, got %q", KindPixel, got.Kind())
	}
	if got.BBox() != image.Rect(4, 8, 20, 24) {
		t.Errorf("unexpected bbox %v", got.BBox())
	}
	if got.BlendMode() != BlendScreen {
		t.Errorf("expected %q, got %q", BlendScreen, got.BlendMode())
	}
	if want := float64(128) / 255; got.Opacity() != want {
		t.Errorf("expected opacity %v, got %v", want, got.Opacity())
	}
	if !got.Visible() {
		t.Error("a layer with zero flags must be visible")
	}
	if got.Composite() != nil {
		t.Error("a record without pixel data must composite to nil")
	}
}

func TestClassify_SmartObjectKeys(t *testing.T) {
	for _, key := range []string{"SoLd", "SoLE", "PlLd"} {
		l := &psd.Layer{
			AdditionalLayerInfo: map[psd.AdditionalInfoKey][]byte{
				psd.AdditionalInfoKey(key): nil,
			},
		}
		if got := classify(l); got != KindSmartObject {
			t.Errorf("key %s: expected %q, got %q", key, KindSmartObject, got)
		}
	}
}

func TestClassify_TypeAndPixel(t *testing.T) {
	typeLayer := &psd.Layer{
		AdditionalLayerInfo: map[psd.AdditionalInfoKey][]byte{
			psd.AdditionalInfoKey("TySh"): nil,
		},
	}
	if got := classify(typeLayer); got != KindType {
		t.Errorf("expected %q, got %q", KindType, got)
	}

	if got := classify(&psd.Layer{}); got != KindPixel {
		t.Errorf("expected %q, got %q", KindPixel, got)
	}
}

func TestBlendModeName(t *testing.T) {
	cases := []struct {
		mode psd.BlendMode
		want string
	}{
		{psd.BlendModeScreen, BlendScreen},
		{psd.BlendModeMultiply, BlendMultiply},
		{psd.BlendModeNormal, BlendNormal},
		{psd.BlendModeOverlay, BlendNormal}, // unsupported modes fall back
	}
	for _, c := range cases {
		if got := blendModeName(c.mode); got != c.want {
			t.Errorf("mode %v: expected %q, got %q", c.mode, c.want, got)
		}
	}
}

func TestToNRGBA_NormalizesOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 7, 9, 11))
	want := color.NRGBA{R: 255, A: 255}
	src.SetNRGBA(5, 7, want)

	out := toNRGBA(src)
	if out.Bounds().Min != (image.Point{}) {
		t.Fatalf("expected origin bounds, got %v", out.Bounds())
	}
	if got := out.NRGBAAt(0, 0); got != want {
		t.Errorf("expected content shifted to origin, got %v", got)
	}
}

func TestToNRGBA_Nil(t *testing.T) {
	if toNRGBA(nil) != nil {
		t.Error("expected nil for a nil layer image")
	}
}
