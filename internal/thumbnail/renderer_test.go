package thumbnail

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/iconidentify/vidseo/internal/domain"
)

func sleepConcept() domain.ThumbnailConcept {
	return domain.ThumbnailConcept{
		Concept:     "Moon over bed",
		TextOverlay: "Sleep Like A Baby",
		Colors:      []string{"#FF0000", "#0000FF", "#FFFF00"},
		Tone:        "calm",
	}
}

func TestNewRenderer_DefaultSize(t *testing.T) {
	w, h := NewRenderer(0, -1).Size()
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size() = %dx%d, want %dx%d", w, h, DefaultWidth, DefaultHeight)
	}
}

func TestRender_Gradient(t *testing.T) {
	r := NewRenderer(320, 180)
	concept := sleepConcept()
	concept.TextOverlay = ""
	img := r.Render(concept, "", nil)

	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 180 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	top := img.RGBAAt(5, 0)
	if top.R < 0xF0 || top.B > 0x10 {
		t.Errorf("top row = %v, want red", top)
	}
	bottom := img.RGBAAt(5, 179)
	if bottom.B < 0xE0 || bottom.R > 0x30 {
		t.Errorf("bottom row = %v, want blue", bottom)
	}
}

func TestRender_InvalidColorsUseFallback(t *testing.T) {
	r := NewRenderer(100, 100)
	img := r.Render(domain.ThumbnailConcept{Colors: []string{"nope"}}, "", nil)
	got := img.RGBAAt(50, 0)
	want := color.RGBA{R: 0x33, G: 0x66, B: 0xCC, A: 0xFF}
	if got != want {
		t.Errorf("top = %v, want %v", got, want)
	}
}

func TestRender_OverlayChangesCenter(t *testing.T) {
	r := NewRenderer(640, 360)
	plain := sleepConcept()
	plain.TextOverlay = ""

	without := r.Render(plain, "", nil)
	with := r.Render(sleepConcept(), "", nil)
	if bytes.Equal(without.Pix, with.Pix) {
		t.Error("overlay text did not change the image")
	}

	changed := 0
	band := image.Rect(0, 140, 640, 220)
	for y := band.Min.Y; y < band.Max.Y; y++ {
		for x := band.Min.X; x < band.Max.X; x++ {
			if without.RGBAAt(x, y) != with.RGBAAt(x, y) {
				changed++
			}
		}
	}
	if changed == 0 {
		t.Error("overlay should be drawn near the vertical center")
	}
}

func TestRender_TonePatterns(t *testing.T) {
	r := NewRenderer(200, 120)
	base := sleepConcept()
	base.TextOverlay = ""
	plain := r.Render(base, "", nil)

	for _, tone := range []string{"Professional", "energetic", "dramatic"} {
		c := base
		c.Tone = tone
		img := r.Render(c, "", nil)
		if bytes.Equal(plain.Pix, img.Pix) {
			t.Errorf("tone %q produced no pattern", tone)
		}
	}
}

func TestRender_BaseImage(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			base.SetRGBA(x, y, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF})
		}
	}
	r := NewRenderer(100, 50)
	img := r.Render(domain.ThumbnailConcept{}, "", base)
	if got := img.RGBAAt(50, 10); got.R < 0x7E || got.R > 0x82 || got.G < 0x7E || got.G > 0x82 {
		t.Errorf("pixel = %v, want scaled base image", got)
	}
}

func TestRenderPNG(t *testing.T) {
	r := NewRenderer(160, 90)
	var buf bytes.Buffer
	if err := r.RenderPNG(&buf, sleepConcept(), "Fix Your Sleep", nil); err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 160 || img.Bounds().Dy() != 90 {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}
}

func TestWrap(t *testing.T) {
	r := NewRenderer(0, 0)
	lines := r.wrap("one two three four", r.textWidth("three four"))
	if len(lines) != 2 || lines[0] != "one two" || lines[1] != "three four" {
		t.Errorf("wrap = %q", lines)
	}
	if got := r.wrap("supercalifragilistic", 7); len(got) != 1 {
		t.Errorf("single long word should stay on one line, got %q", got)
	}
}
