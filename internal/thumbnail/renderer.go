// Package thumbnail renders preview images for thumbnail concepts: a
// two-color gradient, a tone-dependent pattern, the outlined overlay text and
// the video title.
package thumbnail

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iconidentify/vidseo/internal/domain"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720

	watermark = "Video SEO Optimizer"
)

var (
	fallbackTop    = colorful.Color{R: 0x33 / 255.0, G: 0x66 / 255.0, B: 0xCC / 255.0}
	fallbackBottom = colorful.Color{R: 1, G: 1, B: 1}
	outlineColor   = color.RGBA{A: 0xFF}
	patternColor   = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x18}
)

// Renderer draws concept previews at a fixed size.
type Renderer struct {
	width  int
	height int
	face   font.Face
}

// NewRenderer creates a renderer. Non-positive sizes use 1280x720.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{width: width, height: height, face: basicfont.Face7x13}
}

// Size returns the output dimensions.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Render draws the preview for concept. When base is non-nil it is scaled
// to fill the canvas instead of the gradient background.
func (r *Renderer) Render(concept domain.ThumbnailConcept, title string, base image.Image) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))

	if base != nil {
		xdraw.CatmullRom.Scale(img, img.Bounds(), base, base.Bounds(), draw.Src, nil)
	} else {
		top, bottom := gradientColors(concept.Colors)
		drawGradient(img, top, bottom)
		drawPattern(img, concept.Tone)
	}

	if text := strings.TrimSpace(concept.TextOverlay); text != "" {
		r.drawOverlay(img, text, textColor(concept.Colors, img))
	}
	if title = strings.TrimSpace(title); title != "" {
		r.drawScaled(img, title, image.Pt(24, r.height-64), 2, color.White, true)
	}
	r.drawScaled(img, watermark, image.Pt(r.width-r.textWidth(watermark)-12, r.height-20), 1, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x80}, false)
	return img
}

// RenderPNG renders the preview and encodes it as PNG.
func (r *Renderer) RenderPNG(w io.Writer, concept domain.ThumbnailConcept, title string, base image.Image) error {
	if err := png.Encode(w, r.Render(concept, title, base)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func gradientColors(colors []string) (colorful.Color, colorful.Color) {
	top, bottom := fallbackTop, fallbackBottom
	if len(colors) > 0 {
		c, err := colorful.Hex(colors[0])
		if err != nil {
			return fallbackTop, fallbackBottom
		}
		top = c
	}
	if len(colors) > 1 {
		c, err := colorful.Hex(colors[1])
		if err != nil {
			return fallbackTop, fallbackBottom
		}
		bottom = c
	}
	return top, bottom
}

// drawGradient fills img top to bottom, blending in Lab space.
func drawGradient(img *image.RGBA, top, bottom colorful.Color) {
	b := img.Bounds()
	h := b.Dy()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		ratio := float64(y-b.Min.Y) / float64(h)
		r, g, bl := top.BlendLab(bottom, ratio).Clamped().RGB255()
		row := color.RGBA{R: r, G: g, B: bl, A: 0xFF}
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, row)
		}
	}
}

func drawPattern(img *image.RGBA, tone string) {
	tone = strings.ToLower(tone)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch {
	case strings.Contains(tone, "professional") || strings.Contains(tone, "educational"):
		for x := 0; x < w; x += 40 {
			for y := 0; y < h; y++ {
				blend(img, x, y, patternColor)
			}
		}
		for y := 0; y < h; y += 40 {
			for x := 0; x < w; x++ {
				blend(img, x, y, patternColor)
			}
		}
	case strings.Contains(tone, "energetic") || strings.Contains(tone, "exciting"):
		for start := -h; start < w+h; start += 60 {
			for y := 0; y < h; y++ {
				blend(img, start+y, y, patternColor)
				blend(img, start+h-y, y, patternColor)
			}
		}
	case strings.Contains(tone, "emotional") || strings.Contains(tone, "dramatic"):
		cx, cy := float64(w)/2, float64(h)/2
		for radius := 50; radius < max(w, h); radius += 100 {
			steps := int(2 * math.Pi * float64(radius))
			for i := 0; i < steps; i++ {
				a := 2 * math.Pi * float64(i) / float64(steps)
				blend(img, int(cx+float64(radius)*math.Cos(a)), int(cy+float64(radius)*math.Sin(a)), patternColor)
			}
		}
	}
}

func blend(img *image.RGBA, x, y int, c color.NRGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	dst := img.RGBAAt(x, y)
	a := uint32(c.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(d)*(255-a) + uint32(s)*a) / 255)
	}
	img.SetRGBA(x, y, color.RGBA{R: mix(dst.R, c.R), G: mix(dst.G, c.G), B: mix(dst.B, c.B), A: 0xFF})
}

// textColor picks the concept color that contrasts most with the canvas center.
func textColor(colors []string, img *image.RGBA) color.Color {
	center := img.RGBAAt(img.Bounds().Dx()/2, img.Bounds().Dy()/2)
	bg, _ := colorful.MakeColor(center)

	best := colorful.Color{R: 1, G: 1, B: 1}
	bestDist := best.DistanceLab(bg)
	for _, hex := range colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			continue
		}
		if d := c.DistanceLab(bg); d > bestDist {
			best, bestDist = c, d
		}
	}
	return best.Clamped()
}

func (r *Renderer) textWidth(s string) int {
	return font.MeasureString(r.face, s).Ceil()
}

// drawOverlay draws centered, word-wrapped, outlined text scaled up from the
// bitmap face.
func (r *Renderer) drawOverlay(img *image.RGBA, text string, fill color.Color) {
	lineHeight := r.face.Metrics().Height.Ceil()
	maxWidth := r.width * 9 / 10

	scale := r.height / 120
	if scale < 1 {
		scale = 1
	}
	lines := r.wrap(text, maxWidth/scale)
	for scale > 1 && r.widest(lines)*scale > maxWidth {
		scale--
		lines = r.wrap(text, maxWidth/scale)
	}

	blockHeight := len(lines) * lineHeight * scale
	y := (r.height - blockHeight) / 2
	for _, line := range lines {
		x := (r.width - r.textWidth(line)*scale) / 2
		r.drawScaled(img, line, image.Pt(x, y), scale, fill, true)
		y += lineHeight * scale
	}
}

func (r *Renderer) wrap(text string, maxWidth int) []string {
	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && r.textWidth(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func (r *Renderer) widest(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, r.textWidth(l))
	}
	return w
}

// drawScaled renders s into an alpha mask at native size, scales the mask by
// scale and composites it at pt (top-left), optionally with a black outline.
func (r *Renderer) drawScaled(img *image.RGBA, s string, pt image.Point, scale int, fill color.Color, outline bool) {
	metrics := r.face.Metrics()
	w := r.textWidth(s)
	h := metrics.Height.Ceil()
	if w == 0 || h == 0 {
		return
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: r.face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	d.DrawString(s)

	scaled := image.NewAlpha(image.Rect(0, 0, w*scale, h*scale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), mask, mask.Bounds(), draw.Src, nil)

	target := scaled.Bounds().Add(pt)
	if outline {
		width := max(1, scale/2)
		for dx := -width; dx <= width; dx++ {
			for dy := -width; dy <= width; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				draw.DrawMask(img, target.Add(image.Pt(dx, dy)), image.NewUniform(outlineColor), image.Point{}, scaled, image.Point{}, draw.Over)
			}
		}
	}
	draw.DrawMask(img, target, image.NewUniform(fill), image.Point{}, scaled, image.Point{}, draw.Over)
}
