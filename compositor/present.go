package compositor

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"

	"worldcore/spritedecode"
)

// Presenter uploads a composed palette surface to the screen. It keeps
// its GPU image and RGBA scratch buffers across frames and rebuilds them
// only when the surface size changes.
type Presenter struct {
	img    *ebiten.Image
	rgba   *image.RGBA
	scaled *image.RGBA
	w, h   int
}

// NewPresenter returns an empty Presenter; buffers are sized lazily on the
// first Present call.
func NewPresenter() *Presenter {
	return &Presenter{}
}

func (p *Presenter) ensure(w, h int) {
	if p.w == w && p.h == h {
		return
	}
	p.w, p.h = w, h
	p.img = ebiten.NewImage(w, h)
	p.rgba = image.NewRGBA(image.Rect(0, 0, w, h))
	p.scaled = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Present converts the palette-indexed surface to RGBA through pal and
// draws it onto screen. At 2x zoom the top-left quadrant of the surface
// is upscaled to the full screen with nearest-neighbor doubling.
func (p *Presenter) Present(screen *ebiten.Image, s *spritedecode.Surface, pal color.Palette, zoom int) {
	p.ensure(s.Width, s.Height)

	for i, idx := range s.Pix {
		var r, g, b uint32
		if int(idx) < len(pal) {
			r, g, b, _ = pal[idx].RGBA()
		}
		o := 4 * i
		p.rgba.Pix[o] = uint8(r >> 8)
		p.rgba.Pix[o+1] = uint8(g >> 8)
		p.rgba.Pix[o+2] = uint8(b >> 8)
		p.rgba.Pix[o+3] = 0xff
	}

	src := p.rgba
	if zoom == 2 {
		quad := p.rgba.SubImage(image.Rect(0, 0, s.Width/2, s.Height/2))
		xdraw.NearestNeighbor.Scale(p.scaled, p.scaled.Bounds(), quad, quad.Bounds(), xdraw.Src, nil)
		src = p.scaled
	}

	p.img.WritePixels(src.Pix)
	screen.DrawImage(p.img, nil)
}
