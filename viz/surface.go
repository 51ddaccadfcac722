package viz

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/orbit"
)

// whitePixel is a 1x1 white image scaled up to draw solid quads.
var whitePixel *ebiten.Image

// backgroundColor is the window clear color used by Run.
var backgroundColor = color.RGBA{R: 18, G: 16, B: 28, A: 255}

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// annotation is the retained draw state for one handle.
type annotation struct {
	x, y, depth float64
	text        string
	style       orbit.AnnotationStyle
	live        bool
}

// Surface is an Ebitengine-backed orbit.RenderSurface. Each annotation
// renders as a colored quad sized by its style width, with its label
// printed beside it. Handles are slot indices; freed slots are reused.
type Surface struct {
	annotations []annotation
	free        []orbit.AnnotationHandle
	drawOrder   []int
	updating    int
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{}
}

// AddAnnotation allocates a handle, reusing a freed slot when one
// exists.
func (s *Surface) AddAnnotation() orbit.AnnotationHandle {
	if n := len(s.free); n > 0 {
		h := s.free[n-1]
		s.free = s.free[:n-1]
		s.annotations[h] = annotation{live: true}
		return h
	}
	s.annotations = append(s.annotations, annotation{live: true})
	return orbit.AnnotationHandle(len(s.annotations) - 1)
}

// RemoveAnnotation releases a handle's slot for reuse.
func (s *Surface) RemoveAnnotation(handle orbit.AnnotationHandle) {
	if int(handle) >= len(s.annotations) || !s.annotations[handle].live {
		return
	}
	s.annotations[handle] = annotation{}
	s.free = append(s.free, handle)
}

// SetPosition moves an annotation. z orders drawing (larger = farther).
func (s *Surface) SetPosition(handle orbit.AnnotationHandle, x, y, z float64) {
	a := &s.annotations[handle]
	a.x, a.y, a.depth = x, y, z
}

// SetText replaces an annotation's label.
func (s *Surface) SetText(handle orbit.AnnotationHandle, text string) {
	s.annotations[handle].text = text
}

// SetStyle replaces an annotation's visual treatment.
func (s *Surface) SetStyle(handle orbit.AnnotationHandle, style orbit.AnnotationStyle) {
	s.annotations[handle].style = style
}

// BeginUpdate opens a mutation scope. The surface draws from retained
// state once per frame, so scopes only track nesting.
func (s *Surface) BeginUpdate() {
	s.updating++
}

// EndUpdate closes a mutation scope.
func (s *Surface) EndUpdate() {
	if s.updating > 0 {
		s.updating--
	}
}

// Draw renders all live annotations far-to-near.
func (s *Surface) Draw(screen *ebiten.Image) {
	s.drawOrder = s.drawOrder[:0]
	for i := range s.annotations {
		if s.annotations[i].live {
			s.drawOrder = append(s.drawOrder, i)
		}
	}
	sort.Slice(s.drawOrder, func(a, b int) bool {
		return s.annotations[s.drawOrder[a]].depth > s.annotations[s.drawOrder[b]].depth
	})

	var op ebiten.DrawImageOptions
	for _, i := range s.drawOrder {
		a := &s.annotations[i]
		size := 3 + 2*a.style.Width

		if a.style.Shadowed {
			drawQuad(screen, &op, a.x+2, a.y+2, size, color.RGBA{0, 0, 0, 160})
		}
		if a.style.Bordered {
			drawQuad(screen, &op, a.x, a.y, size+4, color.RGBA{255, 255, 255, 255})
		}
		drawQuad(screen, &op, a.x, a.y, size, toRGBA(a.style.Color))

		if a.text != "" {
			ebitenutil.DebugPrintAt(screen, a.text, int(a.x)+8, int(a.y)-16)
			if a.style.Bold {
				// DebugPrintAt has one weight; fake bold with a 1px double strike.
				ebitenutil.DebugPrintAt(screen, a.text, int(a.x)+9, int(a.y)-16)
			}
		}
	}
}

// drawQuad fills a size x size quad centered on (x, y).
func drawQuad(screen *ebiten.Image, op *ebiten.DrawImageOptions, x, y, size float64, c color.RGBA) {
	op.GeoM.Reset()
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size/2, y-size/2)
	op.ColorScale.Reset()
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(whitePixel, op)
}

func toRGBA(c orbit.Color) color.RGBA {
	return color.RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: uint8(c.A * 255),
	}
}
