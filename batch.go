package skyisle

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// batchKey groups triangles that can be submitted in a single draw call.
type batchKey struct {
	src   *ebiten.Image
	blend BlendMode
}

// whiteImage backs untextured triangles. Triangles sample its center texel
// so linear filtering never reaches the transparent border.
var whiteImage *ebiten.Image

const whiteTexel = 1.5

func ensureWhiteImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(ColorWhite.RGBA())
	}
	return whiteImage
}

// resolveTexture returns the GPU image for ref: the named library texture
// first, then the node's own image. nil means plain color.
func (s *Scene) resolveTexture(ref texRef) *ebiten.Image {
	if ref.name != "" {
		if img := s.textures.Ebiten(ref.name); img != nil {
			return img
		}
	}
	if ref.img == nil {
		return nil
	}
	if s.frame.images == nil {
		s.frame.images = make(map[image.Image]*ebiten.Image)
	}
	img, ok := s.frame.images[ref.img]
	if !ok {
		img = ebiten.NewImageFromImage(ref.img)
		s.frame.images[ref.img] = img
	}
	return img
}

// submitBatches walks the sorted triangles and coalesces consecutive runs
// with the same source image and blend mode into one DrawTriangles32 call.
func (s *Scene) submitBatches(target *ebiten.Image) {
	f := &s.frame
	f.drawCalls = 0
	f.verts = f.verts[:0]
	f.inds = f.inds[:0]
	if len(f.tris) == 0 {
		return
	}

	var current batchKey
	inRun := false
	for i := range f.tris {
		t := &f.tris[i]
		src := s.resolveTexture(t.tex)
		textured := src != nil
		if !textured {
			src = ensureWhiteImage()
		}
		key := batchKey{src: src, blend: t.blend}
		if inRun && key != current {
			s.flushBatch(target, current)
		}
		current = key
		inRun = true
		appendTriangle(f, t, src, textured)
	}
	s.flushBatch(target, current)
}

// appendTriangle appends 3 premultiplied vertices for t.
func appendTriangle(f *frameBuffers, t *drawTri, src *ebiten.Image, textured bool) {
	a := float32(t.col.A)
	cr := float32(t.col.R) * a
	cg := float32(t.col.G) * a
	cb := float32(t.col.B) * a

	var tw, th float32
	if textured {
		b := src.Bounds()
		tw, th = float32(b.Dx()), float32(b.Dy())
	}

	base := uint32(len(f.verts))
	for k := 0; k < 3; k++ {
		sx, sy := float32(whiteTexel), float32(whiteTexel)
		if textured {
			sx = float32(t.uv[k].U) * tw
			sy = float32(t.uv[k].V) * th
		}
		f.verts = append(f.verts, ebiten.Vertex{
			DstX:   float32(t.pts[k].X),
			DstY:   float32(t.pts[k].Y),
			SrcX:   sx,
			SrcY:   sy,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: a,
		})
	}
	f.inds = append(f.inds, base, base+1, base+2)
}

// flushBatch submits accumulated vertices as a single DrawTriangles32 call.
func (s *Scene) flushBatch(target *ebiten.Image, key batchKey) {
	f := &s.frame
	if len(f.verts) == 0 {
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = key.blend.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.Filter = ebiten.FilterLinear
	if key.src != whiteImage {
		triOp.Address = ebiten.AddressRepeat
	}
	target.DrawTriangles32(f.verts, f.inds, key.src, &triOp)
	f.drawCalls++

	f.verts = f.verts[:0]
	f.inds = f.inds[:0]
}

// --- Merge sort ---

// triLessOrEqual returns true if a should be drawn before or with b: far
// triangles first, emission order breaking ties.
func triLessOrEqual(a, b *drawTri) bool {
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.order <= b.order
}

// sortTris sorts f.tris back to front in place using f.sortBuf as scratch
// space. Bottom-up merge sort: zero allocations after the sort buffer
// reaches its high-water mark.
func (f *frameBuffers) sortTris() {
	n := len(f.tris)
	if n <= 1 {
		return
	}
	if cap(f.sortBuf) < n {
		f.sortBuf = make([]drawTri, n)
	}
	f.sortBuf = f.sortBuf[:n]

	a := f.tris
	b := f.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(f.tris, f.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []drawTri, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if triLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
