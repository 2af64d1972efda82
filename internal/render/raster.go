package render

import (
	"fmt"
	"image/png"
	"math"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Raster output mimics a 10in x 8in figure at the requested DPI.
const (
	figureWidthIn  = 10
	figureHeightIn = 8
)

// pointRadius converts a scatter size (area in points squared) to a radius
// in points.
func pointRadius(size float64) float64 {
	return math.Sqrt(size / math.Pi)
}

// RenderPNG draws the scene to a PNG file at the given DPI.
func RenderPNG(s *Scene, path string, dpi int) error {
	w := figureWidthIn * dpi
	h := figureHeightIn * dpi
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	pr := NewProjector(s.Mesh, s.Params.Elev, s.Params.Azim)
	cx, cy := float64(w)/2, float64(h)/2
	scale := math.Min(float64(w), float64(h)) / 2 * 0.8
	toCanvas := func(x, y float64) (float64, float64) {
		return cx + x*scale, cy - y*scale
	}
	ptToPx := float64(dpi) / 72

	if s.Params.Lightweight {
		r := pointRadius(s.PointSize) * ptToPx
		dc.SetRGBA(0, 0, 1, 0.6)
		for _, c := range s.Centroids {
			x, y, _ := pr.Project(c)
			px, py := toCanvas(x, y)
			dc.DrawCircle(px, py, r)
			dc.Fill()
		}
	} else {
		alpha := s.Params.Alpha
		edgePx := s.Params.EdgeWidth * ptToPx
		for _, pf := range projectFaces(s, pr) {
			for c := 0; c < 3; c++ {
				px, py := toCanvas(pf.xs[c], pf.ys[c])
				if c == 0 {
					dc.MoveTo(px, py)
				} else {
					dc.LineTo(px, py)
				}
			}
			dc.ClosePath()
			shade := s.Shades[pf.index]
			dc.SetRGBA(0, shade, shade, alpha)
			if edgePx > 0 {
				dc.FillPreserve()
				dc.SetRGBA(0, 0, 0, alpha)
				dc.SetLineWidth(edgePx)
				dc.Stroke()
			} else {
				dc.Fill()
			}
		}

		if s.Params.ShowVertices {
			r := pointRadius(1) * ptToPx
			dc.SetRGBA(1, 0, 0, 0.5)
			for _, v := range s.Mesh.Vertices {
				x, y, _ := pr.Project(v)
				px, py := toCanvas(x, y)
				dc.DrawCircle(px, py, r)
				dc.Fill()
			}
		}
	}

	if title := s.DisplayTitle(); title != "" {
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(title, cx, 20, 0.5, 0.5)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, dc.Image()); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return f.Close()
}
