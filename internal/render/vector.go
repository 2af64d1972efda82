package render

import (
	"fmt"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/go-pdf/fpdf"
)

// Vector canvases use the same 10x8 aspect as raster output.
const (
	svgWidth  = 1000
	svgHeight = 800
	pdfWidth  = 720 // points, 10in
	pdfHeight = 576 // points, 8in
)

// RenderSVG draws the scene to an SVG file.
func RenderSVG(s *Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()

	canvas := svg.New(f)
	canvas.Start(svgWidth, svgHeight)
	canvas.Rect(0, 0, svgWidth, svgHeight, "fill:white")

	pr := NewProjector(s.Mesh, s.Params.Elev, s.Params.Azim)
	cx, cy := float64(svgWidth)/2, float64(svgHeight)/2
	scale := math.Min(svgWidth, svgHeight) / 2 * 0.8
	toCanvas := func(x, y float64) (int, int) {
		return int(math.Round(cx + x*scale)), int(math.Round(cy - y*scale))
	}

	if s.Params.Lightweight {
		r := int(math.Max(1, math.Round(pointRadius(s.PointSize))))
		for _, c := range s.Centroids {
			x, y, _ := pr.Project(c)
			px, py := toCanvas(x, y)
			canvas.Circle(px, py, r, "fill:blue;fill-opacity:0.6")
		}
	} else {
		stroke := "stroke:none"
		if s.Params.EdgeWidth > 0 {
			stroke = fmt.Sprintf("stroke:black;stroke-opacity:%.3f;stroke-width:%.2f",
				s.Params.Alpha, s.Params.EdgeWidth)
		}
		for _, pf := range projectFaces(s, pr) {
			xs := make([]int, 3)
			ys := make([]int, 3)
			for c := 0; c < 3; c++ {
				xs[c], ys[c] = toCanvas(pf.xs[c], pf.ys[c])
			}
			g := int(math.Round(s.Shades[pf.index] * 255))
			style := fmt.Sprintf("fill:rgb(0,%d,%d);fill-opacity:%.3f;%s",
				g, g, s.Params.Alpha, stroke)
			canvas.Polygon(xs, ys, style)
		}

		if s.Params.ShowVertices {
			for _, v := range s.Mesh.Vertices {
				x, y, _ := pr.Project(v)
				px, py := toCanvas(x, y)
				canvas.Circle(px, py, 1, "fill:red;fill-opacity:0.5")
			}
		}
	}

	if title := s.DisplayTitle(); title != "" {
		canvas.Text(svgWidth/2, 24, title, "text-anchor:middle;font-size:16px;fill:black")
	}

	canvas.End()
	return f.Close()
}

// RenderPDF draws the scene to a PDF file.
func RenderPDF(s *Scene, path string) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: pdfWidth, Ht: pdfHeight},
	})
	pdf.AddPage()

	pr := NewProjector(s.Mesh, s.Params.Elev, s.Params.Azim)
	cx, cy := float64(pdfWidth)/2, float64(pdfHeight)/2
	scale := math.Min(pdfWidth, pdfHeight) / 2 * 0.8
	toCanvas := func(x, y float64) (float64, float64) {
		return cx + x*scale, cy - y*scale
	}

	if s.Params.Lightweight {
		pdf.SetAlpha(0.6, "Normal")
		pdf.SetFillColor(0, 0, 255)
		r := pointRadius(s.PointSize)
		for _, c := range s.Centroids {
			x, y, _ := pr.Project(c)
			px, py := toCanvas(x, y)
			pdf.Circle(px, py, r, "F")
		}
	} else {
		pdf.SetAlpha(s.Params.Alpha, "Normal")
		style := "F"
		if s.Params.EdgeWidth > 0 {
			pdf.SetDrawColor(0, 0, 0)
			pdf.SetLineWidth(s.Params.EdgeWidth)
			style = "FD"
		}
		for _, pf := range projectFaces(s, pr) {
			pts := make([]fpdf.PointType, 3)
			for c := 0; c < 3; c++ {
				pts[c].X, pts[c].Y = toCanvas(pf.xs[c], pf.ys[c])
			}
			g := int(math.Round(s.Shades[pf.index] * 255))
			pdf.SetFillColor(0, g, g)
			pdf.Polygon(pts, style)
		}

		if s.Params.ShowVertices {
			pdf.SetAlpha(0.5, "Normal")
			pdf.SetFillColor(255, 0, 0)
			r := pointRadius(1)
			for _, v := range s.Mesh.Vertices {
				x, y, _ := pr.Project(v)
				px, py := toCanvas(x, y)
				pdf.Circle(px, py, r, "F")
			}
		}
	}

	if title := s.DisplayTitle(); title != "" {
		pdf.SetAlpha(1, "Normal")
		pdf.SetFont("Helvetica", "", 14)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(cx-pdf.GetStringWidth(title)/2, 24, title)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}
