package render

import (
	"fmt"

	"github.com/hmat-c/polyview/internal/export"
)

// Save writes the scene according to a planned export decision. The
// decision selects the backend; Save never re-plans.
func Save(s *Scene, d export.Decision) error {
	switch d.Ext {
	case ".pdf":
		return RenderPDF(s, d.Path)
	case ".svg":
		return RenderSVG(s, d.Path)
	case ".png":
		return RenderPNG(s, d.Path, d.DPI)
	default:
		return fmt.Errorf("unsupported output format %q", d.Ext)
	}
}
