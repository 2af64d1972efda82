// Package export decides how a render is written to disk: which format the
// requested path implies and whether an oversized vector export must fall
// back to raster. The decision is made before any rendering happens.
package export

import (
	"path/filepath"
	"strings"
)

// DefaultVectorExt is appended when the requested path has no extension.
const DefaultVectorExt = ".pdf"

// vectorExts are the resolution-independent output formats subject to the
// size-estimate fallback. Every other extension is raster and uses DPI
// directly.
var vectorExts = map[string]bool{
	".pdf": true,
	".svg": true,
}

// Request describes a static export as the caller asked for it.
type Request struct {
	Path            string  // target path; extension selects the format
	Lightweight     bool    // centroid-only render
	DPI             int     // raster resolution; ignored for vector output
	MaxVectorSizeMB float64 // vector estimates above this fall back to PNG
}

// Decision is the planned export. When Fallback is set the caller should
// surface a warning naming RequestedPath, Path, and EstimatedMB.
type Decision struct {
	Path          string  // final output path
	RequestedPath string  // path as originally requested
	Ext           string  // final extension, lowercase with dot
	Vector        bool    // resolution-independent output
	DPI           int     // 0 for vector output
	Fallback      bool    // vector request overridden to raster
	EstimatedMB   float64 // vector size estimate; 0 for raster requests
}

// Plan resolves the output format for a mesh with the given face and
// centroid counts. Vector size is estimated with an empirical linear
// model (0.001 MB per face, 0.0005 MB per centroid in lightweight mode),
// not measured.
func Plan(faceCount, centroidCount int, req Request) Decision {
	path := req.Path
	if filepath.Ext(filepath.Base(path)) == "" {
		path += DefaultVectorExt
	}
	ext := strings.ToLower(filepath.Ext(path))

	d := Decision{
		Path:          path,
		RequestedPath: req.Path,
		Ext:           ext,
	}

	if !vectorExts[ext] {
		d.DPI = req.DPI
		return d
	}

	estimate := float64(faceCount) * 0.001
	if req.Lightweight {
		estimate = float64(centroidCount) * 0.0005
	}
	d.EstimatedMB = estimate

	if estimate > req.MaxVectorSizeMB {
		d.Path = strings.TrimSuffix(path, ext) + ".png"
		d.Ext = ".png"
		d.Fallback = true
		d.DPI = req.DPI
		return d
	}

	d.Vector = true
	return d
}
