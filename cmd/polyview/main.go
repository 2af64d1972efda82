// polyview displays or exports H-div triangulated surface meshes.
//
// Usage:
//
//	polyview [flags] mesh-file
//
// Without -output the mesh opens in an interactive viewer; with -output
// it is rendered straight to an image file.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hmat-c/polyview/internal/config"
	"github.com/hmat-c/polyview/internal/export"
	"github.com/hmat-c/polyview/internal/logger"
	"github.com/hmat-c/polyview/internal/render"
	"github.com/hmat-c/polyview/internal/viewer"
	"github.com/hmat-c/polyview/pkg/formats"
	"github.com/hmat-c/polyview/pkg/mesh"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.SaveConfigRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return
	}

	if err := run(cfg); err != nil {
		logger.Error("polyview failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	path := config.InputPath()
	if path == "" {
		return errors.New("no mesh file given (usage: polyview [flags] mesh-file)")
	}

	m, err := formats.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	logStats(path, m)

	params := render.Params{
		Alpha:        cfg.Render.Alpha,
		EdgeWidth:    cfg.Render.EdgeWidth,
		Elev:         cfg.Render.Elev,
		Azim:         cfg.Render.Azim,
		PointSize:    cfg.Render.PointSize,
		Title:        "3D Polygon: " + filepath.Base(path),
		ShowVertices: cfg.Render.ShowVertices,
		Lightweight:  cfg.Render.Lightweight,
	}
	for _, w := range params.Clamp() {
		logger.Warn(w)
	}

	if out := config.OutputPath(); out != "" {
		return export2D(m, params, cfg, out)
	}

	scene := render.NewScene(m, params)
	return viewer.Run(scene, viewer.WindowConfig{
		Title:  params.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
}

// export2D plans the output format, renders the scene once, and writes it.
func export2D(m *mesh.Mesh, params render.Params, cfg *config.Config, out string) error {
	d := export.Plan(m.FaceCount(), m.FaceCount(), export.Request{
		Path:            out,
		Lightweight:     params.Lightweight,
		DPI:             cfg.Export.DPI,
		MaxVectorSizeMB: cfg.Export.MaxVectorSizeMB,
	})
	if d.Fallback {
		logger.Warn("estimated vector size exceeds limit, falling back to PNG",
			zap.String("requested", d.RequestedPath),
			zap.String("output", d.Path),
			zap.Float64("estimated_mb", d.EstimatedMB),
			zap.Float64("limit_mb", cfg.Export.MaxVectorSizeMB),
		)
	}

	scene := render.NewScene(m, params)
	if err := render.Save(scene, d); err != nil {
		return fmt.Errorf("saving %s: %w", d.Path, err)
	}

	if d.Vector {
		logger.Info("saved vector image", zap.String("path", d.Path))
	} else {
		logger.Info("saved raster image", zap.String("path", d.Path), zap.Int("dpi", d.DPI))
	}
	return nil
}

// logStats reports the mesh summary the tool has always printed on load.
func logStats(path string, m *mesh.Mesh) {
	min, max := m.Bounds()
	c := m.Centroid()
	logger.Info("mesh loaded",
		zap.String("file", path),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("faces", m.FaceCount()),
	)
	logger.Info("mesh geometry",
		zap.String("x_range", fmt.Sprintf("[%.4g, %.4g]", min[0], max[0])),
		zap.String("y_range", fmt.Sprintf("[%.4g, %.4g]", min[1], max[1])),
		zap.String("z_range", fmt.Sprintf("[%.4g, %.4g]", min[2], max[2])),
		zap.Float64("total_area", m.TotalArea()),
		zap.String("centroid", fmt.Sprintf("(%.4g, %.4g, %.4g)", c[0], c[1], c[2])),
	)
}
