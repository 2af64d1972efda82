// Package config handles polyview configuration loading and management.
package config

// Config holds all visualizer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Export  ExportConfig  `yaml:"export"`
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds the render parameters shared by the interactive
// viewer and static export.
type RenderConfig struct {
	Alpha        float64 `yaml:"alpha"`      // face opacity [0.1, 1.0]
	EdgeWidth    float64 `yaml:"edge_width"` // edge line width [0.0, 1.0]
	Elev         float64 `yaml:"elev"`       // viewpoint elevation, degrees
	Azim         float64 `yaml:"azim"`       // viewpoint azimuth, degrees
	ShowVertices bool    `yaml:"show_vertices"`
	Lightweight  bool    `yaml:"lightweight"`
	PointSize    float64 `yaml:"point_size"` // 0 = adaptive
}

// ExportConfig holds static image export settings.
type ExportConfig struct {
	DPI             int     `yaml:"dpi"`
	MaxVectorSizeMB float64 `yaml:"max_vector_size_mb"`
}

// WindowConfig holds interactive viewer window settings.
type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the standard defaults (matching the
// tool's historical CLI defaults).
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Alpha:     0.8,
			EdgeWidth: 0.1,
			Elev:      20,
			Azim:      30,
			PointSize: 0,
		},
		Export: ExportConfig{
			DPI:             150,
			MaxVectorSizeMB: 5,
		},
		Window: WindowConfig{
			Width:  1120,
			Height: 800,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
