package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagAlpha      = flag.Float64("alpha", 0.8, "Polygon opacity (0.1-1.0)")
	flagEdgeWidth  = flag.Float64("edge-width", 0.1, "Edge line width (0.0-1.0)")
	flagShowVerts  = flag.Bool("show-vertices", false, "Show vertices on startup")
	flagLight      = flag.Bool("lightweight", false, "Lightweight mode (face centroids only)")
	flagOutput     = flag.String("output", "", "Save an image instead of opening the viewer; the extension picks the format, none means PDF")
	flagDPI        = flag.Int("dpi", 150, "Output image DPI (raster formats only)")
	flagElev       = flag.Float64("elev", 20, "Viewpoint elevation angle, degrees")
	flagAzim       = flag.Float64("azim", 30, "Viewpoint azimuth angle, degrees")
	flagPointSize  = flag.Float64("point-size", 0, "Lightweight point size (0 = adaptive)")
	flagMaxVecSize = flag.Float64("max-vector-size", 5, "Max vector file size in MB before falling back to PNG")
	flagSaveConfig = flag.Bool("save-config", false, "Write the merged config to the user config dir and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// InputPath returns the positional mesh file argument, if any.
func InputPath() string {
	return flag.Arg(0)
}

// OutputPath returns the -output target, empty for interactive mode.
func OutputPath() string {
	return *flagOutput
}

// SaveConfigRequested reports whether -save-config was passed.
func SaveConfigRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI overrides for every flag the user actually set,
// so file-configured values survive unset flags.
func applyFlags(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Logging.Level = "debug"
		case "alpha":
			cfg.Render.Alpha = *flagAlpha
		case "edge-width":
			cfg.Render.EdgeWidth = *flagEdgeWidth
		case "show-vertices":
			cfg.Render.ShowVertices = *flagShowVerts
		case "lightweight":
			cfg.Render.Lightweight = *flagLight
		case "dpi":
			cfg.Export.DPI = *flagDPI
		case "elev":
			cfg.Render.Elev = *flagElev
		case "azim":
			cfg.Render.Azim = *flagAzim
		case "point-size":
			cfg.Render.PointSize = *flagPointSize
		case "max-vector-size":
			cfg.Export.MaxVectorSizeMB = *flagMaxVecSize
		}
	})
}
