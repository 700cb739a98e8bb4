package pipeline

import (
	"image"
	"log/slog"
	"time"

	"github.com/couchcryptid/tornado-map/internal/domain"
	"github.com/couchcryptid/tornado-map/internal/render"
)

// PNGSink writes rendered maps to one file path, overwriting on each render
// the way an interactive figure repaints in place.
type PNGSink struct {
	path   string
	logger *slog.Logger
}

// NewPNGSink creates a sink writing to path.
func NewPNGSink(path string, logger *slog.Logger) *PNGSink {
	return &PNGSink{path: path, logger: logger}
}

func (s *PNGSink) Save(img image.Image, opts render.Options) error {
	if err := render.SavePNG(s.path, img); err != nil {
		return err
	}
	s.logger.Info("map written",
		"path", s.path,
		"mode", opts.Mode,
		"year", opts.Year,
		"rendered_at", domain.Clock().Now().UTC().Format(time.RFC3339),
	)
	return nil
}
