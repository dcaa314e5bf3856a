package mock

import (
	"context"
	"os"

	"github.com/aicuts/faceshape-api/internal/domain"
)

// Detector implements detector.Detector for tests and development. It returns
// a fixed candidate set for any staged image large enough to plausibly hold a
// face, filtered by the requested threshold.
type Detector struct {
	// Detections overrides the default candidate set when non-nil.
	Detections []domain.Detection
	// Unavailable makes Available report false.
	Unavailable bool
}

// New creates a mock detector with the default candidate set.
func New() *Detector {
	return &Detector{}
}

func defaultDetections() []domain.Detection {
	return []domain.Detection{
		{Label: "round", Confidence: 0.87, Box: domain.Box{X1: 120, Y1: 80, X2: 420, Y2: 440}},
		{Label: "oval", Confidence: 0.40, Box: domain.Box{X1: 110, Y1: 70, X2: 430, Y2: 450}},
		{Label: "square", Confidence: 0.20, Box: domain.Box{X1: 130, Y1: 90, X2: 410, Y2: 430}},
	}
}

func (d *Detector) Detect(ctx context.Context, imagePath string, threshold float64) ([]domain.Detection, error) {
	info, err := os.Stat(imagePath)
	if err != nil {
		return nil, err
	}
	if info.Size() < 100 {
		return nil, nil
	}

	candidates := d.Detections
	if candidates == nil {
		candidates = defaultDetections()
	}

	out := make([]domain.Detection, 0, len(candidates))
	for _, det := range candidates {
		if det.Confidence >= threshold {
			out = append(out, det)
		}
	}
	return out, nil
}

func (d *Detector) Available(ctx context.Context) bool {
	return !d.Unavailable
}
