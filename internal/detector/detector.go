package detector

import (
	"context"

	"github.com/aicuts/faceshape-api/internal/domain"
)

// Detector is the external face-shape detection collaborator. Implementations
// receive the staged image path and a confidence threshold and return every
// candidate detection at or above that threshold.
type Detector interface {
	Detect(ctx context.Context, imagePath string, threshold float64) ([]domain.Detection, error)

	// Available reports whether the underlying model can serve requests.
	Available(ctx context.Context) bool
}
