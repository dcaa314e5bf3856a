package yoloserve

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/aicuts/faceshape-api/internal/domain"
)

// healthTimeout bounds the availability probe so a hung model server does not
// stall request handling.
const healthTimeout = 2 * time.Second

// Detector implements detector.Detector against a YOLO model server.
type Detector struct {
	client *Client
}

// New creates a new model-server backed detector
func New(config Config) *Detector {
	return &Detector{
		client: NewClient(config),
	}
}

// Detect stages the image to the model server and maps its boxes to domain
// detections. The threshold is forwarded as-is; filtering happens server-side.
func (d *Detector) Detect(ctx context.Context, imagePath string, threshold float64) ([]domain.Detection, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read staged image: %w", err)
	}

	resp, err := d.client.Predict(ctx, base64.StdEncoding.EncodeToString(data), threshold)
	if err != nil {
		return nil, fmt.Errorf("detect face shapes: %w", err)
	}

	detections := make([]domain.Detection, 0, len(resp.Detections))
	for _, det := range resp.Detections {
		detections = append(detections, domain.Detection{
			Label:      det.Name,
			Confidence: det.Confidence,
			Box: domain.Box{
				X1: int(det.X1),
				Y1: int(det.Y1),
				X2: int(det.X2),
				Y2: int(det.Y2),
			},
		})
	}

	return detections, nil
}

// Available probes the model server health endpoint.
func (d *Detector) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	resp, err := d.client.Health(ctx)
	if err != nil {
		return false
	}
	return resp.ModelLoaded
}
