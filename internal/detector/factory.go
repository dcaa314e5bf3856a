package detector

import (
	"fmt"

	"github.com/aicuts/faceshape-api/internal/config"
	"github.com/aicuts/faceshape-api/internal/detector/mock"
	"github.com/aicuts/faceshape-api/internal/detector/yoloserve"
)

// Type defines supported detector backends
type Type string

const (
	// TypeYOLOServe is the HTTP YOLO model server (default)
	TypeYOLOServe Type = "yoloserve"
	// TypeMock is the in-process mock (dev/test)
	TypeMock Type = "mock"
)

// New creates a Detector instance based on configuration.
//
// Environment variables:
//   - DETECTOR_TYPE: "yoloserve" or "mock" (default: "yoloserve")
//   - DETECTOR_URL: model server base URL (default: "http://localhost:8000")
func New(cfg *config.Config) (Detector, error) {
	switch Type(cfg.DetectorType) {
	case TypeYOLOServe, "":
		clientCfg := yoloserve.DefaultConfig()
		if cfg.DetectorURL != "" {
			clientCfg.BaseURL = cfg.DetectorURL
		}
		return yoloserve.New(clientCfg), nil

	case TypeMock:
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown detector type: %s (supported: %s, %s)",
			cfg.DetectorType, TypeYOLOServe, TypeMock)
	}
}
