package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/aicuts/faceshape-api/internal/detector"
	"github.com/aicuts/faceshape-api/internal/domain"
	"github.com/aicuts/faceshape-api/internal/vision"
)

const (
	// PrimaryThreshold is the detector confidence floor for returnable results.
	PrimaryThreshold = 0.10
	// RelaxedThreshold is used for the diagnostic re-run when the primary pass
	// found nothing. Its results are logged, never returned.
	RelaxedThreshold = 0.05
)

// Annotator renders the winning detection onto the source image. Satisfied by
// vision.Annotate.
type Annotator func(imageData []byte, best domain.Detection) (string, error)

// FaceShapeService runs the classification pipeline: stage the upload, invoke
// the detector, select the best candidate, annotate.
type FaceShapeService struct {
	detector detector.Detector
	annotate Annotator
	logger   *slog.Logger
	stageDir string
}

func NewFaceShapeService(det detector.Detector, logger *slog.Logger) *FaceShapeService {
	return &FaceShapeService{
		detector: det,
		annotate: vision.Annotate,
		logger:   logger,
		stageDir: os.TempDir(),
	}
}

// WithAnnotator overrides the annotation step. For tests.
func (s *FaceShapeService) WithAnnotator(a Annotator) *FaceShapeService {
	s.annotate = a
	return s
}

// WithStageDir overrides where uploads are staged. For tests.
func (s *FaceShapeService) WithStageDir(dir string) *FaceShapeService {
	s.stageDir = dir
	return s
}

// Available reports whether the detector can serve requests.
func (s *FaceShapeService) Available(ctx context.Context) bool {
	return s.detector.Available(ctx)
}

// Classify runs the pipeline on an uploaded image. Absence of a detection is
// returned as ErrNoFaceDetected with a diagnostic message that distinguishes
// "nothing at all" from "nothing above the normal threshold".
func (s *FaceShapeService) Classify(ctx context.Context, data []byte) (*domain.FaceShapeResult, error) {
	imagePath, cleanup, err := s.stage(data)
	if err != nil {
		return nil, domain.ErrInternal.WithError(fmt.Errorf("stage upload: %w", err))
	}
	defer cleanup()

	// Availability is checked before Classify; a failure here is an invocation
	// error and surfaces as a generic 500.
	detections, err := s.detector.Detect(ctx, imagePath, PrimaryThreshold)
	if err != nil {
		return nil, domain.ErrInternal.WithError(fmt.Errorf("primary detection pass: %w", err))
	}

	best, found := vision.SelectBest(detections)
	if !found {
		return nil, s.diagnoseAbsence(ctx, imagePath)
	}

	s.logger.Debug("best detection selected",
		slog.String("shape", best.Shape()),
		slog.Float64("confidence", best.Confidence),
		slog.Int("candidates", len(detections)),
	)

	dataURI, err := s.annotate(data, best)
	if err != nil {
		return nil, err
	}

	return &domain.FaceShapeResult{
		Shape:        best.Shape(),
		Confidence:   best.Confidence,
		ImageDataURI: dataURI,
	}, nil
}

// stage writes the upload to a randomly named temp file. The returned cleanup
// runs on every exit path of the caller.
func (s *FaceShapeService) stage(data []byte) (path string, cleanup func(), err error) {
	path = filepath.Join(s.stageDir, fmt.Sprintf("upload_%s.jpg", uuid.NewString()))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", nil, err
	}

	return path, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove staged upload", slog.String("path", path), slog.Any("error", err))
		}
	}, nil
}

// diagnoseAbsence re-runs the detector at the relaxed threshold. The re-run
// only sharpens the failure message; it never produces a returnable result.
func (s *FaceShapeService) diagnoseAbsence(ctx context.Context, imagePath string) error {
	relaxed, err := s.detector.Detect(ctx, imagePath, RelaxedThreshold)
	if err != nil {
		s.logger.Warn("relaxed detection pass failed", slog.Any("error", err))
		return domain.ErrNoFaceDetected
	}

	if len(relaxed) == 0 {
		return domain.ErrNoFaceDetected
	}

	for _, det := range relaxed {
		s.logger.Debug("low-confidence candidate",
			slog.String("shape", det.Shape()),
			slog.Float64("confidence", det.Confidence),
		)
	}

	return domain.ErrNoFaceDetected.WithMessage(
		"No face shape detected above the confidence threshold. Try a clearer image with better lighting.")
}
