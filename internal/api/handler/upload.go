package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/aicuts/faceshape-api/internal/domain"
	"github.com/aicuts/faceshape-api/internal/metrics"
	"github.com/aicuts/faceshape-api/internal/ratelimit"
	"github.com/aicuts/faceshape-api/internal/validation"
)

// Classifier runs the face-shape pipeline. Satisfied by
// service.FaceShapeService.
type Classifier interface {
	Classify(ctx context.Context, data []byte) (*domain.FaceShapeResult, error)
	Available(ctx context.Context) bool
}

// UploadHandler handles image classification requests
type UploadHandler struct {
	classifier Classifier
	limiter    *ratelimit.Limiter
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewUploadHandler(classifier Classifier, limiter *ratelimit.Limiter, m *metrics.Metrics, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		classifier: classifier,
		limiter:    limiter,
		metrics:    m,
		logger:     logger,
	}
}

// Upload POST /api/upload - classify the face shape in an uploaded image.
// Validation failures surface their first specific message; everything past
// validation is either a typed error or a generic failure.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.ErrValidationFailed.WithMessage("No file part in the request.")
	}
	if fileHeader.Filename == "" {
		return domain.ErrValidationFailed.WithMessage("No selected file.")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}
	data, err := io.ReadAll(file)
	_ = file.Close()
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	if errs := validation.ValidateUpload(fileHeader.Filename, data); len(errs) > 0 {
		return domain.ErrValidationFailed.WithMessage(errs[0])
	}

	allowed, retryAfter := h.limiter.Check(clientIP(c), ratelimit.KindUpload)
	if !allowed {
		h.metrics.RateLimited.WithLabelValues(string(ratelimit.KindUpload)).Inc()
		return domain.ErrRateLimited.WithMessage(
			fmt.Sprintf("Please wait %d seconds before uploading again.", retryAfter))
	}

	if !h.classifier.Available(c.Context()) {
		return domain.ErrModelUnavailable
	}

	h.metrics.Uploads.Inc()

	result, err := h.classifier.Classify(c.Context(), data)
	if err != nil {
		h.metrics.Detections.WithLabelValues(detectionOutcome(err)).Inc()
		return err
	}
	h.metrics.Detections.WithLabelValues("detected").Inc()

	return c.JSON(UploadResponse{
		Success:    true,
		Message:    "Face shape detected",
		FaceShape:  result.Shape,
		Confidence: result.Confidence,
		Image:      result.ImageDataURI,
	})
}

func detectionOutcome(err error) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.Code == domain.ErrNoFaceDetected.Code {
		return "absent"
	}
	return "error"
}
