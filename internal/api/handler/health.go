package handler

import (
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	classifier Classifier
}

func NewHealthHandler(classifier Classifier) *HealthHandler {
	return &HealthHandler{classifier: classifier}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: "0.1.0",
	})
}

// Ready reports degraded until the detection model answers its health probe.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if !h.classifier.Available(c.Context()) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status: "degraded",
		})
	}
	return c.JSON(HealthResponse{
		Status: "ready",
	})
}
