package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// StatusResponse is the envelope shared by both endpoints.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UploadResponse is the success payload for POST /api/upload.
type UploadResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	FaceShape  string  `json:"face_shape"`
	Confidence float64 `json:"confidence"`
	Image      string  `json:"image"`
}

// clientIP identifies the caller for rate limiting: the first X-Forwarded-For
// hop when present, otherwise the transport peer.
func clientIP(c *fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	return c.IP()
}
