package handler

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/aicuts/faceshape-api/internal/domain"
	"github.com/aicuts/faceshape-api/internal/mailer"
	"github.com/aicuts/faceshape-api/internal/metrics"
	"github.com/aicuts/faceshape-api/internal/ratelimit"
	"github.com/aicuts/faceshape-api/internal/validation"
)

// ContactRequest is the JSON body for POST /api/contact.
type ContactRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Subject   string `json:"subject"`
}

// ContactHandler handles contact-form submissions
type ContactHandler struct {
	mailer  mailer.Mailer
	limiter *ratelimit.Limiter
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewContactHandler(m mailer.Mailer, limiter *ratelimit.Limiter, met *metrics.Metrics, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		mailer:  m,
		limiter: limiter,
		metrics: met,
		logger:  logger,
	}
}

// Contact POST /api/contact - validate a submission and relay it by email.
// Unlike upload, validation rejections stay generic so callers cannot probe
// which rule tripped.
func (h *ContactHandler) Contact(c *fiber.Ctx) error {
	allowed, retryAfter := h.limiter.Check(clientIP(c), ratelimit.KindContact)
	if !allowed {
		h.metrics.RateLimited.WithLabelValues(string(ratelimit.KindContact)).Inc()
		return domain.ErrRateLimited.WithMessage(fmt.Sprintf(
			"You can only submit one contact form per day. Please wait %s before submitting again.",
			humanWait(retryAfter)))
	}

	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrValidationFailed.WithMessage("Invalid request format.")
	}

	errs, firstname, lastname, subject := validation.ValidateContact(req.Firstname, req.Lastname, req.Subject)
	if len(errs) > 0 {
		h.metrics.Contacts.WithLabelValues("rejected").Inc()
		h.logger.Debug("contact submission rejected", slog.Any("errors", errs))
		return domain.ErrValidationFailed.WithMessage("Please check your input and try again.")
	}

	sub := domain.ContactSubmission{
		Firstname: firstname,
		Lastname:  lastname,
		Subject:   subject,
	}

	if err := h.mailer.Send(c.Context(), sub); err != nil {
		h.metrics.Contacts.WithLabelValues("failed").Inc()
		return domain.ErrDeliveryFailed.WithError(err)
	}
	h.metrics.Contacts.WithLabelValues("sent").Inc()

	return c.JSON(StatusResponse{
		Success: true,
		Message: "Message sent successfully!",
	})
}

// humanWait renders a remaining wait as "H hours and M minutes" when at least
// an hour is left, otherwise just minutes.
func humanWait(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	if hours > 0 {
		return fmt.Sprintf("%d hours and %d minutes", hours, minutes)
	}
	return fmt.Sprintf("%d minutes", minutes)
}
