package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicuts/faceshape-api/internal/api/middleware"
	"github.com/aicuts/faceshape-api/internal/domain"
	"github.com/aicuts/faceshape-api/internal/mailer"
	"github.com/aicuts/faceshape-api/internal/ratelimit"
)

// recordingMailer captures the last submission and optionally fails.
type recordingMailer struct {
	last *domain.ContactSubmission
	err  error
}

func (m *recordingMailer) Send(_ context.Context, sub domain.ContactSubmission) error {
	m.last = &sub
	return m.err
}

func newContactApp(t *testing.T, m mailer.Mailer, now func() time.Time) *fiber.App {
	t.Helper()

	logger := testLogger()
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
	})

	h := NewContactHandler(m, ratelimit.NewWithClock(now), testMetrics(), logger)
	app.Post("/api/contact", h.Contact)
	return app
}

func contactRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPost, "/api/contact", &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestContact_Success(t *testing.T) {
	m := &recordingMailer{}
	app := newContactApp(t, m, time.Now)

	resp, err := app.Test(contactRequest(t, ContactRequest{
		Firstname: "Jane",
		Lastname:  "Doe",
		Subject:   "Booking a consultation",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result StatusResponse
	decodeJSON(t, resp, &result)
	assert.True(t, result.Success)
	assert.Equal(t, "Message sent successfully!", result.Message)

	require.NotNil(t, m.last)
	assert.Equal(t, "Jane", m.last.Firstname)
	assert.Equal(t, "Doe", m.last.Lastname)
}

func TestContact_SanitizesBeforeRelay(t *testing.T) {
	m := &recordingMailer{}
	app := newContactApp(t, m, time.Now)

	resp, err := app.Test(contactRequest(t, ContactRequest{
		Firstname: "  Jane  ",
		Lastname:  "Doe",
		Subject:   "Question about appointments",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, m.last)
	assert.Equal(t, "Jane", m.last.Firstname)
}

func TestContact_ValidationRejected(t *testing.T) {
	tests := []struct {
		name string
		req  ContactRequest
	}{
		{
			name: "firstname too short",
			req:  ContactRequest{Firstname: "J", Lastname: "Doe", Subject: "A long enough subject"},
		},
		{
			name: "subject too short",
			req:  ContactRequest{Firstname: "Jane", Lastname: "Doe", Subject: "short"},
		},
		{
			name: "suspicious subject",
			req:  ContactRequest{Firstname: "Jane", Lastname: "Doe", Subject: "hello <script>alert(1)</script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &recordingMailer{}
			app := newContactApp(t, m, time.Now)

			resp, err := app.Test(contactRequest(t, tt.req), -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var result StatusResponse
			decodeJSON(t, resp, &result)
			assert.False(t, result.Success)
			// Rejections never leak which rule tripped.
			assert.Equal(t, "Please check your input and try again.", result.Message)
			assert.Nil(t, m.last)
		})
	}
}

func TestContact_MalformedBody(t *testing.T) {
	app := newContactApp(t, &recordingMailer{}, time.Now)

	resp, err := app.Test(contactRequest(t, "{not json"), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var result StatusResponse
	decodeJSON(t, resp, &result)
	assert.Equal(t, "Invalid request format.", result.Message)
}

func TestContact_RateLimited(t *testing.T) {
	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	app := newContactApp(t, &recordingMailer{}, now)

	resp, err := app.Test(contactRequest(t, ContactRequest{
		Firstname: "Jane",
		Lastname:  "Doe",
		Subject:   "Booking a consultation",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	clock = clock.Add(30 * time.Minute)

	// Even an invalid body is charged against the daily limit first.
	resp, err = app.Test(contactRequest(t, "{not json"), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var result StatusResponse
	decodeJSON(t, resp, &result)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "one contact form per day")
	assert.Contains(t, result.Message, "23 hours and 30 minutes")
}

func TestContact_DeliveryFailure(t *testing.T) {
	m := &recordingMailer{err: errors.New("smtp: connection refused")}
	app := newContactApp(t, m, time.Now)

	resp, err := app.Test(contactRequest(t, ContactRequest{
		Firstname: "Jane",
		Lastname:  "Doe",
		Subject:   "Booking a consultation",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var result StatusResponse
	decodeJSON(t, resp, &result)
	assert.False(t, result.Success)
	assert.Equal(t, "Unable to send message. Please try again later.", result.Message)
}

func TestHumanWait(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 86400, want: "24 hours and 0 minutes"},
		{seconds: 84600, want: "23 hours and 30 minutes"},
		{seconds: 3599, want: "59 minutes"},
		{seconds: 120, want: "2 minutes"},
		{seconds: 59, want: "0 minutes"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanWait(tt.seconds))
	}
}
