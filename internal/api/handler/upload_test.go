package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicuts/faceshape-api/internal/api/middleware"
	"github.com/aicuts/faceshape-api/internal/detector/mock"
	"github.com/aicuts/faceshape-api/internal/domain"
	"github.com/aicuts/faceshape-api/internal/metrics"
	"github.com/aicuts/faceshape-api/internal/ratelimit"
	"github.com/aicuts/faceshape-api/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

// newUploadApp wires a fiber app with the real service pipeline over a mock
// detector and a clock-driven limiter, mirroring the router setup.
func newUploadApp(t *testing.T, det *mock.Detector, now func() time.Time) (*fiber.App, *ratelimit.Limiter) {
	t.Helper()

	logger := testLogger()
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		BodyLimit:    8 * 1024 * 1024,
	})

	limiter := ratelimit.NewWithClock(now)
	svc := service.NewFaceShapeService(det, logger).WithStageDir(t.TempDir())
	h := NewUploadHandler(svc, limiter, testMetrics(), logger)
	app.Post("/api/upload", h.Upload)

	return app, limiter
}

// testJPEG produces real JPEG bytes that pass content sniffing and decode.
func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 180, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func multipartBody(t *testing.T, filename string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func uploadRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()
	body, contentType := multipartBody(t, filename, data)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	return req
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestUpload_Success(t *testing.T) {
	app, _ := newUploadApp(t, mock.New(), time.Now)

	resp, err := app.Test(uploadRequest(t, "face.jpg", testJPEG(t)), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result UploadResponse
	decodeJSON(t, resp, &result)

	assert.True(t, result.Success)
	assert.Equal(t, "round", result.FaceShape)
	assert.InDelta(t, 0.87, result.Confidence, 1e-9)
	assert.True(t, strings.HasPrefix(result.Image, "data:image/jpeg;base64,"))
}

func TestUpload_ValidationFailures(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		data        []byte
		wantMessage string
	}{
		{
			name:        "bad extension",
			filename:    "face.exe",
			data:        nil, // replaced with a real JPEG below
			wantMessage: "Invalid file type. Only images are allowed.",
		},
		{
			name:        "spoofed content",
			filename:    "face.jpg",
			data:        []byte("#!/bin/sh\necho pwned\n"),
			wantMessage: "Invalid file format detected.",
		},
		{
			name:        "empty file",
			filename:    "face.jpg",
			data:        []byte{},
			wantMessage: "Invalid file format detected.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newUploadApp(t, mock.New(), time.Now)

			data := tt.data
			if tt.name == "bad extension" {
				data = testJPEG(t)
			}

			resp, err := app.Test(uploadRequest(t, tt.filename, data), -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var result StatusResponse
			decodeJSON(t, resp, &result)
			assert.False(t, result.Success)
			assert.Equal(t, tt.wantMessage, result.Message)
		})
	}
}

func TestUpload_MissingFilePart(t *testing.T) {
	app, _ := newUploadApp(t, mock.New(), time.Now)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("other", "value"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var result StatusResponse
	decodeJSON(t, resp, &result)
	assert.Equal(t, "No file part in the request.", result.Message)
}

func TestUpload_RateLimited(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	app, _ := newUploadApp(t, mock.New(), func() time.Time { return clock })

	resp, err := app.Test(uploadRequest(t, "face.jpg", testJPEG(t)), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Second upload from the same client inside the cooldown.
	resp, err = app.Test(uploadRequest(t, "face.jpg", testJPEG(t)), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var result StatusResponse
	decodeJSON(t, resp, &result)
	assert.False(t, result.Success)

	m := regexp.MustCompile(`wait (\d+) seconds`).FindStringSubmatch(result.Message)
	require.NotNil(t, m, "message should name the wait: %q", result.Message)
	secs, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	assert.Greater(t, secs, 0)
	assert.LessOrEqual(t, secs, 30)
}

func TestUpload_ModelUnavailable(t *testing.T) {
	app, _ := newUploadApp(t, &mock.Detector{Unavailable: true}, time.Now)

	resp, err := app.Test(uploadRequest(t, "face.jpg", testJPEG(t)), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var result StatusResponse
	decodeJSON(t, resp, &result)
	assert.Equal(t, "AI model not available. Please try again later.", result.Message)
}

func TestUpload_NoFaceDetected(t *testing.T) {
	app, _ := newUploadApp(t, &mock.Detector{Detections: []domain.Detection{}}, time.Now)

	resp, err := app.Test(uploadRequest(t, "face.jpg", testJPEG(t)), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var result StatusResponse
	decodeJSON(t, resp, &result)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "No face shape detected")
}

func TestDetectionOutcome(t *testing.T) {
	assert.Equal(t, "absent", detectionOutcome(domain.ErrNoFaceDetected))
	assert.Equal(t, "error", detectionOutcome(errors.New("boom")))
}
