package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// WithMessage returns a copy carrying a caller-facing message. Used where the
// upload flow surfaces the first specific validation message.
func (e *AppError) WithMessage(msg string) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    msg,
		StatusCode: e.StatusCode,
		Err:        e.Err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred. Please try again later.",
		StatusCode: 500,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 400,
	}

	ErrRateLimited = &AppError{
		Code:       "RATE_LIMITED",
		Message:    "Too many requests, please try again later",
		StatusCode: 429,
	}

	ErrModelUnavailable = &AppError{
		Code:       "MODEL_UNAVAILABLE",
		Message:    "AI model not available. Please try again later.",
		StatusCode: 503,
	}

	// ErrNoFaceDetected carries the diagnostic absence message. The detail of
	// which threshold failed is set by the service via WithMessage.
	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    "No face shape detected. Try a clearer image with better lighting.",
		StatusCode: 500,
	}

	// ErrDecodeFailed is surfaced to clients as a generic failure; the decode
	// detail stays in server-side logs.
	ErrDecodeFailed = &AppError{
		Code:       "DECODE_FAILED",
		Message:    "An error occurred while uploading the file.",
		StatusCode: 500,
	}

	ErrDeliveryFailed = &AppError{
		Code:       "DELIVERY_FAILED",
		Message:    "Unable to send message. Please try again later.",
		StatusCode: 500,
	}
)
