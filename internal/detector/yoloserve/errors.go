package yoloserve

import "errors"

var (
	ErrUnavailable     = errors.New("yolo model server unavailable")
	ErrInvalidResponse = errors.New("invalid response from yolo model server")
)
