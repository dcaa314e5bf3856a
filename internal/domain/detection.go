package domain

import "strings"

// Box is an axis-aligned bounding box in pixel coordinates, X1 < X2 and Y1 < Y2.
type Box struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns the horizontal extent of the box.
func (b Box) Width() int {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box.
func (b Box) Height() int {
	return b.Y2 - b.Y1
}

// Center returns the box center point.
func (b Box) Center() (x, y int) {
	return (b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2
}

// Detection is one candidate face-shape region proposed by the detector.
// Immutable once produced by a detector call.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        Box     `json:"box"`
}

// Shape returns the normalized (lowercased) class label.
func (d Detection) Shape() string {
	return strings.ToLower(d.Label)
}

// FaceShapeResult is the outcome of a successful classification: the winning
// label, its confidence and the annotated image encoded as a JPEG data URI.
type FaceShapeResult struct {
	Shape        string
	Confidence   float64
	ImageDataURI string
}
