package yoloserve

// PredictRequest for POST /predict
type PredictRequest struct {
	Image      string  `json:"image"` // base64 encoded image
	Confidence float64 `json:"confidence"`
}

// PredictResponse from POST /predict
type PredictResponse struct {
	Detections []PredictDetection `json:"detections"`
}

// PredictDetection is one candidate box as reported by the model server,
// xyxy pixel coordinates.
type PredictDetection struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	X2         float64 `json:"x2"`
	Y2         float64 `json:"y2"`
}

// HealthResponse from GET /health
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}
