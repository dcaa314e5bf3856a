package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
)

// UploadSuccessResponse represents a successful classification
type UploadSuccessResponse struct {
	Success    bool    `json:"success" example:"true"`
	Message    string  `json:"message" example:"Face shape detected"`
	FaceShape  string  `json:"face_shape" example:"round"`
	Confidence float64 `json:"confidence" example:"0.87"`
	Image      string  `json:"image" example:"data:image/jpeg;base64,..."`
}

// ContactSuccessResponse represents an accepted contact submission
type ContactSuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Message sent successfully!"`
}

// ContactRequestBody is the JSON body for the contact endpoint
type ContactRequestBody struct {
	Firstname string `json:"firstname" example:"Jane"`
	Lastname  string `json:"lastname" example:"Doe"`
	Subject   string `json:"subject" example:"Question about face shapes"`
}

// FailureResponse represents any rejected or failed request
type FailureResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Invalid file type. Only images are allowed."`
}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "AICuts Face Shape API",
		Version:     "v0.1.0",
		Description: "Classifies the dominant face shape in an uploaded image and relays contact-form submissions",
		Host:        "localhost:3000",
		Path:        "/api",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /api/upload - Classify face shape
		endpoint.New(
			endpoint.POST,
			"/upload",
			endpoint.WithTags("Upload"),
			endpoint.WithSummary("Classify the face shape in an image"),
			endpoint.WithDescription("Accepts a multipart image in the 'file' field, runs face-shape detection and returns the best label, its confidence and the annotated image as a base64 JPEG data URI."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(UploadSuccessResponse{}, "200", "Face shape detected"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(FailureResponse{Message: "Invalid file type. Only images are allowed."}, "400", "Bad Request"),
				response.New(FailureResponse{Message: "Please wait 30 seconds before uploading again."}, "429", "Too Many Requests"),
				response.New(FailureResponse{Message: "AI model not available. Please try again later."}, "503", "Service Unavailable"),
				response.New(FailureResponse{Message: "No face shape detected. Try a clearer image with better lighting."}, "500", "Internal Server Error"),
			}),
		),

		// POST /api/contact - Submit contact form
		endpoint.New(
			endpoint.POST,
			"/contact",
			endpoint.WithTags("Contact"),
			endpoint.WithSummary("Submit the contact form"),
			endpoint.WithDescription("Validates and sanitizes a contact-form submission and relays it by email. Limited to one submission per client per day."),
			endpoint.WithBody(ContactRequestBody{}),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ContactSuccessResponse{}, "200", "Message sent"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(FailureResponse{Message: "Please check your input and try again."}, "400", "Bad Request"),
				response.New(FailureResponse{Message: "You can only submit one contact form per day."}, "429", "Too Many Requests"),
				response.New(FailureResponse{Message: "Unable to send message. Please try again later."}, "500", "Internal Server Error"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
