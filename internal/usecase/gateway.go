package usecase

import "context"

type SchemaType string

const (
	SchemaString  SchemaType = "string"
	SchemaNumber  SchemaType = "number"
	SchemaInteger SchemaType = "integer"
	SchemaBoolean SchemaType = "boolean"
	SchemaArray   SchemaType = "array"
	SchemaObject  SchemaType = "object"
)

// Schema declares the JSON shape a text response must follow.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

type TextRequest struct {
	Model  string
	Prompt string
	// Schema, when set, asks the gateway for JSON matching it.
	Schema *Schema
}

type ImageRequest struct {
	Model  string
	Prompt string
}

type ImageResponse struct {
	Candidates []Candidate
}

type Candidate struct {
	Parts []Part
}

type Part struct {
	Text       string
	InlineData *InlineData
}

// InlineData is an embedded binary payload, base64 encoded.
type InlineData struct {
	MIMEType string
	Data     string
}

// AIGateway is the remote generative model.
type AIGateway interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
}
