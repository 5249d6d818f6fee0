package backend

import (
	"context"

	"github.com/malik80-glitch/accsolver/internal/content"
)

// GenerationConfig tunes one request. ReturnImage asks the model to answer
// with interleaved image and text parts at the given aspect ratio.
type GenerationConfig struct {
	Temperature *float32
	ReturnImage bool
	AspectRatio string
}

// Request is the backend-agnostic request shape: ordered turns plus an
// optional system instruction and generation config.
type Request struct {
	Model             string
	Turns             []content.Turn
	SystemInstruction string
	Config            GenerationConfig
}

// PartKind tags a response Part.
type PartKind int

const (
	PartText PartKind = iota
	PartInlineData
)

// Part is one typed unit of a model response.
type Part struct {
	Kind      PartKind
	Text      string
	MediaType string
	Data      []byte
}

// Response carries the model's reply: the text parts flattened in order,
// plus the ordered raw parts for callers that need inline data.
type Response struct {
	Text  string
	Parts []Part
}

// Backend is the inference collaborator boundary. Implementations own
// transport, authentication, and timeouts.
type Backend interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}
