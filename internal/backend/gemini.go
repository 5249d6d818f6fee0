package backend

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/malik80-glitch/accsolver/internal/content"
	"github.com/malik80-glitch/accsolver/internal/models"
)

// Gemini adapts the genai client to the Backend boundary.
type Gemini struct {
	client *genai.Client
}

// NewGemini creates a Gemini backend from an API key.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client}, nil
}

// Generate sends the assembled turns and converts the reply into the
// backend-agnostic response shape.
func (g *Gemini) Generate(ctx context.Context, req Request) (*Response, error) {
	contents := make([]*genai.Content, 0, len(req.Turns))
	for _, turn := range req.Turns {
		parts := make([]*genai.Part, 0, len(turn.Parts))
		for _, part := range turn.Parts {
			switch part.Kind {
			case content.PartInlineBinary:
				parts = append(parts, &genai.Part{
					InlineData: &genai.Blob{MIMEType: part.MediaType, Data: part.Data},
				})
			default:
				parts = append(parts, &genai.Part{Text: part.Text})
			}
		}
		role := "user"
		if turn.Role == models.RoleModel {
			role = "model"
		}
		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}

	config := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}
	if req.Config.Temperature != nil {
		config.Temperature = genai.Ptr(*req.Config.Temperature)
	}
	if req.Config.ReturnImage {
		config.ResponseModalities = []string{"TEXT", "IMAGE"}
		if req.Config.AspectRatio != "" {
			config.ImageConfig = &genai.ImageConfig{AspectRatio: req.Config.AspectRatio}
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	return convertResponse(result), nil
}

func convertResponse(result *genai.GenerateContentResponse) *Response {
	resp := &Response{}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return resp
	}
	for _, part := range result.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.InlineData != nil {
			resp.Parts = append(resp.Parts, Part{
				Kind:      PartInlineData,
				MediaType: part.InlineData.MIMEType,
				Data:      part.InlineData.Data,
			})
			continue
		}
		if part.Text != "" {
			resp.Parts = append(resp.Parts, Part{Kind: PartText, Text: part.Text})
			resp.Text += part.Text
		}
	}
	return resp
}
