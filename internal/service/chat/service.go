package chat

import (
	"context"
	"encoding/base64"
	"log"
	"time"

	"github.com/malik80-glitch/accsolver/internal/backend"
	"github.com/malik80-glitch/accsolver/internal/content"
	"github.com/malik80-glitch/accsolver/internal/intent"
	"github.com/malik80-glitch/accsolver/internal/models"
	"github.com/malik80-glitch/accsolver/internal/session"
)

// Canned replies. Any backend failure still appends a model message so the
// loading indicator always clears and the conversation advances.
const (
	failureText       = "Sorry, something went wrong while working on that. Please try asking again."
	emptyResponseText = "I couldn't come up with an answer for that one. Could you rephrase the question?"
	imageFallbackText = "Here is the visual representation you requested."
)

const (
	baseInstruction = "You are AccSolver, a patient accounting homework assistant. " +
		"Explain your reasoning step by step and show the workings behind every calculation."
	examNoteInstruction = baseInstruction +
		" The student is preparing exam notes: answer with concise, memorable bullet points suitable for revision."
	explainConceptInstruction = baseInstruction +
		" The student wants the underlying concept explained from first principles before any numbers."
)

// TopicSuggester proposes a short title for the active conversation.
type TopicSuggester interface {
	SuggestTopic(ctx context.Context, messages []models.Message) (string, error)
}

// Config selects the models driving the conversation.
type Config struct {
	ChatModel   string
	ImageModel  string
	AspectRatio string
	Temperature float32
}

// Service drives one user turn end to end: intent routing, content assembly,
// the backend call, and the resulting session mutations.
type Service struct {
	store   *session.Store
	backend backend.Backend
	topics  TopicSuggester
	cfg     Config
}

// NewService wires the orchestrator. topics may be nil to disable topic
// suggestions.
func NewService(store *session.Store, inference backend.Backend, topics TopicSuggester, cfg Config) *Service {
	if cfg.AspectRatio == "" {
		cfg.AspectRatio = "16:9"
	}
	return &Service{store: store, backend: inference, topics: topics, cfg: cfg}
}

// Send appends the user's turn, dispatches it to the backend, and appends
// the model's reply, which is also returned. Failures degrade to canned
// replies; Send never returns an error to the caller.
func (s *Service) Send(ctx context.Context, text string, att *models.Attachment) models.Message {
	kind, prompt := intent.Route(text)

	// History is captured before the append: the assembler adds the current
	// turn itself.
	history := s.store.Messages()
	s.store.Append(models.Message{
		ID:         session.NewMessageID(),
		Role:       models.RoleUser,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
		Attachment: att,
	})

	var reply models.Message
	if kind == intent.GenerateImage {
		reply = s.generateImage(ctx, prompt)
	} else {
		reply = s.generateText(ctx, kind, history, text, att)
	}
	s.store.Append(reply)

	s.maybeSuggestTopic(ctx)
	return reply
}

func (s *Service) generateText(ctx context.Context, kind intent.Intent, history []models.Message, text string, att *models.Attachment) models.Message {
	temp := s.cfg.Temperature
	resp, err := s.backend.Generate(ctx, backend.Request{
		Model:             s.cfg.ChatModel,
		Turns:             content.Assemble(history, text, att),
		SystemInstruction: instructionFor(kind),
		Config:            backend.GenerationConfig{Temperature: &temp},
	})
	if err != nil {
		log.Printf("backend request failed: %v", err)
		return modelMessage(failureText, "")
	}
	if resp.Text == "" {
		return modelMessage(emptyResponseText, "")
	}
	return modelMessage(resp.Text, "")
}

// generateImage bypasses multi-turn assembly: the request is a single turn
// carrying only the prompt.
func (s *Service) generateImage(ctx context.Context, prompt string) models.Message {
	resp, err := s.backend.Generate(ctx, backend.Request{
		Model: s.cfg.ImageModel,
		Turns: []content.Turn{{
			Role:  models.RoleUser,
			Parts: []content.ContentPart{content.TextPart(prompt)},
		}},
		Config: backend.GenerationConfig{
			ReturnImage: true,
			AspectRatio: s.cfg.AspectRatio,
		},
	})
	if err != nil {
		log.Printf("image request failed: %v", err)
		return modelMessage(failureText, "")
	}

	text, image := collectImageResult(resp)
	if text == "" {
		text = imageFallbackText
	}
	return modelMessage(text, image)
}

// collectImageResult concatenates the response's text parts in order and
// keeps the first inline image encountered.
func collectImageResult(resp *backend.Response) (string, string) {
	var text, image string
	for _, part := range resp.Parts {
		switch part.Kind {
		case backend.PartText:
			text += part.Text
		case backend.PartInlineData:
			if image == "" {
				image = base64.StdEncoding.EncodeToString(part.Data)
			}
		}
	}
	return text, image
}

func (s *Service) maybeSuggestTopic(ctx context.Context) {
	if s.topics == nil || s.store.ActiveTopic() != "" {
		return
	}
	title, err := s.topics.SuggestTopic(ctx, s.store.Messages())
	if err != nil {
		log.Printf("suggest topic: %v", err)
		return
	}
	if title != "" {
		s.store.SetTopic(title)
	}
}

func instructionFor(kind intent.Intent) string {
	switch kind {
	case intent.ExamNote:
		return examNoteInstruction
	case intent.ExplainConcept:
		return explainConceptInstruction
	default:
		return baseInstruction
	}
}

func modelMessage(text, generatedImage string) models.Message {
	return models.Message{
		ID:             session.NewMessageID(),
		Role:           models.RoleModel,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
		GeneratedImage: generatedImage,
	}
}
