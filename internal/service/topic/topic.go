package topic

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/malik80-glitch/accsolver/internal/config"
	"github.com/malik80-glitch/accsolver/internal/models"
)

const systemPrompt = "You are a conversation topic generator for an accounting homework assistant. " +
	"Based on the dialogue between the student and the assistant, produce a concise topic title " +
	"naming the accounting subject being studied, at most ten words. " +
	"Output only the title; do not include any additional content."

// Suggester derives a short topic title from the conversation so far.
type Suggester struct {
	chatModel model.ToolCallingChatModel
}

// NewSuggester builds the suggester on the configured provider's chat model.
func NewSuggester(cfg *config.Config, provider string) (*Suggester, error) {
	provCfg, ok := cfg.Providers[provider]
	if !ok {
		return nil, fmt.Errorf("provider %s not configured", provider)
	}

	var (
		chatModel model.ToolCallingChatModel
		err       error
	)
	switch provider {
	case "openai":
		chatModel, err = openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
			BaseURL: provCfg.BaseURL,
			Model:   provCfg.Model,
			APIKey:  provCfg.APIKey,
		})
	case "gemini":
		var client *genai.Client
		client, err = genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: provCfg.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}
		chatModel, err = gemini.NewChatModel(context.Background(), &gemini.Config{
			Client: client,
			Model:  provCfg.Model,
		})
	case "claude":
		var baseURLPtr *string
		if provCfg.BaseURL != "" {
			baseURLPtr = &provCfg.BaseURL
		}
		chatModel, err = claude.NewChatModel(context.Background(), &claude.Config{
			APIKey:    provCfg.APIKey,
			Model:     provCfg.Model,
			BaseURL:   baseURLPtr,
			MaxTokens: 100,
		})
	default:
		return nil, fmt.Errorf("invalid provider: %s", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s chat model: %w", provider, err)
	}
	return &Suggester{chatModel: chatModel}, nil
}

// SuggestTopic asks the chat model for a title summarizing the exchange.
func (s *Suggester) SuggestTopic(ctx context.Context, messages []models.Message) (string, error) {
	if len(messages) == 0 {
		return "", nil
	}

	var conversation strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleUser:
			fmt.Fprintf(&conversation, "Student: %s\n", msg.Text)
		case models.RoleModel:
			fmt.Fprintf(&conversation, "Assistant: %s\n", msg.Text)
		}
	}

	schemaMessages := []*schema.Message{
		{
			Role:    schema.System,
			Content: systemPrompt,
		},
		{
			Role:    schema.User,
			Content: fmt.Sprintf("Please generate a topic title for the following exchange:\n\n%s", conversation.String()),
		},
	}
	resp, err := s.chatModel.Generate(ctx, schemaMessages)
	if err != nil {
		return "", fmt.Errorf("generate topic: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}
