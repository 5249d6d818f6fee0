package session

import (
	"strings"

	"github.com/malik80-glitch/accsolver/internal/models"
)

// Filter returns the messages whose text contains term as a case-insensitive
// substring, in original order. An empty term returns the input unchanged.
// Pure projection: the canonical session is never touched.
func Filter(messages []models.Message, term string) []models.Message {
	if term == "" {
		return messages
	}
	needle := strings.ToLower(term)
	var out []models.Message
	for _, msg := range messages {
		if strings.Contains(strings.ToLower(msg.Text), needle) {
			out = append(out, msg)
		}
	}
	return out
}
