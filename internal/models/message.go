package models

import "time"

// Message captures an individual conversation entry stored in the session.

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message fields are never mutated after creation; the session's message
// sequence only grows or is reset wholesale. Attachment is only ever set on
// user messages, GeneratedImage only on model messages.
type Message struct {
	ID             string      `json:"id"`
	Role           Role        `json:"role"`
	Text           string      `json:"text"`
	CreatedAt      time.Time   `json:"timestamp"`
	Attachment     *Attachment `json:"attachment,omitempty"`
	GeneratedImage string      `json:"generatedImage,omitempty"`
}
