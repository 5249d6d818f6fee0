package models

// Attachment is a file payload owned by exactly one user message. Data holds
// the base64-encoded bytes, with or without a leading data-URL scheme prefix.
// Immutable once created.
type Attachment struct {
	Data      string `json:"data"`
	MediaType string `json:"mediaType"`
	Name      string `json:"name"`
}
