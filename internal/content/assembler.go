package content

import (
	"encoding/base64"
	"fmt"
	"log"

	"github.com/malik80-glitch/accsolver/internal/attachment"
	"github.com/malik80-glitch/accsolver/internal/models"
)

// PartKind tags a ContentPart.
type PartKind int

const (
	PartText PartKind = iota
	PartInlineBinary
)

// ContentPart is one typed unit within a Turn: plain text or an inline
// binary payload with its media type.
type ContentPart struct {
	Kind      PartKind
	Text      string
	MediaType string
	Data      []byte
}

// TextPart builds a text part.
func TextPart(text string) ContentPart {
	return ContentPart{Kind: PartText, Text: text}
}

// InlineBinaryPart builds an opaque binary part.
func InlineBinaryPart(mediaType string, data []byte) ContentPart {
	return ContentPart{Kind: PartInlineBinary, MediaType: mediaType, Data: data}
}

// Turn is one role-tagged, ordered group of parts sent to the backend.
type Turn struct {
	Role  models.Role
	Parts []ContentPart
}

// Assemble flattens the conversation history plus the not-yet-sent turn into
// the ordered Turn sequence the backend consumes. Historical turns come
// first, in order; the current turn is always last, with the user role.
func Assemble(history []models.Message, currentText string, currentAttachment *models.Attachment) []Turn {
	turns := make([]Turn, 0, len(history)+1)
	for _, msg := range history {
		turns = append(turns, Turn{
			Role:  msg.Role,
			Parts: buildParts(msg.Text, msg.Attachment, msg.GeneratedImage),
		})
	}
	turns = append(turns, Turn{
		Role:  models.RoleUser,
		Parts: buildParts(currentText, currentAttachment, ""),
	})
	return turns
}

func buildParts(text string, att *models.Attachment, generatedImage string) []ContentPart {
	var parts []ContentPart
	switch {
	case att != nil:
		mediaType := attachment.ResolveMediaType(att.MediaType, att.Name)
		payload := attachment.StripDataURL(att.Data)
		if attachment.Classify(mediaType) == attachment.Textual {
			parts = append(parts, TextPart(fmt.Sprintf("[Attached File: %s]\n%s\n[End of File]", att.Name, decodeText(payload))))
		} else {
			parts = append(parts, TextPart(fmt.Sprintf("[Attached File: %s]", att.Name)))
			parts = append(parts, InlineBinaryPart(mediaType, decodeBytes(payload)))
		}
	case generatedImage != "":
		// Older sessions stored model images without an attachment record;
		// they carry no file marker.
		parts = append(parts, InlineBinaryPart("image/jpeg", decodeBytes(attachment.StripDataURL(generatedImage))))
	}
	// The message's own text always closes the turn, even when empty, so no
	// turn reaches the backend without at least one part.
	parts = append(parts, TextPart(text))
	return parts
}

// decodeText decodes base64 to a string. Malformed input degrades to an
// empty string rather than failing the whole request.
func decodeText(payload string) string {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		log.Printf("decode attachment text: %v", err)
		return ""
	}
	return string(raw)
}

func decodeBytes(payload string) []byte {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		log.Printf("decode attachment bytes: %v", err)
		return nil
	}
	return raw
}
