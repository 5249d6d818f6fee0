package attachment

import "strings"

// Kind says whether an attachment's bytes are decoded to text and inlined
// into the prompt, or passed through to the backend as opaque binary.
type Kind int

const (
	Binary Kind = iota
	Textual
)

const genericMediaType = "application/octet-stream"

var textualExact = map[string]bool{
	"application/json":   true,
	"application/xml":    true,
	"application/x-yaml": true,
}

// mediaTypeByExt resolves attachments uploaded with a missing or generic
// media type from their file extension.
var mediaTypeByExt = map[string]string{
	"csv":  "text/csv",
	"md":   "text/markdown",
	"json": "application/json",
	"pdf":  "application/pdf",
	"txt":  "text/plain",
	"tsv":  "text/tab-separated-values",
	"xml":  "text/xml",
	"yml":  "text/yaml",
	"yaml": "text/yaml",
}

// Classify reports whether mediaType names decodable text or opaque binary.
// Pure function of the declared media type string.
func Classify(mediaType string) Kind {
	if strings.HasPrefix(mediaType, "text/") {
		return Textual
	}
	if textualExact[mediaType] {
		return Textual
	}
	if strings.Contains(mediaType, "csv") || strings.Contains(mediaType, "script") {
		return Textual
	}
	return Binary
}

// ResolveMediaType fills in a missing or generic media type from the file
// name's extension. Unknown extensions stay application/octet-stream.
func ResolveMediaType(mediaType, name string) string {
	if mediaType != "" && mediaType != genericMediaType {
		return mediaType
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		if resolved, ok := mediaTypeByExt[strings.ToLower(name[idx+1:])]; ok {
			return resolved
		}
	}
	return genericMediaType
}

// StripDataURL removes a data-URL scheme prefix (data:<type>;base64,) from an
// encoded payload. Payloads without a comma are returned unchanged.
func StripDataURL(encoded string) string {
	if idx := strings.Index(encoded, ","); idx >= 0 {
		return encoded[idx+1:]
	}
	return encoded
}
