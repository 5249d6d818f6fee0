package intent

import (
	"fmt"
	"strings"
)

// Intent classifies a draft by its recognized command prefix. The three
// non-standard intents are mutually exclusive on a single draft.
type Intent int

const (
	Standard Intent = iota
	GenerateImage
	ExamNote
	ExplainConcept
)

const (
	generateImagePrefix  = "Generate Image: "
	examNotePrefix       = "Exam Note: "
	explainConceptPrefix = "Explain Concept: "
)

// recognized lists the prefixed intents in match order.
var recognized = []Intent{GenerateImage, ExamNote, ExplainConcept}

// Prefix returns the draft prefix that selects this intent, empty for
// Standard.
func (i Intent) Prefix() string {
	switch i {
	case GenerateImage:
		return generateImagePrefix
	case ExamNote:
		return examNotePrefix
	case ExplainConcept:
		return explainConceptPrefix
	default:
		return ""
	}
}

func (i Intent) String() string {
	switch i {
	case GenerateImage:
		return "generate_image"
	case ExamNote:
		return "exam_note"
	case ExplainConcept:
		return "explain_concept"
	default:
		return "standard"
	}
}

// Parse maps an intent name from the wire back to its tag.
func Parse(name string) (Intent, error) {
	switch name {
	case "standard":
		return Standard, nil
	case "generate_image":
		return GenerateImage, nil
	case "exam_note":
		return ExamNote, nil
	case "explain_concept":
		return ExplainConcept, nil
	}
	return Standard, fmt.Errorf("unknown intent %q", name)
}

// Route inspects the draft for a recognized command prefix and returns the
// intent plus the draft with the matched prefix stripped. Detection is
// anchored at the start of the draft; a prefix appearing anywhere else is
// plain text.
func Route(draft string) (Intent, string) {
	for _, intent := range recognized {
		if prefix := intent.Prefix(); strings.HasPrefix(draft, prefix) {
			return intent, strings.TrimPrefix(draft, prefix)
		}
	}
	return Standard, draft
}

// Toggle applies an intent prefix to a draft. Applying the intent already
// present removes it; applying a different one first strips whatever
// recognized prefix is there before prepending the new one.
func Toggle(draft string, intent Intent) string {
	current, rest := Route(draft)
	if current == intent {
		return rest
	}
	return intent.Prefix() + rest
}
