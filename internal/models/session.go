package models

// Session is the full conversation state for the running client. Messages
// are kept in insertion order and never reordered.
type Session struct {
	Messages    []Message `json:"messages"`
	ActiveTopic string    `json:"activeTopic,omitempty"`
	IsBusy      bool      `json:"isBusy"`
}

// Clone returns a deep copy safe to serialize while the original keeps
// changing.
func (s Session) Clone() Session {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	for i := range out.Messages {
		if att := out.Messages[i].Attachment; att != nil {
			attCopy := *att
			out.Messages[i].Attachment = &attCopy
		}
	}
	return out
}
