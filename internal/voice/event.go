package voice

import "strings"

type EventType string

const (
	EventCallStart   EventType = "call-start"
	EventCallEnd     EventType = "call-end"
	EventSpeechStart EventType = "speech-start"
	EventSpeechEnd   EventType = "speech-end"
	EventMessage     EventType = "message"
	EventError       EventType = "error"
)

// meetingEndedMessage is reported by the provider when the remote side hangs up.
const meetingEndedMessage = "Meeting has ended"

type Message struct {
	Type           string   `json:"type"`
	Role           string   `json:"role,omitempty"`
	Transcript     string   `json:"transcript,omitempty"`
	TranscriptType string   `json:"transcriptType,omitempty"`
	Confidence     *float64 `json:"confidence,omitempty"`
}

// IsUserTranscript reports whether the message carries final text spoken by the candidate.
func (m *Message) IsUserTranscript() bool {
	if m == nil || m.Type != "transcript" || m.Role != "user" {
		return false
	}
	return m.TranscriptType == "" || m.TranscriptType == "final"
}

type Event struct {
	Type    EventType `json:"type"`
	Message *Message  `json:"message,omitempty"`
	Error   string    `json:"error,omitempty"`
}

func (e Event) isMeetingEnded() bool {
	return e.Type == EventError && strings.Contains(e.Error, meetingEndedMessage)
}
