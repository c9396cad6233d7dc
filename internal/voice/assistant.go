package voice

import "fmt"

type AssistantDefaults struct {
	Name                  string
	ModelProvider         string
	Model                 string
	Temperature           float64
	VoiceProvider         string
	VoiceID               string
	TranscriberProvider   string
	TranscriberModel      string
	Language              string
	SilenceTimeoutSeconds int
	MaxDurationSeconds    int
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ModelConfig struct {
	Provider    string        `json:"provider"`
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type VoiceConfig struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
}

type TranscriberConfig struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Language string `json:"language"`
}

type AssistantConfig struct {
	Name                   string            `json:"name"`
	Model                  ModelConfig       `json:"model"`
	Voice                  VoiceConfig       `json:"voice"`
	FirstMessage           string            `json:"firstMessage"`
	Transcriber            TranscriberConfig `json:"transcriber"`
	EndCallFunctionEnabled bool              `json:"endCallFunctionEnabled"`
	RecordingEnabled       bool              `json:"recordingEnabled"`
	SilenceTimeoutSeconds  int               `json:"silenceTimeoutSeconds"`
	MaxDurationSeconds     int               `json:"maxDurationSeconds"`
}

const assistantSystemPrompt = `You are a professional interview assistant. The candidate will answer the following question. Listen carefully and acknowledge their response when they finish speaking.

Question: %s

Be encouraging and professional. When the candidate finishes, briefly acknowledge their answer and let them know they can move to the next question.`

// NewInterviewAssistant builds the assistant that reads one question and listens to the answer.
func NewInterviewAssistant(question string, d AssistantDefaults) AssistantConfig {
	return AssistantConfig{
		Name: d.Name,
		Model: ModelConfig{
			Provider: d.ModelProvider,
			Model:    d.Model,
			Messages: []ChatMessage{
				{Role: "system", Content: fmt.Sprintf(assistantSystemPrompt, question)},
			},
			Temperature: d.Temperature,
		},
		Voice: VoiceConfig{
			Provider: d.VoiceProvider,
			VoiceID:  d.VoiceID,
		},
		FirstMessage: fmt.Sprintf("Here's your question: %s. Please take your time to answer.", question),
		Transcriber: TranscriberConfig{
			Provider: d.TranscriberProvider,
			Model:    d.TranscriberModel,
			Language: d.Language,
		},
		EndCallFunctionEnabled: false,
		RecordingEnabled:       true,
		SilenceTimeoutSeconds:  d.SilenceTimeoutSeconds,
		MaxDurationSeconds:     d.MaxDurationSeconds,
	}
}
