package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultSettingsPath = "config/interview.yaml"

// Settings is the runtime configuration of the API. Values come from defaults,
// then the optional YAML file, then environment variables.
type Settings struct {
	Port        int    `yaml:"-"`
	DatabaseDSN string `yaml:"-"`

	AI        AISettings        `yaml:"ai"`
	Interview InterviewSettings `yaml:"interview"`
	Voice     VoiceSettings     `yaml:"voice"`
}

type AISettings struct {
	Model    string `yaml:"model"`
	TestMode bool   `yaml:"test_mode"`
}

type InterviewSettings struct {
	QuestionCounts QuestionCounts `yaml:"question_counts"`
	ListLimit      int            `yaml:"list_limit"`
}

type QuestionCounts struct {
	Easy   int `yaml:"easy"`
	Medium int `yaml:"medium"`
	Hard   int `yaml:"hard"`
}

type VoiceSettings struct {
	URL    string `yaml:"-"`
	APIKey string `yaml:"-"`

	AssistantName         string        `yaml:"assistant_name"`
	ModelProvider         string        `yaml:"model_provider"`
	Model                 string        `yaml:"model"`
	Temperature           float64       `yaml:"temperature"`
	VoiceProvider         string        `yaml:"voice_provider"`
	VoiceID               string        `yaml:"voice_id"`
	TranscriberProvider   string        `yaml:"transcriber_provider"`
	TranscriberModel      string        `yaml:"transcriber_model"`
	Language              string        `yaml:"language"`
	SilenceTimeoutSeconds int           `yaml:"silence_timeout_seconds"`
	MaxDurationSeconds    int           `yaml:"max_duration_seconds"`
	DialTimeout           time.Duration `yaml:"dial_timeout"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Port: 8080,
		AI: AISettings{
			Model: "gemini-2.5-flash",
		},
		Interview: InterviewSettings{
			QuestionCounts: QuestionCounts{Easy: 5, Medium: 6, Hard: 8},
			ListLimit:      10,
		},
		Voice: VoiceSettings{
			AssistantName:         "Interview Assistant",
			ModelProvider:         "openai",
			Model:                 "gpt-3.5-turbo",
			Temperature:           0.7,
			VoiceProvider:         "openai",
			VoiceID:               "alloy",
			TranscriberProvider:   "deepgram",
			TranscriberModel:      "nova-2",
			Language:              "en-US",
			SilenceTimeoutSeconds: 30,
			MaxDurationSeconds:    300,
			DialTimeout:           10 * time.Second,
		},
	}
}

func LoadSettings() (*Settings, error) {
	s := DefaultSettings()

	path := getEnv("INTERVIEW_CONFIG", defaultSettingsPath)
	if err := s.loadFile(path); err != nil {
		return nil, err
	}

	s.Port = getEnvAsInt("PORT", s.Port)
	s.DatabaseDSN = getEnv("DATABASE_DSN", s.DatabaseDSN)
	s.AI.Model = getEnv("GEMINI_MODEL", s.AI.Model)
	s.AI.TestMode = getEnvAsBool("AI_TEST_MODE", s.AI.TestMode)
	s.Voice.URL = getEnv("VOICE_WS_URL", s.Voice.URL)
	s.Voice.APIKey = getEnv("VOICE_API_KEY", s.Voice.APIKey)
	s.Voice.DialTimeout = getEnvAsDuration("VOICE_DIAL_TIMEOUT", s.Voice.DialTimeout)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return s, nil
}

func (s *Settings) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return nil
}

func (s *Settings) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid port: %d", s.Port)
	}
	if s.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	if s.AI.Model == "" {
		return errors.New("ai model is required")
	}
	c := s.Interview.QuestionCounts
	if c.Easy <= 0 || c.Medium <= 0 || c.Hard <= 0 {
		return fmt.Errorf("question counts must be positive, got easy=%d medium=%d hard=%d", c.Easy, c.Medium, c.Hard)
	}
	if s.Interview.ListLimit <= 0 {
		return fmt.Errorf("list limit must be positive, got %d", s.Interview.ListLimit)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
