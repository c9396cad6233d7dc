package container

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/mockinterview-lambda/internal/aiinterview"
	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
	"github.com/saulo-duarte/mockinterview-lambda/internal/migrations"
	"github.com/saulo-duarte/mockinterview-lambda/internal/user"
	"github.com/saulo-duarte/mockinterview-lambda/internal/voice"
)

type Container struct {
	Settings             *config.Settings
	UserContainer        *user.UserContainer
	InterviewContainer   *interview.Container
	AIInterviewContainer *aiinterview.Container
}

// New connects to the database, applies migrations and builds every feature.
// config.Init and auth.Init must have run.
func New(ctx context.Context) (*Container, error) {
	log := config.WithContext(ctx)

	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	if err := config.Connect(ctx, settings.DatabaseDSN); err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	if err := migrations.Run(config.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var voiceClient *voice.Client
	if settings.Voice.URL != "" {
		dialer := voice.NewWebsocketDialer(settings.Voice.URL, settings.Voice.APIKey, settings.Voice.DialTimeout)
		voiceClient = voice.NewClient(dialer)
	} else {
		log.Warn("VOICE_WS_URL not set, voice answers are disabled")
	}

	provider, err := aiinterview.NewGeminiProvider(ctx, settings.AI.Model)
	if err != nil {
		if !settings.AI.TestMode {
			return nil, fmt.Errorf("failed to create generation provider: %w", err)
		}
		log.WithError(err).Warn("Generation provider unavailable, only test questions can be generated")
		provider = nil
	}

	userContainer := user.NewUserContainer(config.DB)
	interviewContainer := interview.NewContainer(
		config.DB,
		userContainer.Service,
		voiceClient,
		assistantDefaults(settings.Voice),
		settings.Interview.ListLimit,
	)
	aiInterviewContainer := aiinterview.NewContainer(
		interviewContainer,
		userContainer.Service,
		provider,
		settings.Interview.QuestionCounts,
		settings.AI.TestMode,
	)

	return &Container{
		Settings:             settings,
		UserContainer:        userContainer,
		InterviewContainer:   interviewContainer,
		AIInterviewContainer: aiInterviewContainer,
	}, nil
}

func assistantDefaults(s config.VoiceSettings) voice.AssistantDefaults {
	return voice.AssistantDefaults{
		Name:                  s.AssistantName,
		ModelProvider:         s.ModelProvider,
		Model:                 s.Model,
		Temperature:           s.Temperature,
		VoiceProvider:         s.VoiceProvider,
		VoiceID:               s.VoiceID,
		TranscriberProvider:   s.TranscriberProvider,
		TranscriberModel:      s.TranscriberModel,
		Language:              s.Language,
		SilenceTimeoutSeconds: s.SilenceTimeoutSeconds,
		MaxDurationSeconds:    s.MaxDurationSeconds,
	}
}
