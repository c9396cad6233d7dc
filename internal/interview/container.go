package interview

import (
	"github.com/saulo-duarte/mockinterview-lambda/internal/user"
	"github.com/saulo-duarte/mockinterview-lambda/internal/voice"
	"gorm.io/gorm"
)

type Container struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewContainer(db *gorm.DB, users user.Resolver, voiceClient *voice.Client, assistant voice.AssistantDefaults, listLimit int) *Container {
	repo := NewRepository(db)
	service := NewService(repo, voiceClient, assistant, listLimit)
	handler := NewHandler(service, users)

	return &Container{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
