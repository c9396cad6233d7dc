package aiinterview

import (
	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
	"github.com/saulo-duarte/mockinterview-lambda/internal/user"
)

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(interviews *interview.Container, users user.Resolver, provider Provider, counts config.QuestionCounts, testMode bool) *Container {
	service := NewService(interviews.Repo, provider, counts, testMode)
	handler := NewHandler(service, interviews.Service, users)

	return &Container{
		Handler: handler,
		Service: service,
	}
}
