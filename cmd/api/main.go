package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/joho/godotenv"

	"github.com/saulo-duarte/mockinterview-lambda/internal/auth"
	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
	"github.com/saulo-duarte/mockinterview-lambda/internal/container"
	"github.com/saulo-duarte/mockinterview-lambda/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	config.Init()
	auth.Init()
	log := config.Logger()

	ctx := context.Background()
	c, err := container.New(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to build application")
	}

	handler := router.New(router.RouterConfig{
		UserHandler:        c.UserContainer.Handler,
		InterviewHandler:   c.InterviewContainer.Handler,
		AIInterviewHandler: c.AIInterviewContainer.Handler,
	})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		adapter := httpadapter.New(handler)
		lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return adapter.ProxyWithContext(ctx, req)
		})
		return
	}

	addr := fmt.Sprintf(":%d", c.Settings.Port)
	log.WithField("addr", addr).Info("Starting HTTP server")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.WithError(err).Fatal("HTTP server stopped")
	}
}
