package user

import (
	"context"
	"errors"

	"github.com/saulo-duarte/mockinterview-lambda/internal/auth"
)

var ErrUnauthorized = errors.New("unauthorized")

// Resolver is the part of UserService other features need to find the caller.
type Resolver interface {
	Resolve(ctx context.Context, externalID string) (*User, error)
}

// Current resolves the authenticated caller from the request claims.
func Current(ctx context.Context, r Resolver) (*User, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil || claims.UserID == "" {
		return nil, ErrUnauthorized
	}
	return r.Resolve(ctx, claims.UserID)
}
