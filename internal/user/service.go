package user

import (
	"context"

	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
)

type UserService interface {
	Resolve(ctx context.Context, externalID string) (*User, error)
	UpdateProfile(ctx context.Context, externalID string, dto UpdateProfileDTO) (*User, error)
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

// Resolve maps an identity provider id to the local user row, creating it on first sight.
func (s *userService) Resolve(ctx context.Context, externalID string) (*User, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FirstOrCreate(ctx, externalID)
	if err != nil {
		log.WithError(err).Error("Failed to resolve user")
		return nil, err
	}
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, externalID string, dto UpdateProfileDTO) (*User, error) {
	log := config.WithContext(ctx)

	u, err := s.Resolve(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.Industry != nil {
		u.Industry = *dto.Industry
	}
	if dto.Skills != nil {
		u.Skills = *dto.Skills
	}

	if err := s.repo.Update(ctx, u); err != nil {
		log.WithError(err).Error("Failed to update user profile")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User profile updated")
	return u, nil
}
