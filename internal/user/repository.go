package user

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

type UserRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (*User, error)
	FirstOrCreate(ctx context.Context, externalID string) (*User, error)
	Update(ctx context.Context, u *User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByExternalID(ctx context.Context, externalID string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "external_id = ?", externalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FirstOrCreate(ctx context.Context, externalID string) (*User, error) {
	u := User{ExternalID: externalID}
	if err := r.db.WithContext(ctx).
		Where(User{ExternalID: externalID}).
		FirstOrCreate(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}
