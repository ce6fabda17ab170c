package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/repositories"
)

// UserResolver turns usernames and IDs into users. It is shared by every
// service that accepts a username from a request.
type UserResolver struct {
	users repositories.UserRepository
}

func NewUserResolver(users repositories.UserRepository) *UserResolver {
	return &UserResolver{users: users}
}

// ResolveUsername looks up a user by exact username. An empty username is
// rejected before the store is touched.
func (r *UserResolver) ResolveUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", ErrInvalidInput)
	}
	user, err := r.users.GetUserByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%q: %w", username, ErrUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserResolver) ResolveID(ctx context.Context, id uint) (*models.User, error) {
	user, err := r.users.GetUserByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("id %d: %w", id, ErrUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Populate loads users for ids in one round trip. IDs that no longer
// resolve are absent from the map.
func (r *UserResolver) Populate(ctx context.Context, ids []uint) (map[uint]models.User, error) {
	users, err := r.users.GetUsersByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

// uniqueIDs drops repeats and keeps the order of first appearance
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
