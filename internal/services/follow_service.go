package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/repositories"
)

// FollowService owns follow edges between users
type FollowService struct {
	follows  repositories.FollowRepository
	resolver *UserResolver
}

func NewFollowService(follows repositories.FollowRepository, resolver *UserResolver) *FollowService {
	return &FollowService{follows: follows, resolver: resolver}
}

// Follow makes followerID follow the user named followeeUsername. If the edge
// already exists it is returned unchanged and created is false.
func (s *FollowService) Follow(ctx context.Context, followerID uint, followeeUsername string) (*models.PopulatedFollow, bool, error) {
	follower, err := s.resolver.ResolveID(ctx, followerID)
	if err != nil {
		return nil, false, err
	}
	followee, err := s.resolver.ResolveUsername(ctx, followeeUsername)
	if err != nil {
		return nil, false, err
	}
	if follower.ID == followee.ID {
		return nil, false, ErrSelfFollow
	}

	existing, err := s.follows.GetFollowByPair(ctx, follower.ID, followee.ID)
	switch {
	case err == nil:
		return &models.PopulatedFollow{ID: existing.ID, Follower: *follower, Followee: *followee}, false, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, false, err
	}

	edge := &models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
	if err := s.follows.CreateFollow(ctx, edge); err != nil {
		return nil, false, fmt.Errorf("create follow: %w", err)
	}
	return &models.PopulatedFollow{ID: edge.ID, Follower: *follower, Followee: *followee}, true, nil
}

// AddEdge stores an edge without any checks and returns it populated
func (s *FollowService) AddEdge(ctx context.Context, followerID, followeeID uint) (*models.PopulatedFollow, error) {
	edge := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := s.follows.CreateFollow(ctx, edge); err != nil {
		return nil, fmt.Errorf("create follow: %w", err)
	}
	return s.populateOne(ctx, edge)
}

func (s *FollowService) FindByID(ctx context.Context, id string) (*models.PopulatedFollow, error) {
	edge, err := s.follows.GetFollowByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populateOne(ctx, edge)
}

// FindByFollowerUsername lists the edges leaving username, i.e. who they follow
func (s *FollowService) FindByFollowerUsername(ctx context.Context, username string) ([]models.PopulatedFollow, error) {
	user, err := s.resolver.ResolveUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	edges, err := s.follows.GetFollowsByFollowerID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, edges)
}

// FindByFolloweeUsername lists the edges pointing at username, i.e. their followers
func (s *FollowService) FindByFolloweeUsername(ctx context.Context, username string) ([]models.PopulatedFollow, error) {
	user, err := s.resolver.ResolveUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	edges, err := s.follows.GetFollowsByFolloweeID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, edges)
}

// RemoveEdge deletes every edge from followerID to followeeUsername and
// reports whether one existed. A missing edge is not an error.
func (s *FollowService) RemoveEdge(ctx context.Context, followerID uint, followeeUsername string) (bool, error) {
	_, deleted, err := s.Unfollow(ctx, followerID, followeeUsername)
	return deleted, err
}

// Unfollow is RemoveEdge that also hands back the resolved followee
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, followeeUsername string) (*models.User, bool, error) {
	followee, err := s.resolver.ResolveUsername(ctx, followeeUsername)
	if err != nil {
		return nil, false, err
	}
	deleted, err := s.follows.DeleteFollow(ctx, followerID, followee.ID)
	if err != nil {
		return nil, false, err
	}
	return followee, deleted, nil
}

// populateOne fills in whichever endpoints still exist. A missing user is
// left zero-valued rather than failing a read or write that already succeeded.
func (s *FollowService) populateOne(ctx context.Context, edge *models.Follow) (*models.PopulatedFollow, error) {
	users, err := s.resolver.Populate(ctx, []uint{edge.FollowerID, edge.FolloweeID})
	if err != nil {
		return nil, err
	}
	return &models.PopulatedFollow{
		ID:       edge.ID,
		Follower: users[edge.FollowerID],
		Followee: users[edge.FolloweeID],
	}, nil
}

// populate resolves both endpoints of every edge. Edges pointing at deleted
// users are skipped.
func (s *FollowService) populate(ctx context.Context, edges []models.Follow) ([]models.PopulatedFollow, error) {
	ids := make([]uint, 0, 2*len(edges))
	for _, e := range edges {
		ids = append(ids, e.FollowerID, e.FolloweeID)
	}
	users, err := s.resolver.Populate(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.PopulatedFollow, 0, len(edges))
	for _, e := range edges {
		follower, ok := users[e.FollowerID]
		if !ok {
			continue
		}
		followee, ok := users[e.FolloweeID]
		if !ok {
			continue
		}
		out = append(out, models.PopulatedFollow{ID: e.ID, Follower: follower, Followee: followee})
	}
	return out, nil
}
