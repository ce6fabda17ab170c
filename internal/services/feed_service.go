package services

import (
	"context"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/repositories"
)

// FeedService builds a user's feed from the freets of everyone they follow.
// Feeds are computed on every call; nothing is cached.
type FeedService struct {
	follows  repositories.FollowRepository
	freets   repositories.FreetRepository
	resolver *UserResolver
}

func NewFeedService(follows repositories.FollowRepository, freets repositories.FreetRepository, resolver *UserResolver) *FeedService {
	return &FeedService{follows: follows, freets: freets, resolver: resolver}
}

// ComputeFeed returns every freet authored by someone viewerUsername follows
// directly, newest first. Duplicate edges do not duplicate freets.
func (s *FeedService) ComputeFeed(ctx context.Context, viewerUsername string) ([]models.FreetWithAuthor, error) {
	viewer, err := s.resolver.ResolveUsername(ctx, viewerUsername)
	if err != nil {
		return nil, err
	}
	edges, err := s.follows.GetFollowsByFollowerID(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	followeeIDs := make([]uint, len(edges))
	for i, e := range edges {
		followeeIDs[i] = e.FolloweeID
	}
	followeeIDs = uniqueIDs(followeeIDs)
	if len(followeeIDs) == 0 {
		return []models.FreetWithAuthor{}, nil
	}

	freets, err := s.freets.GetFreetsByAuthorIDs(ctx, followeeIDs)
	if err != nil {
		return nil, err
	}
	return withAuthors(ctx, s.resolver, freets)
}

// withAuthors attaches each freet's author, dropping freets whose author is gone
func withAuthors(ctx context.Context, resolver *UserResolver, freets []models.Freet) ([]models.FreetWithAuthor, error) {
	authorIDs := make([]uint, len(freets))
	for i, f := range freets {
		authorIDs[i] = f.AuthorID
	}
	authors, err := resolver.Populate(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.FreetWithAuthor, 0, len(freets))
	for _, f := range freets {
		author, ok := authors[f.AuthorID]
		if !ok {
			continue
		}
		out = append(out, models.FreetWithAuthor{Freet: f, Author: author})
	}
	return out, nil
}
