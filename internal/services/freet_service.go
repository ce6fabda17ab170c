package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/repositories"
)

// FreetService handles freet authoring. Deleting a freet also removes its
// bookmarks and its tag references.
type FreetService struct {
	freets    repositories.FreetRepository
	bookmarks repositories.BookmarkRepository
	tags      repositories.TagRepository
	resolver  *UserResolver
}

func NewFreetService(
	freets repositories.FreetRepository,
	bookmarks repositories.BookmarkRepository,
	tags repositories.TagRepository,
	resolver *UserResolver,
) *FreetService {
	return &FreetService{freets: freets, bookmarks: bookmarks, tags: tags, resolver: resolver}
}

func (s *FreetService) Create(ctx context.Context, authorID uint, content string) (*models.FreetWithAuthor, error) {
	author, err := s.resolver.ResolveID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("freet content must be nonempty: %w", ErrInvalidInput)
	}
	freet := &models.Freet{AuthorID: author.ID, Content: content}
	if err := s.freets.CreateFreet(ctx, freet); err != nil {
		return nil, fmt.Errorf("create freet: %w", err)
	}
	return &models.FreetWithAuthor{Freet: *freet, Author: *author}, nil
}

func (s *FreetService) Get(ctx context.Context, id string) (*models.FreetWithAuthor, error) {
	freet, err := s.freets.GetFreetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrFreetNotFound)
	}
	populated, err := withAuthors(ctx, s.resolver, []models.Freet{*freet})
	if err != nil {
		return nil, err
	}
	if len(populated) == 0 {
		return nil, fmt.Errorf("author of freet %s: %w", id, ErrUserNotFound)
	}
	return &populated[0], nil
}

// List returns every freet, or only those by authorUsername when it is set
func (s *FreetService) List(ctx context.Context, authorUsername string) ([]models.FreetWithAuthor, error) {
	var (
		freets []models.Freet
		err    error
	)
	if authorUsername == "" {
		freets, err = s.freets.GetAllFreets(ctx)
	} else {
		var author *models.User
		author, err = s.resolver.ResolveUsername(ctx, authorUsername)
		if err != nil {
			return nil, err
		}
		freets, err = s.freets.GetFreetsByAuthorID(ctx, author.ID)
	}
	if err != nil {
		return nil, err
	}
	return withAuthors(ctx, s.resolver, freets)
}

// Update replaces the content of a freet owned by userID
func (s *FreetService) Update(ctx context.Context, userID uint, id, content string) (*models.FreetWithAuthor, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("freet content must be nonempty: %w", ErrInvalidInput)
	}
	if _, err := s.freets.UpdateFreetContent(ctx, id, content); err != nil {
		return nil, notFoundAs(err, ErrFreetNotFound)
	}
	return s.Get(ctx, id)
}

// Delete removes a freet owned by userID
func (s *FreetService) Delete(ctx context.Context, userID uint, id string) error {
	freet, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.deleteCascade(ctx, freet)
}

func (s *FreetService) owned(ctx context.Context, userID uint, id string) (*models.Freet, error) {
	freet, err := s.freets.GetFreetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrFreetNotFound)
	}
	if freet.AuthorID != userID {
		return nil, fmt.Errorf("freet %s is not yours: %w", id, ErrForbidden)
	}
	return freet, nil
}

// deleteCascade removes the freet, then its bookmarks, then its tag references.
// Steps are not rolled back if a later one fails.
func (s *FreetService) deleteCascade(ctx context.Context, freet *models.Freet) error {
	if err := s.freets.DeleteFreet(ctx, freet.ID.Hex()); err != nil {
		return notFoundAs(err, ErrFreetNotFound)
	}
	if _, err := s.bookmarks.DeleteBookmarksByFreetID(ctx, freet.ID); err != nil {
		return fmt.Errorf("delete bookmarks of freet %s: %w", freet.ID.Hex(), err)
	}
	if err := s.tags.RemoveFreetFromAllTags(ctx, freet.ID); err != nil {
		return fmt.Errorf("untag freet %s: %w", freet.ID.Hex(), err)
	}
	return nil
}
