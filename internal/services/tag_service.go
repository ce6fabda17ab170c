package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/repositories"
)

// TagService keeps tags and the freets they label in sync on both sides
type TagService struct {
	tags   repositories.TagRepository
	freets repositories.FreetRepository
}

func NewTagService(tags repositories.TagRepository, freets repositories.FreetRepository) *TagService {
	return &TagService{tags: tags, freets: freets}
}

func (s *TagService) Create(ctx context.Context, content string) (*models.Tag, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("tag content must be nonempty: %w", ErrInvalidInput)
	}
	_, err := s.tags.GetTagByContent(ctx, content)
	if err == nil {
		return nil, fmt.Errorf("%q: %w", content, ErrTagExists)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	tag := &models.Tag{Content: content}
	if err := s.tags.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

func (s *TagService) ListAll(ctx context.Context) ([]models.Tag, error) {
	return s.tags.GetAllTags(ctx)
}

// ListByFreet returns the tags on a freet in alphabetical order
func (s *TagService) ListByFreet(ctx context.Context, freetID string) ([]models.Tag, error) {
	freet, err := s.freets.GetFreetByID(ctx, freetID)
	if err != nil {
		return nil, notFoundAs(err, ErrFreetNotFound)
	}
	return s.tags.GetTagsByIDs(ctx, freet.Tags)
}

// AddToFreet labels a freet with the tag whose content matches exactly
func (s *TagService) AddToFreet(ctx context.Context, freetID, content string) error {
	freet, tag, err := s.lookup(ctx, freetID, content)
	if err != nil {
		return err
	}
	if err := s.freets.AddTag(ctx, freet.ID, tag.ID); err != nil {
		return notFoundAs(err, ErrFreetNotFound)
	}
	if err := s.tags.AddTagged(ctx, tag.ID, freet.ID); err != nil {
		return notFoundAs(err, ErrTagNotFound)
	}
	return nil
}

// RemoveFromFreet drops the tag from a freet and reports whether it was there
func (s *TagService) RemoveFromFreet(ctx context.Context, freetID, content string) (bool, error) {
	freet, tag, err := s.lookup(ctx, freetID, content)
	if err != nil {
		return false, err
	}
	onFreet, err := s.freets.RemoveTag(ctx, freet.ID, tag.ID)
	if err != nil {
		return false, err
	}
	onTag, err := s.tags.RemoveTagged(ctx, tag.ID, freet.ID)
	if err != nil {
		return false, err
	}
	return onFreet || onTag, nil
}

func (s *TagService) lookup(ctx context.Context, freetID, content string) (*models.Freet, *models.Tag, error) {
	freet, err := s.freets.GetFreetByID(ctx, freetID)
	if err != nil {
		return nil, nil, notFoundAs(err, ErrFreetNotFound)
	}
	tag, err := s.tags.GetTagByContent(ctx, strings.TrimSpace(content))
	if err != nil {
		return nil, nil, notFoundAs(err, ErrTagNotFound)
	}
	return freet, tag, nil
}
