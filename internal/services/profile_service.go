package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/repositories"
)

// ProfileService manages the named profiles a user saves bookmarks into.
// Profile names are compared case-insensitively.
type ProfileService struct {
	profiles  repositories.ProfileRepository
	bookmarks repositories.BookmarkRepository
	resolver  *UserResolver
}

func NewProfileService(profiles repositories.ProfileRepository, bookmarks repositories.BookmarkRepository, resolver *UserResolver) *ProfileService {
	return &ProfileService{profiles: profiles, bookmarks: bookmarks, resolver: resolver}
}

func (s *ProfileService) Create(ctx context.Context, userID uint, profileName string) (*models.PopulatedProfile, error) {
	name := strings.TrimSpace(profileName)
	if name == "" {
		return nil, fmt.Errorf("profile name must be nonempty: %w", ErrInvalidInput)
	}
	user, err := s.resolver.ResolveID(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, err = s.profiles.GetProfileByNameAndUserID(ctx, name, user.ID)
	if err == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrProfileExists)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	profile := &models.Profile{ProfileName: name, UserID: user.ID}
	if err := s.profiles.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return &models.PopulatedProfile{Profile: *profile, User: *user}, nil
}

func (s *ProfileService) ListAll(ctx context.Context) ([]models.PopulatedProfile, error) {
	profiles, err := s.profiles.GetAllProfiles(ctx)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, profiles)
}

func (s *ProfileService) ListByUsername(ctx context.Context, username string) ([]models.PopulatedProfile, error) {
	user, err := s.resolver.ResolveUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.GetProfilesByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	out := make([]models.PopulatedProfile, len(profiles))
	for i, p := range profiles {
		out[i] = models.PopulatedProfile{Profile: p, User: *user}
	}
	return out, nil
}

// GetOwned finds the profile called profileName belonging to userID
func (s *ProfileService) GetOwned(ctx context.Context, userID uint, profileName string) (*models.Profile, error) {
	profile, err := s.profiles.GetProfileByNameAndUserID(ctx, profileName, userID)
	if err != nil {
		return nil, notFoundAs(err, ErrProfileNotFound)
	}
	return profile, nil
}

// Delete removes the user's profile named profileName and every bookmark saved to it
func (s *ProfileService) Delete(ctx context.Context, userID uint, profileName string) error {
	profile, err := s.GetOwned(ctx, userID, profileName)
	if err != nil {
		return err
	}
	return s.deleteCascade(ctx, profile)
}

// DeleteAllOf removes every profile of userID, each followed by its bookmarks
func (s *ProfileService) DeleteAllOf(ctx context.Context, userID uint) error {
	profiles, err := s.profiles.GetProfilesByUserID(ctx, userID)
	if err != nil {
		return err
	}
	for i := range profiles {
		if err := s.deleteCascade(ctx, &profiles[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProfileService) deleteCascade(ctx context.Context, profile *models.Profile) error {
	if err := s.profiles.DeleteProfile(ctx, profile.ID); err != nil {
		return notFoundAs(err, ErrProfileNotFound)
	}
	if _, err := s.bookmarks.DeleteBookmarksByProfileID(ctx, profile.ID); err != nil {
		return fmt.Errorf("delete bookmarks of profile %s: %w", profile.ID.Hex(), err)
	}
	return nil
}

func (s *ProfileService) populate(ctx context.Context, profiles []models.Profile) ([]models.PopulatedProfile, error) {
	ids := make([]uint, len(profiles))
	for i, p := range profiles {
		ids[i] = p.UserID
	}
	users, err := s.resolver.Populate(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.PopulatedProfile, 0, len(profiles))
	for _, p := range profiles {
		if u, ok := users[p.UserID]; ok {
			out = append(out, models.PopulatedProfile{Profile: p, User: u})
		}
	}
	return out, nil
}
