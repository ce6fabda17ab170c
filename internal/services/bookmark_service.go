package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookmarkService saves freets into profiles
type BookmarkService struct {
	bookmarks repositories.BookmarkRepository
	freets    repositories.FreetRepository
	profiles  repositories.ProfileRepository
}

func NewBookmarkService(bookmarks repositories.BookmarkRepository, freets repositories.FreetRepository, profiles repositories.ProfileRepository) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, freets: freets, profiles: profiles}
}

// Add bookmarks freetID into the user's profile named profileName
func (s *BookmarkService) Add(ctx context.Context, userID uint, freetID, profileName string) (*models.PopulatedBookmark, error) {
	profile, err := s.ownedProfile(ctx, userID, profileName)
	if err != nil {
		return nil, err
	}
	freet, err := s.freets.GetFreetByID(ctx, freetID)
	if err != nil {
		return nil, notFoundAs(err, ErrFreetNotFound)
	}

	bookmark := &models.Bookmark{FreetID: freet.ID, ProfileID: profile.ID}
	if err := s.bookmarks.CreateBookmark(ctx, bookmark); err != nil {
		return nil, fmt.Errorf("create bookmark: %w", err)
	}
	return &models.PopulatedBookmark{
		ID:        bookmark.ID,
		Freet:     *freet,
		Profile:   *profile,
		DateAdded: bookmark.DateAdded,
	}, nil
}

func (s *BookmarkService) ListAll(ctx context.Context) ([]models.PopulatedBookmark, error) {
	bookmarks, err := s.bookmarks.GetAllBookmarks(ctx)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, bookmarks)
}

func (s *BookmarkService) ListByProfile(ctx context.Context, userID uint, profileName string) ([]models.PopulatedBookmark, error) {
	profile, err := s.ownedProfile(ctx, userID, profileName)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.bookmarks.GetBookmarksByProfileID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, bookmarks)
}

// Search lists the profile's bookmarks whose freet content contains keyword
func (s *BookmarkService) Search(ctx context.Context, userID uint, profileName, keyword string) ([]models.PopulatedBookmark, error) {
	if keyword == "" {
		return nil, fmt.Errorf("when searching, keyword must be nonempty: %w", ErrInvalidInput)
	}
	profile, err := s.ownedProfile(ctx, userID, profileName)
	if err != nil {
		return nil, err
	}
	freetIDs, err := s.freets.FindFreetIDsByContent(ctx, keyword)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.bookmarks.GetBookmarksByProfileIDAndFreetIDs(ctx, profile.ID, freetIDs)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, bookmarks)
}

// Delete removes a bookmark saved to one of userID's profiles
func (s *BookmarkService) Delete(ctx context.Context, userID uint, bookmarkID string) error {
	bookmark, err := s.bookmarks.GetBookmarkByID(ctx, bookmarkID)
	if err != nil {
		return notFoundAs(err, ErrBookmarkNotFound)
	}
	profile, err := s.profiles.GetProfileByID(ctx, bookmark.ProfileID.Hex())
	if err != nil {
		return notFoundAs(err, ErrProfileNotFound)
	}
	if profile.UserID != userID {
		return fmt.Errorf("bookmark %s is not yours: %w", bookmarkID, ErrForbidden)
	}
	if err := s.bookmarks.DeleteBookmark(ctx, bookmark.ID); err != nil {
		return notFoundAs(err, ErrBookmarkNotFound)
	}
	return nil
}

func (s *BookmarkService) ownedProfile(ctx context.Context, userID uint, profileName string) (*models.Profile, error) {
	profile, err := s.profiles.GetProfileByNameAndUserID(ctx, profileName, userID)
	if err != nil {
		return nil, notFoundAs(err, ErrProfileNotFound)
	}
	return profile, nil
}

// populate resolves the freet and profile of each bookmark. Bookmarks whose
// freet or profile is gone are skipped.
func (s *BookmarkService) populate(ctx context.Context, bookmarks []models.Bookmark) ([]models.PopulatedBookmark, error) {
	freetIDs := make([]primitive.ObjectID, len(bookmarks))
	for i, b := range bookmarks {
		freetIDs[i] = b.FreetID
	}
	freets, err := s.freets.GetFreetsByIDs(ctx, freetIDs)
	if err != nil {
		return nil, err
	}
	freetByID := make(map[primitive.ObjectID]models.Freet, len(freets))
	for _, f := range freets {
		freetByID[f.ID] = f
	}

	profileByID := make(map[primitive.ObjectID]*models.Profile)
	out := make([]models.PopulatedBookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		freet, ok := freetByID[b.FreetID]
		if !ok {
			continue
		}
		profile, seen := profileByID[b.ProfileID]
		if !seen {
			profile, err = s.profiles.GetProfileByID(ctx, b.ProfileID.Hex())
			if err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return nil, err
			}
			profileByID[b.ProfileID] = profile
		}
		if profile == nil {
			continue
		}
		out = append(out, models.PopulatedBookmark{ID: b.ID, Freet: freet, Profile: *profile, DateAdded: b.DateAdded})
	}
	return out, nil
}
