package services

import (
	"context"
	"testing"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/repositories/repotest"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *repotest.Store
	resolver *UserResolver
	follow   *FollowService
	feed     *FeedService
	freet    *FreetService
	profile  *ProfileService
	bookmark *BookmarkService
	tag      *TagService
	user     *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repotest.NewStore()
	resolver := NewUserResolver(store.Users)
	freetService := NewFreetService(store.Freets, store.Bookmarks, store.Tags, resolver)
	profileService := NewProfileService(store.Profiles, store.Bookmarks, resolver)
	return &fixture{
		store:    store,
		resolver: resolver,
		follow:   NewFollowService(store.Follows, resolver),
		feed:     NewFeedService(store.Follows, store.Freets, resolver),
		freet:    freetService,
		profile:  profileService,
		bookmark: NewBookmarkService(store.Bookmarks, store.Freets, store.Profiles),
		tag:      NewTagService(store.Tags, store.Freets),
		user:     NewUserService(store.Users, store.Follows, store.Freets, resolver, profileService, freetService),
	}
}

func (f *fixture) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := f.user.SignUp(context.Background(), username, "password")
	require.NoError(t, err)
	return user
}

func (f *fixture) createFreet(t *testing.T, author *models.User, content string) *models.FreetWithAuthor {
	t.Helper()
	freet, err := f.freet.Create(context.Background(), author.ID, content)
	require.NoError(t, err)
	return freet
}

func feedContents(feed []models.FreetWithAuthor) []string {
	contents := make([]string, len(feed))
	for i, f := range feed {
		contents[i] = f.Content
	}
	return contents
}
