package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	f.createUser(t, "carol")

	f.createFreet(t, bob, "hello")
	f.createFreet(t, bob, "world")
	f.createFreet(t, alice, "my own")

	_, _, err := f.follow.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	_, _, err = f.follow.Follow(ctx, alice.ID, "carol")
	require.NoError(t, err)

	feed, err := f.feed.ComputeFeed(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"world", "hello"}, feedContents(feed), "newest first")
	for _, item := range feed {
		assert.Equal(t, "bob", item.Author.Username)
	}
}

func TestComputeFeedIsNotTransitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")
	f.createFreet(t, carol, "from carol")

	_, _, err := f.follow.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	_, _, err = f.follow.Follow(ctx, bob.ID, "carol")
	require.NoError(t, err)

	feed, err := f.feed.ComputeFeed(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestComputeFeedToleratesDuplicateEdges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	f.createFreet(t, bob, "one")
	f.createFreet(t, bob, "two")

	for i := 0; i < 2; i++ {
		_, err := f.follow.AddEdge(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
	}

	feed, err := f.feed.ComputeFeed(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "one"}, feedContents(feed))
}

func TestComputeFeedEmptyWhenFollowingNobody(t *testing.T) {
	f := newFixture(t)
	bob := f.createUser(t, "bob")
	f.createUser(t, "alice")
	f.createFreet(t, bob, "hello")

	feed, err := f.feed.ComputeFeed(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestComputeFeedUnknownViewer(t *testing.T) {
	f := newFixture(t)

	_, err := f.feed.ComputeFeed(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestComputeFeedDropsFreetsOfDeletedAuthors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")
	f.createFreet(t, bob, "bob's")
	f.createFreet(t, carol, "carol's")

	_, err := f.follow.AddEdge(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = f.follow.AddEdge(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	// remove the user row only, leaving carol's freet behind
	require.NoError(t, f.store.Users.DeleteUser(ctx, carol.ID))

	feed, err := f.feed.ComputeFeed(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob's"}, feedContents(feed))
}
