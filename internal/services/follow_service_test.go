package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/fritter/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowCreatesEdgeOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	edge, created, err := f.follow.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", edge.Follower.Username)
	assert.Equal(t, bob.ID, edge.Followee.ID)

	again, created, err := f.follow.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, edge.ID, again.ID)
	assert.Equal(t, 1, f.store.Follows.Len())
}

func TestFollowSelfIsRejectedBeforeWrite(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")

	_, _, err := f.follow.Follow(context.Background(), alice.ID, "alice")
	assert.ErrorIs(t, err, ErrSelfFollow)
	assert.Equal(t, 0, f.store.Follows.Len())
}

func TestFollowUnknownOrMissingUsername(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")

	_, _, err := f.follow.Follow(context.Background(), alice.ID, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, _, err = f.follow.Follow(context.Background(), alice.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, f.store.Follows.Len())
}

func TestAddEdgeStoresDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	first, err := f.follow.AddEdge(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	second, err := f.follow.AddEdge(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, f.store.Follows.Len())
}

func TestFindByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	edge, err := f.follow.AddEdge(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	got, err := f.follow.FindByID(ctx, edge.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Follower.Username)
	assert.Equal(t, "bob", got.Followee.Username)

	_, err = f.follow.FindByID(ctx, "64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = f.follow.FindByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, repositories.ErrInvalidID)
}

func TestFindByFollowerAndFolloweeUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	f.createUser(t, "bob")
	f.createUser(t, "carol")

	_, _, err := f.follow.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	_, _, err = f.follow.Follow(ctx, alice.ID, "carol")
	require.NoError(t, err)

	following, err := f.follow.FindByFollowerUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, following, 2)
	assert.ElementsMatch(t, []string{"bob", "carol"}, []string{following[0].Followee.Username, following[1].Followee.Username})

	followers, err := f.follow.FindByFolloweeUsername(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Follower.Username)

	none, err := f.follow.FindByFolloweeUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindByFollowerUsernameIsStableWithoutWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	f.createUser(t, "bob")
	_, _, err := f.follow.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)

	first, err := f.follow.FindByFollowerUsername(ctx, "alice")
	require.NoError(t, err)
	second, err := f.follow.FindByFollowerUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindByFollowerUsernameUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.follow.FindByFollowerUsername(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.follow.FindByFolloweeUsername(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRemoveEdge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	f.createUser(t, "carol")

	_, _, err := f.follow.Follow(ctx, alice.ID, "carol")
	require.NoError(t, err)
	_, _, err = f.follow.Follow(ctx, bob.ID, "carol")
	require.NoError(t, err)

	removed, err := f.follow.RemoveEdge(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.False(t, removed, "no edge alice->bob")
	assert.Equal(t, 2, f.store.Follows.Len())

	removed, err = f.follow.RemoveEdge(ctx, alice.ID, "carol")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, f.store.Follows.Len())

	followers, err := f.follow.FindByFolloweeUsername(ctx, "carol")
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "bob", followers[0].Follower.Username)
}

func TestRemoveEdgeDeletesDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	for i := 0; i < 2; i++ {
		_, err := f.follow.AddEdge(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
	}

	removed, err := f.follow.RemoveEdge(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 0, f.store.Follows.Len())
}

func TestAddEdgeWithUnknownEndpoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	edge, err := f.follow.AddEdge(ctx, alice.ID, 999)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.Follows.Len())
	assert.Equal(t, "alice", edge.Follower.Username)
	assert.Zero(t, edge.Followee.ID)

	got, err := f.follow.FindByID(ctx, edge.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, edge.ID, got.ID)
	assert.Zero(t, got.Followee.ID)
}

func TestUnfollowReturnsFollowee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	f.createUser(t, "bob")
	_, _, err := f.follow.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)

	followee, deleted, err := f.follow.Unfollow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, "bob", followee.Username)

	followee, deleted, err = f.follow.Unfollow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, "bob", followee.Username)
}

func TestRemoveEdgeUnknownFollowee(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")

	_, err := f.follow.RemoveEdge(context.Background(), alice.ID, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFollowPropagatesStoreFailure(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	f.createUser(t, "bob")
	storeErr := errors.New("write failed")
	f.store.Follows.Err = storeErr

	_, _, err := f.follow.Follow(context.Background(), alice.ID, "bob")
	assert.ErrorIs(t, err, storeErr)
}
