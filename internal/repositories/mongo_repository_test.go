package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// sentCommand pops the next command the client sent to the mock deployment
func sentCommand(mt *mtest.T, name string) bson.Raw {
	mt.Helper()
	started := mt.GetStartedEvent()
	require.NotNil(mt, started, "no %s command sent", name)
	require.Equal(mt, name, started.CommandName)
	return started.Command
}

func sentFilter(mt *mtest.T) bson.Raw {
	mt.Helper()
	return sentCommand(mt, "find").Lookup("filter").Document()
}

// sentDeleteQuery returns the q document of the single delete statement sent
func sentDeleteQuery(mt *mtest.T) bson.Raw {
	mt.Helper()
	deletes, err := sentCommand(mt, "delete").Lookup("deletes").Array().Values()
	require.NoError(mt, err)
	require.Len(mt, deletes, 1)
	return deletes[0].Document().Lookup("q").Document()
}

func keysOf(mt *mtest.T, doc bson.Raw) []string {
	mt.Helper()
	elems, err := doc.Elements()
	require.NoError(mt, err)
	keys := make([]string, len(elems))
	for i, e := range elems {
		keys[i] = e.Key()
	}
	return keys
}

func int64sOf(mt *mtest.T, arr bson.Raw) []int64 {
	mt.Helper()
	values, err := arr.Values()
	require.NoError(mt, err)
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = v.AsInt64()
	}
	return out
}

func followDoc(id primitive.ObjectID, follower, followee int32) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "follower_id", Value: follower},
		{Key: "followee_id", Value: followee},
	}
}

func TestMongoFollowRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewMongoFollowRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		follow := &models.Follow{FollowerID: 1, FolloweeID: 2}
		require.NoError(mt, repo.CreateFollow(ctx, follow))
		assert.False(mt, follow.ID.IsZero())
	})

	mt.Run("get by follower decodes every edge", func(mt *mtest.T) {
		repo := NewMongoFollowRepository(mt.DB)
		ns := mt.DB.Name() + ".follows"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			followDoc(primitive.NewObjectID(), 1, 2),
			followDoc(primitive.NewObjectID(), 1, 3),
		))

		edges, err := repo.GetFollowsByFollowerID(ctx, 1)
		require.NoError(mt, err)
		require.Len(mt, edges, 2)

		filter := sentFilter(mt)
		assert.Equal(mt, []string{"follower_id"}, keysOf(mt, filter))
		assert.Equal(mt, int64(1), filter.Lookup("follower_id").AsInt64())
		assert.Equal(mt, uint(2), edges[0].FolloweeID)
		assert.Equal(mt, uint(3), edges[1].FolloweeID)
	})

	mt.Run("empty result is an empty slice", func(mt *mtest.T) {
		repo := NewMongoFollowRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".follows", mtest.FirstBatch))

		edges, err := repo.GetFollowsByFolloweeID(ctx, 9)
		require.NoError(mt, err)
		assert.NotNil(mt, edges)
		assert.Empty(mt, edges)

		filter := sentFilter(mt)
		assert.Equal(mt, []string{"followee_id"}, keysOf(mt, filter))
		assert.Equal(mt, int64(9), filter.Lookup("followee_id").AsInt64())
	})

	mt.Run("get by pair miss is ErrNotFound", func(mt *mtest.T) {
		repo := NewMongoFollowRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".follows", mtest.FirstBatch))

		_, err := repo.GetFollowByPair(ctx, 1, 2)
		assert.ErrorIs(mt, err, ErrNotFound)

		filter := sentFilter(mt)
		assert.ElementsMatch(mt, []string{"follower_id", "followee_id"}, keysOf(mt, filter))
		assert.Equal(mt, int64(1), filter.Lookup("follower_id").AsInt64())
		assert.Equal(mt, int64(2), filter.Lookup("followee_id").AsInt64())
	})

	mt.Run("get by malformed id", func(mt *mtest.T) {
		repo := NewMongoFollowRepository(mt.DB)

		_, err := repo.GetFollowByID(ctx, "nope")
		assert.ErrorIs(mt, err, ErrInvalidID)
	})

	mt.Run("delete reports whether anything matched", func(mt *mtest.T) {
		repo := NewMongoFollowRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		deleted, err := repo.DeleteFollow(ctx, 1, 2)
		require.NoError(mt, err)
		assert.True(mt, deleted)

		q := sentDeleteQuery(mt)
		assert.ElementsMatch(mt, []string{"follower_id", "followee_id"}, keysOf(mt, q))
		assert.Equal(mt, int64(1), q.Lookup("follower_id").AsInt64())
		assert.Equal(mt, int64(2), q.Lookup("followee_id").AsInt64())

		deleted, err = repo.DeleteFollow(ctx, 1, 2)
		require.NoError(mt, err)
		assert.False(mt, deleted)
	})

	mt.Run("delete by user counts both directions", func(mt *mtest.T) {
		repo := NewMongoFollowRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}))

		n, err := repo.DeleteFollowsByUserID(ctx, 1)
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)

		q := sentDeleteQuery(mt)
		assert.Equal(mt, []string{"$or"}, keysOf(mt, q))
		branches, err := q.Lookup("$or").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, branches, 2)
		follower, followee := branches[0].Document(), branches[1].Document()
		assert.Equal(mt, []string{"follower_id"}, keysOf(mt, follower))
		assert.Equal(mt, int64(1), follower.Lookup("follower_id").AsInt64())
		assert.Equal(mt, []string{"followee_id"}, keysOf(mt, followee))
		assert.Equal(mt, int64(1), followee.Lookup("followee_id").AsInt64())
	})

	mt.Run("store failure propagates", func(mt *mtest.T) {
		repo := NewMongoFollowRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
		}))

		_, err := repo.GetFollowsByFollowerID(ctx, 1)
		assert.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrNotFound)
	})
}

func TestMongoFreetRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create stamps dates and empty tags", func(mt *mtest.T) {
		repo := NewMongoFreetRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		freet := &models.Freet{AuthorID: 1, Content: "hi"}
		require.NoError(mt, repo.CreateFreet(ctx, freet))
		assert.False(mt, freet.ID.IsZero())
		assert.False(mt, freet.DateCreated.IsZero())
		assert.Equal(mt, freet.DateCreated, freet.DateModified)
		assert.NotNil(mt, freet.Tags)
	})

	mt.Run("by author ids with no ids skips the query", func(mt *mtest.T) {
		repo := NewMongoFreetRepository(mt.DB)

		freets, err := repo.GetFreetsByAuthorIDs(ctx, nil)
		require.NoError(mt, err)
		assert.Empty(mt, freets)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("by author ids decodes results", func(mt *mtest.T) {
		repo := NewMongoFreetRepository(mt.DB)
		created := time.Date(2022, time.October, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".freets", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "author_id", Value: int32(2)},
				{Key: "content", Value: "world"},
				{Key: "tags", Value: bson.A{}},
				{Key: "date_created", Value: created},
				{Key: "date_modified", Value: created},
			},
		))

		freets, err := repo.GetFreetsByAuthorIDs(ctx, []uint{2, 3})
		require.NoError(mt, err)
		require.Len(mt, freets, 1)

		cmd := sentCommand(mt, "find")
		filter := cmd.Lookup("filter").Document()
		assert.Equal(mt, []string{"author_id"}, keysOf(mt, filter))
		in := filter.Lookup("author_id").Document()
		assert.Equal(mt, []string{"$in"}, keysOf(mt, in))
		assert.Equal(mt, []int64{2, 3}, int64sOf(mt, in.Lookup("$in").Array()))
		sort := cmd.Lookup("sort").Document()
		assert.Equal(mt, []string{"date_created"}, keysOf(mt, sort))
		assert.Equal(mt, int64(-1), sort.Lookup("date_created").AsInt64())
		assert.Equal(mt, "world", freets[0].Content)
		assert.Equal(mt, uint(2), freets[0].AuthorID)
		assert.True(mt, created.Equal(freets[0].DateCreated))
	})

	mt.Run("update of missing freet", func(mt *mtest.T) {
		repo := NewMongoFreetRepository(mt.DB)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: nil},
		})

		_, err := repo.UpdateFreetContent(ctx, primitive.NewObjectID().Hex(), "new")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete of missing freet", func(mt *mtest.T) {
		repo := NewMongoFreetRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.DeleteFreet(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("add tag to missing freet", func(mt *mtest.T) {
		repo := NewMongoFreetRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.AddTag(ctx, primitive.NewObjectID(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestMongoProfileRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("lookup by name", func(mt *mtest.T) {
		repo := NewMongoProfileRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".profiles", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: id},
				{Key: "profile_name", Value: "Work"},
				{Key: "user_id", Value: int32(4)},
			},
		))

		profile, err := repo.GetProfileByNameAndUserID(ctx, " work ", 4)
		require.NoError(mt, err)

		filter := sentFilter(mt)
		pattern, options := filter.Lookup("profile_name").Regex()
		assert.Equal(mt, "^work$", pattern)
		assert.Equal(mt, "i", options)
		assert.Equal(mt, int64(4), filter.Lookup("user_id").AsInt64())
		assert.Equal(mt, id, profile.ID)
		assert.Equal(mt, "Work", profile.ProfileName)
	})

	mt.Run("delete of missing profile", func(mt *mtest.T) {
		repo := NewMongoProfileRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(mt, repo.DeleteProfile(ctx, primitive.NewObjectID()), ErrNotFound)
	})
}

func TestProfileNameFilter(t *testing.T) {
	re := profileNameFilter("  a.b (c) ")
	assert.Equal(t, `^a\.b \(c\)$`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestMongoBookmarkRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("cascade delete by profile returns count", func(mt *mtest.T) {
		repo := NewMongoBookmarkRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 4}))

		profileID := primitive.NewObjectID()
		n, err := repo.DeleteBookmarksByProfileID(ctx, profileID)
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), n)

		q := sentDeleteQuery(mt)
		assert.Equal(mt, []string{"profile_id"}, keysOf(mt, q))
		assert.Equal(mt, profileID, q.Lookup("profile_id").ObjectID())
	})

	mt.Run("filter by freet ids with none skips the query", func(mt *mtest.T) {
		repo := NewMongoBookmarkRepository(mt.DB)

		bookmarks, err := repo.GetBookmarksByProfileIDAndFreetIDs(ctx, primitive.NewObjectID(), nil)
		require.NoError(mt, err)
		assert.Empty(mt, bookmarks)
	})
}

func TestMongoTagRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("remove tagged reports modification", func(mt *mtest.T) {
		repo := NewMongoTagRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}),
		)

		removed, err := repo.RemoveTagged(ctx, primitive.NewObjectID(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.True(mt, removed)

		removed, err = repo.RemoveTagged(ctx, primitive.NewObjectID(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.False(mt, removed)
	})

	mt.Run("get by content miss", func(mt *mtest.T) {
		repo := NewMongoTagRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".tags", mtest.FirstBatch))

		_, err := repo.GetTagByContent(ctx, "nothing")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
