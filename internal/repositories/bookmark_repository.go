package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/fritter/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookmarkRepository defines the interface for bookmark operations
type BookmarkRepository interface {
	CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error
	GetBookmarkByID(ctx context.Context, id string) (*models.Bookmark, error)
	GetAllBookmarks(ctx context.Context) ([]models.Bookmark, error)
	GetBookmarksByProfileID(ctx context.Context, profileID primitive.ObjectID) ([]models.Bookmark, error)
	GetBookmarksByProfileIDAndFreetIDs(ctx context.Context, profileID primitive.ObjectID, freetIDs []primitive.ObjectID) ([]models.Bookmark, error)
	DeleteBookmark(ctx context.Context, id primitive.ObjectID) error
	DeleteBookmarksByProfileID(ctx context.Context, profileID primitive.ObjectID) (int64, error)
	DeleteBookmarksByFreetID(ctx context.Context, freetID primitive.ObjectID) (int64, error)
}

// MongoBookmarkRepository implements BookmarkRepository
type MongoBookmarkRepository struct {
	collection *mongo.Collection
}

func NewMongoBookmarkRepository(db *mongo.Database) *MongoBookmarkRepository {
	return &MongoBookmarkRepository{collection: db.Collection("bookmarks")}
}

func recentlyAddedFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date_added", Value: -1}})
}

func (r *MongoBookmarkRepository) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	bookmark.ID = primitive.NewObjectID()
	if bookmark.DateAdded.IsZero() {
		bookmark.DateAdded = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, bookmark)
	return err
}

func (r *MongoBookmarkRepository) GetBookmarkByID(ctx context.Context, id string) (*models.Bookmark, error) {
	objID, err := objectIDFromHex("bookmark", id)
	if err != nil {
		return nil, err
	}
	var bookmark models.Bookmark
	if err := findOne(ctx, r.collection, "bookmark", bson.M{"_id": objID}, &bookmark); err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *MongoBookmarkRepository) GetAllBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	return findAll[models.Bookmark](ctx, r.collection, bson.D{}, recentlyAddedFirst())
}

func (r *MongoBookmarkRepository) GetBookmarksByProfileID(ctx context.Context, profileID primitive.ObjectID) ([]models.Bookmark, error) {
	return findAll[models.Bookmark](ctx, r.collection, bson.M{"profile_id": profileID}, recentlyAddedFirst())
}

func (r *MongoBookmarkRepository) GetBookmarksByProfileIDAndFreetIDs(ctx context.Context, profileID primitive.ObjectID, freetIDs []primitive.ObjectID) ([]models.Bookmark, error) {
	if len(freetIDs) == 0 {
		return []models.Bookmark{}, nil
	}
	filter := bson.M{"profile_id": profileID, "freet_id": bson.M{"$in": freetIDs}}
	return findAll[models.Bookmark](ctx, r.collection, filter, recentlyAddedFirst())
}

func (r *MongoBookmarkRepository) DeleteBookmark(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("bookmark %s: %w", id.Hex(), ErrNotFound)
	}
	return nil
}

func (r *MongoBookmarkRepository) DeleteBookmarksByProfileID(ctx context.Context, profileID primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"profile_id": profileID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoBookmarkRepository) DeleteBookmarksByFreetID(ctx context.Context, freetID primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"freet_id": freetID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
