package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/fritter/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FollowRepository defines the interface for follow edge storage.
// It performs no existence, self-follow or duplicate checks.
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.Follow) error
	GetFollowByID(ctx context.Context, id string) (*models.Follow, error)
	GetFollowByPair(ctx context.Context, followerID, followeeID uint) (*models.Follow, error)
	GetFollowsByFollowerID(ctx context.Context, followerID uint) ([]models.Follow, error)
	GetFollowsByFolloweeID(ctx context.Context, followeeID uint) ([]models.Follow, error)
	DeleteFollow(ctx context.Context, followerID, followeeID uint) (bool, error)
	DeleteFollowsByUserID(ctx context.Context, userID uint) (int64, error)
}

// MongoFollowRepository implements FollowRepository for MongoDB
type MongoFollowRepository struct {
	collection *mongo.Collection
}

// NewMongoFollowRepository creates a new MongoFollowRepository
func NewMongoFollowRepository(db *mongo.Database) *MongoFollowRepository {
	return &MongoFollowRepository{collection: db.Collection("follows")}
}

// CreateFollow inserts a new edge and assigns its ID
func (r *MongoFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	follow.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, follow)
	return err
}

func (r *MongoFollowRepository) GetFollowByID(ctx context.Context, id string) (*models.Follow, error) {
	objID, err := objectIDFromHex("follow", id)
	if err != nil {
		return nil, err
	}
	var follow models.Follow
	if err := findOne(ctx, r.collection, "follow", bson.M{"_id": objID}, &follow); err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *MongoFollowRepository) GetFollowByPair(ctx context.Context, followerID, followeeID uint) (*models.Follow, error) {
	var follow models.Follow
	filter := bson.M{"follower_id": followerID, "followee_id": followeeID}
	if err := findOne(ctx, r.collection, "follow", filter, &follow); err != nil {
		return nil, err
	}
	return &follow, nil
}

// GetFollowsByFollowerID returns every edge leaving followerID
func (r *MongoFollowRepository) GetFollowsByFollowerID(ctx context.Context, followerID uint) ([]models.Follow, error) {
	return findAll[models.Follow](ctx, r.collection, bson.M{"follower_id": followerID})
}

// GetFollowsByFolloweeID returns every edge pointing at followeeID
func (r *MongoFollowRepository) GetFollowsByFolloweeID(ctx context.Context, followeeID uint) ([]models.Follow, error) {
	return findAll[models.Follow](ctx, r.collection, bson.M{"followee_id": followeeID})
}

// DeleteFollow removes every edge for the ordered pair and reports whether any existed
func (r *MongoFollowRepository) DeleteFollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"follower_id": followerID, "followee_id": followeeID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// DeleteFollowsByUserID removes every edge touching userID in either direction
func (r *MongoFollowRepository) DeleteFollowsByUserID(ctx context.Context, userID uint) (int64, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"follower_id": userID},
		bson.M{"followee_id": userID},
	}}
	res, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete follows of user %d: %w", userID, err)
	}
	return res.DeletedCount, nil
}
