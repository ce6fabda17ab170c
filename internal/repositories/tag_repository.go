package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/fritter/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TagRepository defines the interface for tag operations
type TagRepository interface {
	CreateTag(ctx context.Context, tag *models.Tag) error
	GetTagByID(ctx context.Context, id string) (*models.Tag, error)
	GetTagByContent(ctx context.Context, content string) (*models.Tag, error)
	GetTagsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Tag, error)
	GetAllTags(ctx context.Context) ([]models.Tag, error)
	AddTagged(ctx context.Context, tagID, freetID primitive.ObjectID) error
	RemoveTagged(ctx context.Context, tagID, freetID primitive.ObjectID) (bool, error)
	RemoveFreetFromAllTags(ctx context.Context, freetID primitive.ObjectID) error
}

type MongoTagRepository struct {
	collection *mongo.Collection
}

func NewMongoTagRepository(db *mongo.Database) *MongoTagRepository {
	return &MongoTagRepository{collection: db.Collection("tags")}
}

func (r *MongoTagRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	tag.ID = primitive.NewObjectID()
	if tag.Tagged == nil {
		tag.Tagged = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, tag)
	return err
}

func (r *MongoTagRepository) GetTagByID(ctx context.Context, id string) (*models.Tag, error) {
	objID, err := objectIDFromHex("tag", id)
	if err != nil {
		return nil, err
	}
	var tag models.Tag
	if err := findOne(ctx, r.collection, "tag", bson.M{"_id": objID}, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagByContent matches content exactly
func (r *MongoTagRepository) GetTagByContent(ctx context.Context, content string) (*models.Tag, error) {
	var tag models.Tag
	if err := findOne(ctx, r.collection, "tag", bson.M{"content": content}, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *MongoTagRepository) GetTagsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "content", Value: 1}})
	return findAll[models.Tag](ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}}, opts)
}

// GetAllTags returns every tag in alphabetical order
func (r *MongoTagRepository) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	opts := options.Find().SetSort(bson.D{{Key: "content", Value: 1}})
	return findAll[models.Tag](ctx, r.collection, bson.D{}, opts)
}

func (r *MongoTagRepository) AddTagged(ctx context.Context, tagID, freetID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": tagID}, bson.M{"$addToSet": bson.M{"tagged": freetID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("tag %s: %w", tagID.Hex(), ErrNotFound)
	}
	return nil
}

func (r *MongoTagRepository) RemoveTagged(ctx context.Context, tagID, freetID primitive.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": tagID}, bson.M{"$pull": bson.M{"tagged": freetID}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// RemoveFreetFromAllTags is the cascade hook for freet deletion
func (r *MongoTagRepository) RemoveFreetFromAllTags(ctx context.Context, freetID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx, bson.M{"tagged": freetID}, bson.M{"$pull": bson.M{"tagged": freetID}})
	return err
}
