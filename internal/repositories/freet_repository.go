package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/anonto42/fritter/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FreetRepository defines the interface for freet data operations
type FreetRepository interface {
	CreateFreet(ctx context.Context, freet *models.Freet) error
	GetFreetByID(ctx context.Context, id string) (*models.Freet, error)
	GetAllFreets(ctx context.Context) ([]models.Freet, error)
	GetFreetsByAuthorID(ctx context.Context, authorID uint) ([]models.Freet, error)
	GetFreetsByAuthorIDs(ctx context.Context, authorIDs []uint) ([]models.Freet, error)
	GetFreetsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Freet, error)
	FindFreetIDsByContent(ctx context.Context, keyword string) ([]primitive.ObjectID, error)
	UpdateFreetContent(ctx context.Context, id string, content string) (*models.Freet, error)
	DeleteFreet(ctx context.Context, id string) error
	AddTag(ctx context.Context, freetID, tagID primitive.ObjectID) error
	RemoveTag(ctx context.Context, freetID, tagID primitive.ObjectID) (bool, error)
}

// MongoFreetRepository implements FreetRepository for MongoDB
type MongoFreetRepository struct {
	collection *mongo.Collection
}

// NewMongoFreetRepository creates a new MongoFreetRepository
func NewMongoFreetRepository(db *mongo.Database) *MongoFreetRepository {
	return &MongoFreetRepository{collection: db.Collection("freets")}
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date_created", Value: -1}})
}

// CreateFreet creates a new freet in MongoDB
func (r *MongoFreetRepository) CreateFreet(ctx context.Context, freet *models.Freet) error {
	freet.ID = primitive.NewObjectID()
	freet.DateCreated = time.Now()
	freet.DateModified = freet.DateCreated
	if freet.Tags == nil {
		freet.Tags = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, freet)
	return err
}

// GetFreetByID retrieves a freet by ID from MongoDB
func (r *MongoFreetRepository) GetFreetByID(ctx context.Context, id string) (*models.Freet, error) {
	objID, err := objectIDFromHex("freet", id)
	if err != nil {
		return nil, err
	}
	var freet models.Freet
	if err := findOne(ctx, r.collection, "freet", bson.M{"_id": objID}, &freet); err != nil {
		return nil, err
	}
	return &freet, nil
}

// GetAllFreets retrieves every freet, most recent first
func (r *MongoFreetRepository) GetAllFreets(ctx context.Context) ([]models.Freet, error) {
	return findAll[models.Freet](ctx, r.collection, bson.D{}, newestFirst())
}

func (r *MongoFreetRepository) GetFreetsByAuthorID(ctx context.Context, authorID uint) ([]models.Freet, error) {
	return findAll[models.Freet](ctx, r.collection, bson.M{"author_id": authorID}, newestFirst())
}

// GetFreetsByAuthorIDs retrieves every freet written by any of authorIDs, most recent first
func (r *MongoFreetRepository) GetFreetsByAuthorIDs(ctx context.Context, authorIDs []uint) ([]models.Freet, error) {
	if len(authorIDs) == 0 {
		return []models.Freet{}, nil
	}
	return findAll[models.Freet](ctx, r.collection, bson.M{"author_id": bson.M{"$in": authorIDs}}, newestFirst())
}

func (r *MongoFreetRepository) GetFreetsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Freet, error) {
	if len(ids) == 0 {
		return []models.Freet{}, nil
	}
	return findAll[models.Freet](ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}})
}

// FindFreetIDsByContent returns the IDs of freets whose content contains keyword literally
func (r *MongoFreetRepository) FindFreetIDsByContent(ctx context.Context, keyword string) ([]primitive.ObjectID, error) {
	filter := bson.M{"content": primitive.Regex{Pattern: regexp.QuoteMeta(keyword)}}
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	freets, err := findAll[models.Freet](ctx, r.collection, filter, opts)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(freets))
	for i, f := range freets {
		ids[i] = f.ID
	}
	return ids, nil
}

// UpdateFreetContent replaces the content of a freet and returns the updated document
func (r *MongoFreetRepository) UpdateFreetContent(ctx context.Context, id string, content string) (*models.Freet, error) {
	objID, err := objectIDFromHex("freet", id)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"content":       content,
			"date_modified": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var freet models.Freet
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&freet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("freet %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &freet, nil
}

// DeleteFreet deletes a freet by ID from MongoDB
func (r *MongoFreetRepository) DeleteFreet(ctx context.Context, id string) error {
	objID, err := objectIDFromHex("freet", id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("freet %s: %w", id, ErrNotFound)
	}
	return nil
}

// AddTag records tagID on the freet, once
func (r *MongoFreetRepository) AddTag(ctx context.Context, freetID, tagID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": freetID}, bson.M{"$addToSet": bson.M{"tags": tagID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("freet %s: %w", freetID.Hex(), ErrNotFound)
	}
	return nil
}

// RemoveTag drops tagID from the freet and reports whether it was present
func (r *MongoFreetRepository) RemoveTag(ctx context.Context, freetID, tagID primitive.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": freetID}, bson.M{"$pull": bson.M{"tags": tagID}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
