package repositories

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/anonto42/fritter/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileRepository defines the interface for profile data operations.
// Lookups by profile name are case-insensitive, unlike username lookups.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetAllProfiles(ctx context.Context) ([]models.Profile, error)
	GetProfilesByUserID(ctx context.Context, userID uint) ([]models.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	GetProfileByName(ctx context.Context, profileName string) (*models.Profile, error)
	GetProfileByNameAndUserID(ctx context.Context, profileName string, userID uint) (*models.Profile, error)
	DeleteProfile(ctx context.Context, id primitive.ObjectID) error
}

// MongoProfileRepository implements ProfileRepository for MongoDB
type MongoProfileRepository struct {
	collection *mongo.Collection
}

func NewMongoProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{collection: db.Collection("profiles")}
}

// profileNameFilter matches the whole trimmed name, ignoring case
func profileNameFilter(profileName string) primitive.Regex {
	return primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(profileName)) + "$",
		Options: "i",
	}
}

func (r *MongoProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	profile.ID = primitive.NewObjectID()
	profile.DateCreated = time.Now()
	_, err := r.collection.InsertOne(ctx, profile)
	return err
}

func (r *MongoProfileRepository) GetAllProfiles(ctx context.Context) ([]models.Profile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_created", Value: -1}})
	return findAll[models.Profile](ctx, r.collection, bson.D{}, opts)
}

func (r *MongoProfileRepository) GetProfilesByUserID(ctx context.Context, userID uint) ([]models.Profile, error) {
	return findAll[models.Profile](ctx, r.collection, bson.M{"user_id": userID})
}

func (r *MongoProfileRepository) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	objID, err := objectIDFromHex("profile", id)
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := findOne(ctx, r.collection, "profile", bson.M{"_id": objID}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByName finds any user's profile with the given name
func (r *MongoProfileRepository) GetProfileByName(ctx context.Context, profileName string) (*models.Profile, error) {
	var profile models.Profile
	filter := bson.M{"profile_name": profileNameFilter(profileName)}
	if err := findOne(ctx, r.collection, "profile", filter, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *MongoProfileRepository) GetProfileByNameAndUserID(ctx context.Context, profileName string, userID uint) (*models.Profile, error) {
	var profile models.Profile
	filter := bson.M{"profile_name": profileNameFilter(profileName), "user_id": userID}
	if err := findOne(ctx, r.collection, "profile", filter, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *MongoProfileRepository) DeleteProfile(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("profile %s: %w", id.Hex(), ErrNotFound)
	}
	return nil
}
