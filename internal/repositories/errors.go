package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned by point lookups that match nothing
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned when a document ID is not a valid ObjectID hex string
	ErrInvalidID = errors.New("invalid id format")
)

func objectIDFromHex(kind, id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s id %q: %w", kind, id, ErrInvalidID)
	}
	return objID, nil
}

// findOne decodes a single document into out, translating mongo.ErrNoDocuments
func findOne(ctx context.Context, coll *mongo.Collection, kind string, filter interface{}, out interface{}) error {
	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", kind, ErrNotFound)
	}
	return err
}

// findAll runs a query and decodes every result. The returned slice is never nil.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []T
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}
