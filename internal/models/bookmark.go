package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookmark saves a freet into one of the user's profiles
type Bookmark struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	FreetID   primitive.ObjectID `json:"freet_id" bson:"freet_id"`
	ProfileID primitive.ObjectID `json:"profile_id" bson:"profile_id"`
	DateAdded time.Time          `json:"date_added" bson:"date_added"`
}

// PopulatedBookmark carries the referenced freet and profile
type PopulatedBookmark struct {
	ID        primitive.ObjectID
	Freet     Freet
	Profile   Profile
	DateAdded time.Time
}

type CreateBookmarkRequest struct {
	FreetID     string `json:"freetId" validate:"required"`
	ProfileName string `json:"profileName" validate:"required"`
}
