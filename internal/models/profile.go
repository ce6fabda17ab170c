package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is a named persona under a user account. Bookmarks are scoped to a profile.
type Profile struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ProfileName string             `json:"profile_name" bson:"profile_name"`
	UserID      uint               `json:"user_id" bson:"user_id"`
	DateCreated time.Time          `json:"date_created" bson:"date_created"`
}

type PopulatedProfile struct {
	Profile
	User User
}

type CreateProfileRequest struct {
	ProfileName string `json:"profileName" validate:"required,min=1,max=50"`
}
