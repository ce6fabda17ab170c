package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Freet is a short post stored in MongoDB
type Freet struct {
	ID           primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	AuthorID     uint                 `json:"author_id" bson:"author_id"`
	Content      string               `json:"content" bson:"content"`
	Tags         []primitive.ObjectID `json:"tags" bson:"tags"`
	DateCreated  time.Time            `json:"date_created" bson:"date_created"`
	DateModified time.Time            `json:"date_modified" bson:"date_modified"`
}

// FreetWithAuthor is a Freet whose author reference has been populated
type FreetWithAuthor struct {
	Freet
	Author User
}

// CreateFreetRequest defines the request body for creating a new freet
type CreateFreetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=140"`
}

// UpdateFreetRequest defines the request body for editing a freet
type UpdateFreetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=140"`
}
