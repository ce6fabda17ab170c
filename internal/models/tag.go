package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Tag labels freets. The relation is stored on both sides: Tag.Tagged and Freet.Tags.
type Tag struct {
	ID      primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Content string               `json:"content" bson:"content"`
	Tagged  []primitive.ObjectID `json:"tagged" bson:"tagged"`
}

type CreateTagRequest struct {
	Content string `json:"content" validate:"required,min=1,max=50"`
}

// TagFreetRequest adds or removes the tag with Content on a freet
type TagFreetRequest struct {
	FreetID string `json:"freetId" validate:"required"`
	Content string `json:"content" validate:"required"`
}
