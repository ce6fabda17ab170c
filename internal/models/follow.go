package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Follow is a directed edge: FollowerID receives FolloweeID's freets in their feed.
// Unlike bookmarks, edges carry no timestamp.
type Follow struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	FollowerID uint               `json:"follower_id" bson:"follower_id"`
	FolloweeID uint               `json:"followee_id" bson:"followee_id"`
}

// PopulatedFollow is a Follow with both endpoints resolved from the user directory
type PopulatedFollow struct {
	ID       primitive.ObjectID
	Follower User
	Followee User
}
