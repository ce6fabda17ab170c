package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account stored in PostgreSQL. Every document in MongoDB refers to
// a user by its numeric ID.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-"`                                         // bcrypt hash, never serialized
	FirebaseUID *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // set once the account is linked to Firebase
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserCompact is the public view of a user embedded in other responses
type UserCompact struct {
	ID       uint   `json:"_id"`
	Username string `json:"username"`
}

// ToCompact strips everything but the identity
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username}
}

type CreateLocalUserRequest struct {
	Username string `json:"username" validate:"required,username,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,username,max=50"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
