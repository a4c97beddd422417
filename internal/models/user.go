package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string        `json:"name" bson:"name"`
	Email        string        `json:"email" bson:"email"`
	PasswordHash string        `json:"-" bson:"passwordHash"`
	Avatar       string        `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt    int           `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int           `json:"updatedAt" bson:"updatedAt"`
}

// UserSummary is the slice of a user exposed when decorating profiles and posts.
type UserSummary struct {
	ID     string `json:"id" bson:"id"`
	Name   string `json:"name" bson:"name"`
	Avatar string `json:"avatar,omitempty" bson:"avatar,omitempty"`
}

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
