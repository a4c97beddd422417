package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Like struct {
	UserID string `json:"userId" bson:"userId"`
}

// Comment is one record in a post's comment list, newest first.
type Comment struct {
	ID     bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID string        `json:"userId" bson:"userId"`
	Text   string        `json:"text" bson:"text"`
	Name   string        `json:"name,omitempty" bson:"name,omitempty"`
	Avatar string        `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Date   int           `json:"date" bson:"date"`
}

type Post struct {
	ID       bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID   string        `json:"userId" bson:"userId"`
	Text     string        `json:"text" bson:"text"`
	Name     string        `json:"name,omitempty" bson:"name,omitempty"`
	Avatar   string        `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Likes    []Like        `json:"likes" bson:"likes"`
	Comments []Comment     `json:"comments" bson:"comments"`
	Date     int           `json:"date" bson:"date"`
}

// LikedBy reports whether the given user already likes the post.
func (p *Post) LikedBy(userID string) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}
