package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GalleryRecord is one shareable collection. ShareID is the only identifier
// ever exposed in public share URLs; ID stays internal.
type GalleryRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FolderID      string             `bson:"folder_id" json:"folderId"`
	UserID        string             `bson:"user_id" json:"userId"`
	Name          string             `bson:"name" json:"name"`
	Password      string             `bson:"password,omitempty" json:"-"`
	ShareID       string             `bson:"share_id" json:"shareId"`
	ShareEnabled  bool               `bson:"share_enabled" json:"shareEnabled"`
	SharePassword string             `bson:"share_password,omitempty" json:"-"`
	ShareExpires  *time.Time         `bson:"share_expires_at,omitempty" json:"shareExpiresAt,omitempty"`
}

// ShareExpired reports whether an expiry is set and already in the past.
func (g *GalleryRecord) ShareExpired(now time.Time) bool {
	return g.ShareExpires != nil && g.ShareExpires.Before(now)
}
