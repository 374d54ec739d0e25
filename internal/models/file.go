package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileRecord is the metadata entry for one stored object. Within a folder
// StorageName is unique; Name and OriginalName are not.
type FileRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FolderID       string             `bson:"folder_id" json:"folderId"`
	UserID         string             `bson:"user_id" json:"userId"`
	Name           string             `bson:"name" json:"name"`
	OriginalName   string             `bson:"original_name,omitempty" json:"originalName,omitempty"`
	StorageName    string             `bson:"storage_name" json:"storageName"`
	StoragePath    string             `bson:"storage_path,omitempty" json:"storagePath,omitempty"`
	URL            string             `bson:"url" json:"url"`
	StorageURL     string             `bson:"storage_url,omitempty" json:"storageUrl,omitempty"`
	Type           string             `bson:"type,omitempty" json:"type,omitempty"`
	Size           int64              `bson:"size" json:"size"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UploadedViaAPI bool               `bson:"uploaded_via_api" json:"uploadedViaApi"`
}

// DownloadFileName is the name offered to the browser in attachment mode.
func (f *FileRecord) DownloadFileName() string {
	if f.OriginalName != "" {
		return f.OriginalName
	}
	if f.Name != "" {
		return f.Name
	}
	return "download"
}

// DeliveryURL is the URL preferred for redirect delivery, empty when the
// record has no deliverable location at all.
func (f *FileRecord) DeliveryURL() string {
	if f.StorageURL != "" {
		return f.StorageURL
	}
	return f.URL
}
