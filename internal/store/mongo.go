package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/janwerner/fotobox/internal/models"
)

// MongoStore implements MetadataStore on top of a Mongo database with the
// collections files, galleries, api_keys and folder_settings.
type MongoStore struct {
	files    *mongo.Collection
	gals     *mongo.Collection
	keys     *mongo.Collection
	settings *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		files:    db.Collection("files"),
		gals:     db.Collection("galleries"),
		keys:     db.Collection("api_keys"),
		settings: db.Collection("folder_settings"),
	}
}

func (s *MongoStore) FileByStorageName(ctx context.Context, folderID, storageName string) (*models.FileRecord, error) {
	var file models.FileRecord
	err := s.files.FindOne(ctx, bson.M{"folder_id": folderID, "storage_name": storageName}).Decode(&file)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("file lookup failed: %w", err)
	}
	return &file, nil
}

func (s *MongoStore) FilesByFolder(ctx context.Context, folderID string) ([]models.FileRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.files.Find(ctx, bson.M{"folder_id": folderID}, opts)
	if err != nil {
		return nil, fmt.Errorf("folder listing failed: %w", err)
	}
	defer cursor.Close(ctx)

	files := []models.FileRecord{}
	if err := cursor.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("error decoding file metadata: %w", err)
	}
	return files, nil
}

func (s *MongoStore) InsertFile(ctx context.Context, file *models.FileRecord) error {
	if file.ID.IsZero() {
		file.ID = primitive.NewObjectID()
	}
	if _, err := s.files.InsertOne(ctx, file); err != nil {
		return fmt.Errorf("file insert failed: %w", err)
	}
	return nil
}

func (s *MongoStore) GalleryByID(ctx context.Context, id string) (*models.GalleryRecord, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.gallery(ctx, bson.M{"_id": objID})
}

func (s *MongoStore) GalleryByShareID(ctx context.Context, shareID string) (*models.GalleryRecord, error) {
	return s.gallery(ctx, bson.M{"share_id": shareID})
}

func (s *MongoStore) gallery(ctx context.Context, filter bson.M) (*models.GalleryRecord, error) {
	var gal models.GalleryRecord
	err := s.gals.FindOne(ctx, filter).Decode(&gal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gallery lookup failed: %w", err)
	}
	return &gal, nil
}

func (s *MongoStore) APIKey(ctx context.Context, key string) (*models.APIKeyRecord, error) {
	var rec models.APIKeyRecord
	err := s.keys.FindOne(ctx, bson.M{"key": key}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("api key lookup failed: %w", err)
	}
	return &rec, nil
}

func (s *MongoStore) FolderSettings(ctx context.Context, folderID string) (*models.FolderSettings, error) {
	var cfg models.FolderSettings
	err := s.settings.FindOne(ctx, bson.M{"folder_id": folderID}).Decode(&cfg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("folder settings lookup failed: %w", err)
	}
	return &cfg, nil
}
