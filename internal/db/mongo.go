package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectMongoDB initializes the database connection and verifies it with a
// ping before anything else starts.
func ConnectMongoDB(uri, dbName string) *mongo.Database {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		zap.L().Fatal("MongoDB connection failed", zap.Error(err))
	}

	if err := client.Ping(ctx, nil); err != nil {
		zap.L().Fatal("MongoDB ping failed", zap.Error(err))
	}

	zap.L().Info("connected to MongoDB", zap.String("database", dbName))
	return client.Database(dbName)
}
