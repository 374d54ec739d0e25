package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"github.com/janwerner/fotobox/internal/config"
	"github.com/janwerner/fotobox/internal/db"
	"github.com/janwerner/fotobox/internal/handlers"
	"github.com/janwerner/fotobox/internal/middleware"
	"github.com/janwerner/fotobox/internal/services"
	"github.com/janwerner/fotobox/internal/storage"
	"github.com/janwerner/fotobox/internal/store"
)

func main() {
	log, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	cfg := config.Load()

	mongoDB := db.ConnectMongoDB(cfg.MongoURI, cfg.MongoDB)
	metadata := store.NewMongoStore(mongoDB)

	blobs, err := storage.NewMinioBlobStore(storage.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		PublicURL: cfg.MinioPublicURL,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatal("MinIO initialization failed", zap.Error(err))
	}

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())
	// Legacy URL migration runs ahead of every route.
	app.Use(middleware.LegacyRewrite())

	gateway := &handlers.Gateway{
		Resolver:      services.NewResolver(metadata),
		Delivery:      services.NewDelivery(blobs),
		Gate:          services.NewShareGate(metadata, []byte(cfg.SessionSecret)),
		Uploader:      services.NewUploader(metadata, blobs),
		Settings:      services.NewSettings(metadata),
		SecureCookies: cfg.Production,
	}
	gateway.Register(app)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
