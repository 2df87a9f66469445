package main

import (
	"context"
	"log/slog"
	"os"

	"account-server/auth"
	"account-server/confs"
	"account-server/db"
	"account-server/logger"
	"account-server/repositories"
	"account-server/server"
	"account-server/services"
	"account-server/uploads"
	"account-server/usecases"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		slog.Error("error loading config", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set; login and signup will fail to issue tokens")
	}

	ctx := context.Background()

	users, closeStore, err := openUserRepository(ctx, cfg)
	if err != nil {
		slog.Error("failed to open user store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	store, err := uploads.NewLocalStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		slog.Error("failed to prepare upload dir", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	accounts := usecases.NewAccountUseCase(
		users,
		auth.NewBcryptHasher(cfg.BcryptCost),
		auth.NewJWTIssuer(cfg.JWTSecret),
		services.UnimplementedResetDispatcher{},
	)

	// run server
	if err := server.NewServer(cfg, accounts, store).Start(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func openUserRepository(ctx context.Context, cfg *confs.Config) (repositories.UserRepository, func(), error) {
	switch cfg.StoreDriver {
	case confs.DriverPostgres:
		database, err := db.ConnectPostgres(cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewUserPgRepository(database), func() { _ = database.Close(ctx) }, nil

	case confs.DriverMemory:
		slog.Warn("using in-memory user store; accounts are lost on restart")
		return repositories.NewUserMemRepository(), func() {}, nil

	default:
		database, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewUserMongoRepository(database.Users()), func() { _ = database.Close(ctx) }, nil
	}
}
