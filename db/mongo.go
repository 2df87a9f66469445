package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"account-server/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const UsersCollection = "users"

// ConnectMongo connects to the document store, verifies it with a ping and
// makes sure the users collection carries its uniqueness indexes.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoDatabase, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	slog.Info("database connection established", "driver", "mongo", "database", database)

	mdb := &MongoDatabase{Client: client, DB: client.Database(database)}
	if err := EnsureUserIndexes(connectCtx, mdb.Users()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return mdb, nil
}

// EnsureUserIndexes creates the unique email index and the partial unique
// index on the case-folded company name of supervisors.
func EnsureUserIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(EmailIndexName).SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "companyKey", Value: 1}},
			Options: options.Index().
				SetName(SupervisorIndexName).
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "role", Value: string(entities.RoleSupervisor)}}),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}
