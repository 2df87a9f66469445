package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Index names shared by the postgres and mongo stores so repositories can
// tell which uniqueness rule a duplicate-key error came from.
const (
	EmailIndexName      = "idx_users_email"
	SupervisorIndexName = "idx_users_company_supervisor"
)

type Database interface {
	GetDB() *gorm.DB
}

type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }

func (g *GormDatabase) Close(ctx context.Context) error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type MongoDatabase struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func (m *MongoDatabase) Users() *mongo.Collection { return m.DB.Collection(UsersCollection) }

func (m *MongoDatabase) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
