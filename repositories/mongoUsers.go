package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"account-server/db"
	"account-server/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userDocument is the stored shape of a user. CompanyKey is kept alongside
// CompanyName so the partial unique index can compare company names
// case-insensitively.
type userDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FullName    string             `bson:"fullName"`
	Email       string             `bson:"email"`
	Password    string             `bson:"password"`
	Role        string             `bson:"role"`
	CompanyName string             `bson:"companyName"`
	CompanyKey  string             `bson:"companyKey"`
	ProfilePic  string             `bson:"profilePic"`
	Profession  string             `bson:"profession"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *userDocument) toEntity() *entities.User {
	return &entities.User{
		ID:          d.ID.Hex(),
		FullName:    d.FullName,
		Email:       d.Email,
		Password:    d.Password,
		Role:        entities.Role(d.Role),
		CompanyName: d.CompanyName,
		ProfilePic:  d.ProfilePic,
		Profession:  d.Profession,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type userMongoRepository struct {
	coll *mongo.Collection
}

func NewUserMongoRepository(coll *mongo.Collection) UserRepository {
	return &userMongoRepository{coll: coll}
}

func (r *userMongoRepository) Create(ctx context.Context, user *entities.User) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := userDocument{
		ID:          primitive.NewObjectID(),
		FullName:    user.FullName,
		Email:       user.Email,
		Password:    user.Password,
		Role:        string(user.Role),
		CompanyName: user.CompanyName,
		CompanyKey:  user.CompanyKey(),
		ProfilePic:  user.ProfilePic,
		Profession:  user.Profession,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translateMongoError(err)
	}

	user.ID = doc.ID.Hex()
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *userMongoRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

// SupervisorExists matches on the stored company key so the lookup folds case
// exactly like the partial unique index.
func (r *userMongoRepository) SupervisorExists(ctx context.Context, companyName string) (bool, error) {
	filter := bson.D{
		{Key: "companyKey", Value: entities.CompanyKey(companyName)},
		{Key: "role", Value: string(entities.RoleSupervisor)},
	}
	opts := options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}})

	err := r.coll.FindOne(ctx, filter, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func translateMongoError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), db.SupervisorIndexName) {
		return ErrSupervisorTaken
	}
	return ErrEmailTaken
}
