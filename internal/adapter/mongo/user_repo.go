package mongo

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/identifier"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *Database) repository.UserRepository {
	return &userRepository{collection: db.Handle().Collection(usersCollection)}
}

// EnsureUserIndexes creates the unique email index backing duplicate signup
// detection.
func EnsureUserIndexes(ctx context.Context, db *Database) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Handle().Collection(usersCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		return storeError("create user indexes", err)
	}
	return nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	res, err := r.collection.InsertOne(ctx, toUserDocument(user))
	if err != nil {
		return "", storeError("insert user", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	return identifier.ToPublic(oid), nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, storeError("find user "+id.Hex(), err)
	}
	return toDomainUser(&doc), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, storeError("find user by email", err)
	}
	return toDomainUser(&doc), nil
}
