package auth

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const usersCollection = "users"

// MongoStorage implements Storage on a MongoDB collection.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage returns a Storage over the users collection of db.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. The registration flow checks
// existence before insert, which leaves a race window between concurrent
// registrations; the index makes the second insert fail instead of
// duplicating the account.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

// CreateUser implements Storage.
func (s *MongoStorage) CreateUser(ctx context.Context, user *User) error {
	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail implements Storage.
func (s *MongoStorage) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID implements Storage.
func (s *MongoStorage) FindByID(ctx context.Context, id string) (*User, error) {
	var user User
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// UpdateProfilePicture implements Storage.
func (s *MongoStorage) UpdateProfilePicture(ctx context.Context, id, url string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"profile_picture": url}},
	)
	if err != nil {
		return fmt.Errorf("update profile picture: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
