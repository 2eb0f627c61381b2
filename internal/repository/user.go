package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kaloraat/auth-api/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository persists account documents.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmailAndResetCode(ctx context.Context, email, code string) (*model.User, error)
	SetResetCode(ctx context.Context, id, code string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) (*model.User, error)
	ResetPassword(ctx context.Context, id, passwordHash string) error
	SetImage(ctx context.Context, id string, image model.Image) (*model.User, error)
}

// MongoUserRepository is the MongoDB implementation of UserRepository.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository opens the users collection and ensures the unique
// email index exists. The index is the sole serialization point for
// concurrent signups racing on the same email.
func NewMongoUserRepository(db *mongo.Database) (*MongoUserRepository, error) {
	coll := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &MongoUserRepository{collection: coll}, nil
}

// Create inserts a new account and assigns its generated ObjectID and
// timestamps on the passed struct.
func (r *MongoUserRepository) Create(ctx context.Context, user *model.User) error {
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

// FindByEmail retrieves an account by its email address.
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID retrieves an account by its hex ObjectID.
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByEmailAndResetCode retrieves the account matching both the email and
// the outstanding reset code. An empty code never matches: consumed codes are
// removed from the document, and matching the zero value would reopen them.
func (r *MongoUserRepository) FindByEmailAndResetCode(ctx context.Context, email, code string) (*model.User, error) {
	if code == "" {
		return nil, ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"email": email, "reset_code": code})
}

// SetResetCode stores a fresh reset code on the account, replacing any
// outstanding one.
func (r *MongoUserRepository) SetResetCode(ctx context.Context, id, code string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"reset_code": code, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces the account's password hash and returns the updated
// account.
func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) (*model.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	return r.findOneAndUpdate(ctx, oid, bson.M{
		"$set": bson.M{"password": passwordHash, "updated_at": time.Now().UTC()},
	})
}

// ResetPassword stores the new password hash and clears the reset code in a
// single update, making the code single-use.
func (r *MongoUserRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateByID(ctx, oid, bson.M{
		"$set":   bson.M{"password": passwordHash, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"reset_code": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetImage stores the profile image reference and returns the updated
// account.
func (r *MongoUserRepository) SetImage(ctx context.Context, id string, image model.Image) (*model.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	return r.findOneAndUpdate(ctx, oid, bson.M{
		"$set": bson.M{"image": image, "updated_at": time.Now().UTC()},
	})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) findOneAndUpdate(ctx context.Context, oid primitive.ObjectID, update bson.M) (*model.User, error) {
	res := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var user model.User
	if err := res.Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// objectID parses a hex ObjectID. Unparseable ids cannot belong to any stored
// account, so they map to ErrUserNotFound rather than a distinct error.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrUserNotFound
	}
	return oid, nil
}
