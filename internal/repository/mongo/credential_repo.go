package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const credentialCollectionName = "credentials"

// mongoCredentialRepository implements repository.CredentialRepository using MongoDB.
type mongoCredentialRepository struct {
	collection *mongo.Collection
}

// NewMongoCredentialRepository creates a new instance of mongoCredentialRepository.
// It expects a connected *mongo.Database instance.
func NewMongoCredentialRepository(db *mongo.Database) repository.CredentialRepository {
	return &mongoCredentialRepository{
		collection: db.Collection(credentialCollectionName),
	}
}

// Create inserts a new credential into the database.
func (r *mongoCredentialRepository) Create(ctx context.Context, cred *domain.Credential) (primitive.ObjectID, error) {
	if cred.Username == "" || cred.PasswordHash == "" || cred.Role == "" {
		return primitive.NilObjectID, errors.New("credential username, password hash, and role are required")
	}

	cred.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	cred.CreatedAt = now
	cred.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, cred)
	if err != nil {
		// The unique index on username backs the reconciler's uniqueness
		// pre-check against concurrent creates.
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByUsername retrieves a credential by its username.
func (r *mongoCredentialRepository) GetByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	var cred domain.Credential
	filter := bson.M{"username": username}

	err := r.collection.FindOne(ctx, filter).Decode(&cred)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cred, nil
}

// GetByID retrieves a credential by its MongoDB ObjectID.
func (r *mongoCredentialRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Credential, error) {
	var cred domain.Credential
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&cred)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cred, nil
}

// Update replaces the mutable fields of an existing credential.
func (r *mongoCredentialRepository) Update(ctx context.Context, cred *domain.Credential) error {
	filter := bson.M{"_id": cred.ID}
	update := bson.M{
		"$set": bson.M{
			"username":     cred.Username,
			"passwordHash": cred.PasswordHash,
			"role":         cred.Role,
			"updatedAt":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrConflict
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a credential by ID. Used only by admin paths.
func (r *mongoCredentialRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Count returns the total number of credentials.
func (r *mongoCredentialRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// EnsureCredentialIndexes creates necessary indexes for the credentials collection.
// Call this once during application startup.
func EnsureCredentialIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index(),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Without the unique username index the uniqueness pre-check has no
		// backstop against concurrent creates.
		log.Printf("WARN: failed to create indexes for %s: %v", credentialCollectionName, err)
	}
}
