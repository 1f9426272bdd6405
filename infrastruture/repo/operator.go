package repo

import (
	"context"
	"errors"
	"time"

	"github.com/akeshari98/wall-robot-control-system/identity"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OperatorRepo handles the persistence of operator accounts.
type OperatorRepo struct {
	collection *mongo.Collection
}

// NewOperatorRepo creates a new OperatorRepo with the given MongoDB
// client, database name, and collection name.
func NewOperatorRepo(client *mongo.Client, dbName, collectionName string) *OperatorRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &OperatorRepo{
		collection: collection,
	}
}

// Save inserts or updates an operator in the repository.
func (r *OperatorRepo) Save(ctx context.Context, op *identity.Operator) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": op.ID}
	update := bson.M{
		"$set": bson.M{
			"username":     op.Username,
			"passwordHash": op.PasswordHash,
			"createdAt":    op.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("username conflict")
		}
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves an operator by their ID.
func (r *OperatorRepo) ByID(ctx context.Context, id uuid.UUID) (*identity.Operator, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var op identity.Operator
	if err := r.collection.FindOne(ctx, filter).Decode(&op); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("operator not found")
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &op, nil
}

// ByUsername retrieves an operator by their username.
func (r *OperatorRepo) ByUsername(ctx context.Context, username string) (*identity.Operator, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"username": username}
	var op identity.Operator
	if err := r.collection.FindOne(ctx, filter).Decode(&op); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("operator not found")
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &op, nil
}
