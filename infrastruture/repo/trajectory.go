package repo

import (
	"context"
	"errors"
	"time"

	"github.com/akeshari98/wall-robot-control-system/trajectory"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TrajectoryRepo handles the persistence of planned trajectories.
type TrajectoryRepo struct {
	collection *mongo.Collection
}

// NewTrajectoryRepo creates a new TrajectoryRepo with the given MongoDB
// client, database name, and collection name.
func NewTrajectoryRepo(client *mongo.Client, dbName, collectionName string) *TrajectoryRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &TrajectoryRepo{
		collection: collection,
	}
}

// Save stores a newly assembled trajectory. Trajectories are immutable,
// so an id collision is an unexpected error rather than an update.
func (r *TrajectoryRepo) Save(ctx context.Context, t *trajectory.Trajectory) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("trajectory id conflict")
		}
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByID retrieves a trajectory by its ID, path data included.
// Returns trajectory.ErrNotFound if the id is unknown.
func (r *TrajectoryRepo) ByID(ctx context.Context, id uuid.UUID) (*trajectory.Trajectory, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var result trajectory.Trajectory
	if err := r.collection.FindOne(ctx, filter).Decode(&result); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, trajectory.ErrNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &result, nil
}

// List retrieves summaries of all stored trajectories, newest first.
// Path data is projected away to keep listings cheap.
func (r *TrajectoryRepo) List(ctx context.Context) ([]trajectory.Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"pathData": 0, "obstacles": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	summaries := []trajectory.Summary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return summaries, nil
}

// Delete removes a trajectory and returns the removed record.
// Returns trajectory.ErrNotFound if the id is unknown.
func (r *TrajectoryRepo) Delete(ctx context.Context, id uuid.UUID) (*trajectory.Trajectory, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var deleted trajectory.Trajectory
	if err := r.collection.FindOneAndDelete(ctx, filter).Decode(&deleted); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, trajectory.ErrNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &deleted, nil
}
