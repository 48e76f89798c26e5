package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const statusCollection = "status_checks"

// StatusCheck is the legacy health-check record kept in the document store.
type StatusCheck struct {
	ID         string    `bson:"id" json:"id"`
	ClientName string    `bson:"client_name" json:"client_name"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

// StatusRepository defines persistence operations for legacy status checks.
type StatusRepository interface {
	Insert(ctx context.Context, check StatusCheck) error
	List(ctx context.Context, limit int64) ([]StatusCheck, error)
}

type statusRepository struct {
	collection *mongo.Collection
}

// NewStatusRepository instantiates a repository over the document store.
func NewStatusRepository(client *mongo.Client, dbName string) StatusRepository {
	return &statusRepository{
		collection: client.Database(dbName).Collection(statusCollection),
	}
}

func (r *statusRepository) Insert(ctx context.Context, check StatusCheck) error {
	_, err := r.collection.InsertOne(ctx, check)
	return err
}

// List returns up to limit records with the internal document id stripped.
func (r *statusRepository) List(ctx context.Context, limit int64) ([]StatusCheck, error) {
	opts := options.Find().
		SetLimit(limit).
		SetProjection(bson.M{"_id": 0})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	checks := make([]StatusCheck, 0)
	if err := cursor.All(ctx, &checks); err != nil {
		return nil, err
	}

	return checks, nil
}
