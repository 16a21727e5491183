package trips

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xyz-asif/travlr/internal/pkg/logger"
	apperrors "github.com/xyz-asif/travlr/pkg/errors"
)

const collectionName = "trips"

// Repository is the MongoDB Store.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection(collectionName)

	_, err := collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "start", Value: 1}, {Key: "perPerson", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "resort", Value: "text"},
			},
		},
	})
	if err != nil {
		logger.Warn("failed to create trip indexes: %v", err)
	}

	return &Repository{collection: collection}
}

func (r *Repository) FindByCode(ctx context.Context, code string) (*Trip, error) {
	var trip Trip
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("trip %q: %w", code, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &trip, nil
}

func (r *Repository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"code": code}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Insert(ctx context.Context, trip *Trip) error {
	now := time.Now()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, trip)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("trip %q: %w", trip.Code, apperrors.ErrDuplicate)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		trip.ID = oid
	}
	return nil
}

// UpdateByCode replaces the user-supplied fields of the trip stored under
// code and returns the document after the update.
func (r *Repository) UpdateByCode(ctx context.Context, code string, trip Trip) (*Trip, error) {
	update := bson.M{
		"$set": bson.M{
			"code":        trip.Code,
			"name":        trip.Name,
			"length":      trip.Length,
			"start":       trip.Start,
			"resort":      trip.Resort,
			"perPerson":   trip.PerPerson,
			"image":       trip.Image,
			"description": trip.Description,
			"updatedAt":   time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Trip
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"code": code}, update, opts).Decode(&updated)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, fmt.Errorf("trip %q: %w", code, apperrors.ErrNotFound)
		case mongo.IsDuplicateKeyError(err):
			return nil, fmt.Errorf("trip %q: %w", trip.Code, apperrors.ErrDuplicate)
		}
		return nil, err
	}
	return &updated, nil
}

// List returns trips sorted by start then code. A non-nil startAfter limits
// the result to trips starting strictly later.
func (r *Repository) List(ctx context.Context, startAfter *time.Time) ([]Trip, error) {
	filter := bson.M{}
	if startAfter != nil {
		filter["start"] = bson.M{"$gt": *startAfter}
	}

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}, {Key: "code", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := []Trip{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Search uses the text index over name, description and resort, ordered by relevance.
func (r *Repository) Search(ctx context.Context, query string, skip, limit int64) ([]Trip, int64, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}

	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}).
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	list := []Trip{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
